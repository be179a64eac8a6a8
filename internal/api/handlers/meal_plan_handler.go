package handlers

import (
	"Pantry-API/domain"
	"Pantry-API/internal/api/presenters"
	"Pantry-API/pkg/mealplan"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MealPlanHandler interface {
		GenerateMeals(c *fiber.Ctx) error
		GetMeals(c *fiber.Ctx) error
		ServeMeal(c *fiber.Ctx) error
	}

	mealPlanHandler struct {
		mealPlanService mealplan.MealPlanService
		validator       *validator.Validate
	}
)

func NewMealPlanHandler(mealPlanService mealplan.MealPlanService, validator *validator.Validate) MealPlanHandler {
	return &mealPlanHandler{
		mealPlanService: mealPlanService,
		validator:       validator,
	}
}

func (h *mealPlanHandler) GenerateMeals(c *fiber.Ctx) error {
	req := new(domain.GenerateMealsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateMeals, err)
	}

	res, err := h.mealPlanService.GenerateMeals(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGenerateMeals, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateMeals, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessGenerateMeals)
}

func (h *mealPlanHandler) GetMeals(c *fiber.Ctx) error {
	memberID := c.Query("memberId")
	date := c.Query("date")

	meals, err := h.mealPlanService.GetMeals(c.Context(), memberID, date)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMeals, err)
	}

	return presenters.SuccessResponse(c, meals, fiber.StatusOK, domain.MessageSuccessGetMeals)
}

func (h *mealPlanHandler) ServeMeal(c *fiber.Ctx) error {
	req := new(domain.ServeMealRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedServeMeal, err)
	}

	if err := h.mealPlanService.ServeMeal(c.Context(), *req); err != nil {
		if errors.Is(err, domain.ErrMealNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedServeMeal, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessServeMeal)
}
