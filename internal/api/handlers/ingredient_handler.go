package handlers

import (
	"Pantry-API/domain"
	"Pantry-API/internal/api/presenters"
	"Pantry-API/pkg/ingredient"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		InboundIngredients(c *fiber.Ctx) error
		OutboundIngredients(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetail(c *fiber.Ctx) error
		UploadIngredientImage(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *ingredientHandler) InboundIngredients(c *fiber.Ctx) error {
	req := new(domain.InboundIngredientsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInboundIngredients, err)
	}

	if err := h.ingredientService.InboundIngredients(c.Context(), *req); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedInboundIngredients, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInboundIngredients, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessInboundIngredients)
}

func (h *ingredientHandler) OutboundIngredients(c *fiber.Ctx) error {
	req := new(domain.OutboundIngredientsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOutboundIngredients, err)
	}

	res, err := h.ingredientService.OutboundIngredients(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedOutboundIngredients, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOutboundIngredients, err)
	}

	if res == nil {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessOutboundIngredients)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessOutboundIngredients)
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	memberID := c.Query("memberId")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.Query("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}

	ingredients, count, err := h.ingredientService.GetIngredients(c.Context(), memberID, page, size)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ingredients": ingredients,
		"page_info": domain.PageInfo{
			CurrentPage: page,
			Size:        size,
			Total:       count,
			HasNext:     int64(page*size) < count,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetIngredientDetail(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	res, err := h.ingredientService.GetIngredientDetail(c.Context(), ingredientID)
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) UploadIngredientImage(c *fiber.Ctx) error {
	req := new(domain.UploadIngredientImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	imagePath, err := h.ingredientService.UploadIngredientImage(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_path": imagePath}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
