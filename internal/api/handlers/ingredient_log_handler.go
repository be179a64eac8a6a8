package handlers

import (
	"Pantry-API/domain"
	"Pantry-API/internal/api/presenters"
	"Pantry-API/pkg/ingredientlog"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	IngredientLogHandler interface {
		GetIngredientLogs(c *fiber.Ctx) error
	}

	ingredientLogHandler struct {
		ingredientLogService ingredientlog.IngredientLogService
	}
)

func NewIngredientLogHandler(ingredientLogService ingredientlog.IngredientLogService) IngredientLogHandler {
	return &ingredientLogHandler{
		ingredientLogService: ingredientLogService,
	}
}

func (h *ingredientLogHandler) GetIngredientLogs(c *fiber.Ctx) error {
	memberID := c.Query("memberId")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.Query("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}

	sortBy := c.Query("sortBy", "created_at")
	sortDirection := c.Query("sortDirection", "desc")

	logs, count, err := h.ingredientLogService.GetIngredientLogs(c.Context(), memberID, page, size, sortBy, sortDirection)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return presenters.NotFoundResponse(c, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredientLogs, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"logs": logs,
		"page_info": domain.PageInfo{
			CurrentPage: page,
			Size:        size,
			Total:       count,
			HasNext:     int64(page*size) < count,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetIngredientLogs)
}
