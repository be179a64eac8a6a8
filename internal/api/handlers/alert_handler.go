package handlers

import (
	"Pantry-API/domain"
	"Pantry-API/internal/api/presenters"
	"Pantry-API/pkg/alert"

	"github.com/gofiber/fiber/v2"
)

type (
	AlertHandler interface {
		GetAlerts(c *fiber.Ctx) error
	}

	alertHandler struct {
		alertService alert.AlertService
	}
)

func NewAlertHandler(alertService alert.AlertService) AlertHandler {
	return &alertHandler{
		alertService: alertService,
	}
}

func (h *alertHandler) GetAlerts(c *fiber.Ctx) error {
	memberID := c.Query("memberId")

	alerts, err := h.alertService.GetAlertsByMember(c.Context(), memberID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAlerts, err)
	}

	return presenters.SuccessResponse(c, alerts, fiber.StatusOK, domain.MessageSuccessGetAlerts)
}
