package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/heartwatch-app/backend/internal/dto"
	"github.com/heartwatch-app/backend/internal/services"
	"github.com/heartwatch-app/backend/internal/session"
)

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) Trigger(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	// Location is optional; an empty body means "use the placeholder".
	var req dto.TriggerAlertRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
		}
	}

	alert, err := h.alertService.Trigger(userID, req.Location)
	if err != nil {
		if errors.Is(err, services.ErrNoReadings) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: "No reading available. Simulate or upload first."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to record alert"})
	}

	return c.Status(fiber.StatusCreated).JSON(alert)
}
