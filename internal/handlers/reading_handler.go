package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/heartwatch-app/backend/internal/dto"
	"github.com/heartwatch-app/backend/internal/services"
	"github.com/heartwatch-app/backend/internal/session"
	"github.com/heartwatch-app/backend/internal/vitals"
)

type ReadingHandler struct {
	readingService *services.ReadingService
	contactService *services.ContactService
	alertService   *services.AlertService
}

func NewReadingHandler(readingService *services.ReadingService, contactService *services.ContactService, alertService *services.AlertService) *ReadingHandler {
	return &ReadingHandler{
		readingService: readingService,
		contactService: contactService,
		alertService:   alertService,
	}
}

// Dashboard returns the latest reading, the recent window, and the contact
// list. A user with no readings yet gets a null latest, not an error.
func (h *ReadingHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	latest, err := h.readingService.Latest(userID)
	if err != nil && !errors.Is(err, services.ErrNoReadings) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch dashboard"})
	}

	recent, err := h.readingService.Recent(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch dashboard"})
	}

	contacts, err := h.contactService.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch dashboard"})
	}

	return c.JSON(dto.DashboardResponse{
		Latest:   latest,
		Recent:   recent,
		Contacts: contacts,
	})
}

func (h *ReadingHandler) Simulate(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	// Mode is optional and defaults to normal, so an empty body is fine.
	var req dto.SimulateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
		}
	}

	mode, err := vitals.ParseMode(req.Mode)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	reading, err := h.readingService.Simulate(userID, mode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create reading"})
	}

	return c.Status(fiber.StatusCreated).JSON(reading)
}

func (h *ReadingHandler) Upload(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "A CSV file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Failed to read uploaded file"})
	}
	defer file.Close()

	inserted, err := h.readingService.ImportCSV(userID, file)
	if err != nil {
		if errors.Is(err, vitals.ErrEmptyFile) || errors.Is(err, vitals.ErrMissingColumns) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to import readings"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{Inserted: inserted})
}

// History lists past readings and alerts, newest first, over bounded windows.
func (h *ReadingHandler) History(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	readings, err := h.readingService.History(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch history"})
	}

	alerts, err := h.alertService.History(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch history"})
	}

	return c.JSON(dto.HistoryResponse{
		Readings: readings,
		Alerts:   alerts,
	})
}
