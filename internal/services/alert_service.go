package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartwatch-app/backend/internal/dto"
	"github.com/heartwatch-app/backend/internal/models"
	"github.com/heartwatch-app/backend/internal/session"
	"gorm.io/gorm"
)

const (
	// defaultLocation stands in when the caller supplies no location.
	defaultLocation = "GPS: 29.3759, 47.9774 (demo)"

	alertHistoryLimit = 50
)

type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// Trigger snapshots the user's latest reading plus contact list into one
// alert row. Without at least one reading there is nothing to report and no
// row is written.
func (s *AlertService) Trigger(userID uuid.UUID, location string) (*dto.AlertResponse, error) {
	var latest models.Reading
	err := s.db.Scopes(session.ForUser(userID)).
		Order("ts DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoReadings
		}
		return nil, err
	}

	location = strings.TrimSpace(location)
	if location == "" {
		location = defaultLocation
	}

	var contacts []models.Contact
	if err := s.db.Scopes(session.ForUser(userID)).Find(&contacts).Error; err != nil {
		return nil, err
	}

	alert := models.Alert{
		ID:         uuid.New(),
		UserID:     userID,
		Ts:         time.Now().UTC().Format(tsLayout),
		Bpm:        latest.Bpm,
		Location:   location,
		Recipients: FormatRecipients(contacts),
	}

	if err := s.db.Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	return mapAlertToResponse(&alert), nil
}

// History returns the bounded alert history, newest first.
func (s *AlertService) History(userID uuid.UUID) ([]dto.AlertResponse, error) {
	var alerts []models.Alert
	err := s.db.Scopes(session.ForUser(userID)).
		Order("ts DESC").
		Limit(alertHistoryLimit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	resp := make([]dto.AlertResponse, len(alerts))
	for i, a := range alerts {
		resp[i] = *mapAlertToResponse(&a)
	}
	return resp, nil
}

// FormatRecipients renders the contact list as a display string, one
// "name(phone-or-email-or-'no-contact')" entry per contact.
func FormatRecipients(contacts []models.Contact) string {
	if len(contacts) == 0 {
		return "No contacts saved"
	}

	parts := make([]string, len(contacts))
	for i, c := range contacts {
		via := c.Phone
		if via == "" {
			via = c.Email
		}
		if via == "" {
			via = "no-contact"
		}
		parts[i] = fmt.Sprintf("%s(%s)", c.Name, via)
	}
	return strings.Join(parts, ", ")
}

func mapAlertToResponse(a *models.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:         a.ID,
		Ts:         a.Ts,
		Bpm:        a.Bpm,
		Location:   a.Location,
		Recipients: a.Recipients,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
