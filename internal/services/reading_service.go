package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/heartwatch-app/backend/internal/dto"
	"github.com/heartwatch-app/backend/internal/models"
	"github.com/heartwatch-app/backend/internal/session"
	"github.com/heartwatch-app/backend/internal/vitals"
	"gorm.io/gorm"
)

const (
	// recentWindow is how many prior readings the classifier may consult for
	// escalation.
	recentWindow = 5

	dashboardLimit      = 50
	readingHistoryLimit = 200

	tsLayout = "2006-01-02 15:04:05"
)

var ErrNoReadings = errors.New("no reading available")

type ReadingService struct {
	db *gorm.DB
}

func NewReadingService(db *gorm.DB) *ReadingService {
	return &ReadingService{db: db}
}

// Simulate draws one pseudo-random bpm for the given mode, classifies it
// against the user's recent readings, and persists it. Simulated readings
// never carry a label.
func (s *ReadingService) Simulate(userID uuid.UUID, mode vitals.Mode) (*dto.ReadingResponse, error) {
	recent, err := s.recentBpms(userID)
	if err != nil {
		return nil, err
	}

	bpm := vitals.Draw(mode)
	status := vitals.Classify(bpm, recent)

	reading := models.Reading{
		ID:     uuid.New(),
		UserID: userID,
		Ts:     time.Now().UTC().Format(tsLayout),
		Bpm:    bpm,
		Status: string(status),
	}

	if err := s.db.Create(&reading).Error; err != nil {
		return nil, fmt.Errorf("failed to create reading: %w", err)
	}

	return mapReadingToResponse(&reading), nil
}

// ImportCSV bulk-inserts the accepted rows of a CSV upload and returns how
// many were inserted. The escalation history is seeded from the user's last
// persisted readings and rolls forward across the batch, so a late row can
// escalate off earlier rows in the same file. Rows are validated
// independently before any write; a skipped row never aborts the batch.
func (s *ReadingService) ImportCSV(userID uuid.UUID, r io.Reader) (int, error) {
	rows, err := vitals.ParseCSV(r)
	if err != nil {
		return 0, err
	}

	recent, err := s.recentBpms(userID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			status := vitals.Classify(row.Bpm, recent)
			recent = append(recent, row.Bpm)

			reading := models.Reading{
				ID:        uuid.New(),
				UserID:    userID,
				Ts:        row.Timestamp,
				Bpm:       row.Bpm,
				Label:     row.Label,
				Status:    string(status),
				CreatedAt: now,
			}
			if err := tx.Create(&reading).Error; err != nil {
				return fmt.Errorf("failed to create reading: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

// Latest returns the user's most recent reading, or ErrNoReadings.
func (s *ReadingService) Latest(userID uuid.UUID) (*dto.ReadingResponse, error) {
	var reading models.Reading
	err := s.db.Scopes(session.ForUser(userID)).
		Order("ts DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoReadings
		}
		return nil, err
	}
	return mapReadingToResponse(&reading), nil
}

// Recent returns up to dashboardLimit readings in chronological order,
// most recent last, for display.
func (s *ReadingService) Recent(userID uuid.UUID) ([]dto.ReadingResponse, error) {
	var readings []models.Reading
	err := s.db.Scopes(session.ForUser(userID)).
		Order("ts DESC").
		Limit(dashboardLimit).
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ReadingResponse, len(readings))
	for i, rd := range readings {
		resp[len(readings)-1-i] = *mapReadingToResponse(&rd)
	}
	return resp, nil
}

// History returns the bounded reading history, newest first.
func (s *ReadingService) History(userID uuid.UUID) ([]dto.ReadingResponse, error) {
	var readings []models.Reading
	err := s.db.Scopes(session.ForUser(userID)).
		Order("ts DESC").
		Limit(readingHistoryLimit).
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ReadingResponse, len(readings))
	for i, rd := range readings {
		resp[i] = *mapReadingToResponse(&rd)
	}
	return resp, nil
}

// recentBpms fetches the bpm values of the user's last readings in
// chronological order, most recent last, as the classifier expects.
func (s *ReadingService) recentBpms(userID uuid.UUID) ([]int, error) {
	var readings []models.Reading
	err := s.db.Scopes(session.ForUser(userID)).
		Select("bpm").
		Order("ts DESC").
		Limit(recentWindow).
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	bpms := make([]int, len(readings))
	for i, rd := range readings {
		bpms[len(readings)-1-i] = rd.Bpm
	}
	return bpms, nil
}

func mapReadingToResponse(r *models.Reading) *dto.ReadingResponse {
	return &dto.ReadingResponse{
		ID:        r.ID,
		Ts:        r.Ts,
		Bpm:       r.Bpm,
		Label:     r.Label,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
