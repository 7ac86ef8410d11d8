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

var (
	ErrContactNameRequired = errors.New("contact name is required")
	ErrContactNotFound     = errors.New("contact not found")
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

func (s *ContactService) Create(userID uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrContactNameRequired
	}

	contact := models.Contact{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Phone:  strings.TrimSpace(req.Phone),
		Email:  strings.TrimSpace(req.Email),
	}

	if err := s.db.Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return mapContactToResponse(&contact), nil
}

func (s *ContactService) List(userID uuid.UUID) ([]dto.ContactResponse, error) {
	var contacts []models.Contact
	err := s.db.Scopes(session.ForUser(userID)).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ContactResponse, len(contacts))
	for i, c := range contacts {
		resp[i] = *mapContactToResponse(&c)
	}
	return resp, nil
}

// Delete removes a contact, scoped to the owning user. Deleting another
// user's contact reports not-found rather than revealing its existence.
func (s *ContactService) Delete(userID, contactID uuid.UUID) error {
	result := s.db.Scopes(session.ForUser(userID)).
		Where("id = ?", contactID).
		Delete(&models.Contact{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func mapContactToResponse(c *models.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
