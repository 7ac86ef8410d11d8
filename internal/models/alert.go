package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert is a write-once snapshot of an emergency notification: the bpm of the
// latest reading at trigger time, the reported location, and a display string
// summarizing the user's contacts.
type Alert struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Ts         string    `gorm:"not null;size:64;index" json:"ts"`
	Bpm        int       `gorm:"not null" json:"bpm"`
	Location   string    `gorm:"size:255" json:"location"`
	Recipients string    `gorm:"type:text" json:"recipients"`
	CreatedAt  time.Time `json:"created_at"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}
