package models

import (
	"time"

	"github.com/google/uuid"
)

// Reading is one timestamped heart-rate sample. Ts is the caller-supplied or
// generated sample timestamp (kept as text, "2006-01-02 15:04:05" when
// generated); CreatedAt is when the row was inserted. Label is an optional
// user-supplied ground truth from CSV imports. Rows are write-once.
type Reading struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Ts        string    `gorm:"not null;size:64;index" json:"ts"`
	Bpm       int       `gorm:"not null" json:"bpm"`
	Label     *int      `json:"label,omitempty"`
	Status    string    `gorm:"not null;size:16" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
