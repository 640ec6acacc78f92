package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is an admin-published message shown to users while its active
// window is open.
type Announcement struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string     `json:"title" gorm:"size:255;not null"`
	Body      string     `json:"body" gorm:"type:text;not null"`
	Audience  string     `json:"audience" gorm:"size:20;not null;default:'all'"` // all | admins
	StartsAt  time.Time  `json:"starts_at" gorm:"not null"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:char(36);not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SoftDeletable
}

// BeforeCreate sets UUID before creating the record.
func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ActiveAt reports whether the announcement should be shown at t.
func (a *Announcement) ActiveAt(t time.Time) bool {
	if a.IsDeleted() || t.Before(a.StartsAt) {
		return false
	}
	return a.EndsAt == nil || t.Before(*a.EndsAt)
}
