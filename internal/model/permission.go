package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission is a named capability atom under the resource:action convention,
// e.g. "expenses:read". The set is seeded at setup time and immutable at
// runtime.
type Permission struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Resource    string    `json:"resource" gorm:"size:50;not null;index"`
	Action      string    `json:"action" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID and derives Name from Resource and Action when the
// caller only supplied the parts.
func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("%s:%s", p.Resource, p.Action)
	}
	return nil
}

// Well-known permission names used by route guards and the seeder.
const (
	PermAdminRead          = "admin:read"
	PermUsersRead          = "users:read"
	PermUsersWrite         = "users:write"
	PermRolesRead          = "roles:read"
	PermRolesWrite         = "roles:write"
	PermReportsRead        = "reports:read"
	PermReportsWrite       = "reports:write"
	PermSettingsRead       = "settings:read"
	PermSettingsWrite      = "settings:write"
	PermAnnouncementsWrite = "announcements:write"
	PermActivityReadAll    = "activity:read-all"
)
