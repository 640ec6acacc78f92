package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActionType classifies an audited action.
type ActionType string

const (
	ActionCreate ActionType = "CREATE"
	ActionUpdate ActionType = "UPDATE"
	ActionDelete ActionType = "DELETE"
	ActionLogin  ActionType = "LOGIN"
	ActionLogout ActionType = "LOGOUT"
	ActionView   ActionType = "VIEW"
)

// ActivityLog is an append-only audit record. Rows can never be updated or
// deleted: a storage-level trigger rejects DELETE on the table and a GORM
// callback rejects deletes before they reach the wire (see internal/db).
// Metadata is an opaque payload stored and returned verbatim.
type ActivityLog struct {
	ID           uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID         `json:"user_id" gorm:"type:char(36);not null;index"`
	ActionType   ActionType        `json:"action_type" gorm:"type:varchar(20);not null;index"`
	ResourceType string            `json:"resource_type" gorm:"size:64;not null;index"`
	ResourceID   *uuid.UUID        `json:"resource_id,omitempty" gorm:"type:char(36)"`
	Description  string            `json:"description" gorm:"type:text"`
	IPAddress    string            `json:"ip_address" gorm:"size:45"`
	UserAgent    string            `json:"user_agent" gorm:"size:255"`
	Metadata     datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:json"`
	CreatedAt    time.Time         `json:"created_at" gorm:"index"`
}

// TableName pins the table name referenced by the delete-protection trigger.
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// BeforeCreate sets UUID before creating the record.
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
