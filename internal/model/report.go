package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportStatus is the moderation state of a content report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// CanTransitionTo reports whether the pending -> reviewing -> resolved|dismissed
// machine admits a move from s to next. Soft deletion is orthogonal and does
// not change status.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case ReportStatusReviewing:
		return s == ReportStatusPending
	case ReportStatusResolved, ReportStatusDismissed:
		return s == ReportStatusPending || s == ReportStatusReviewing
	}
	return false
}

// ReportPriority orders the moderation queue.
type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "low"
	ReportPriorityMedium ReportPriority = "medium"
	ReportPriorityHigh   ReportPriority = "high"
)

// ContentReport is a user-filed report against another user's content.
// Reports are soft-deleted only: DeletedAt hides a report from queue views
// without touching its status.
type ContentReport struct {
	ID              uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	ReporterID      uuid.UUID      `json:"reporter_id" gorm:"type:char(36);not null;index"`
	ReportedUserID  uuid.UUID      `json:"reported_user_id" gorm:"type:char(36);not null;index"`
	ContentType     string         `json:"content_type" gorm:"size:50;not null"`
	ContentID       *uuid.UUID     `json:"content_id,omitempty" gorm:"type:char(36)"`
	Reason          string         `json:"reason" gorm:"type:text;not null"`
	Status          ReportStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Priority        ReportPriority `json:"priority" gorm:"type:varchar(10);not null;default:'medium';index"`
	FeedbackMessage string         `json:"feedback_message,omitempty" gorm:"type:text"`
	ResolvedByID    *uuid.UUID     `json:"resolved_by_id,omitempty" gorm:"type:char(36)"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	SoftDeletable

	// Relations
	Reporter     User `json:"-" gorm:"foreignKey:ReporterID"`
	ReportedUser User `json:"-" gorm:"foreignKey:ReportedUserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *ContentReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
