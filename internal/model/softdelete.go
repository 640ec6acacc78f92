package model

import "time"

// SoftDeletable is embedded by entities that are hidden rather than removed.
// A non-nil DeletedAt excludes the row from active queue/list views; the row
// itself is retained for audit integrity.
type SoftDeletable struct {
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// IsDeleted reports whether the entity has been soft-deleted.
func (s *SoftDeletable) IsDeleted() bool {
	return s.DeletedAt != nil
}

// SoftDelete marks the entity deleted at the given time. Calling it again
// keeps the original deletion time.
func (s *SoftDeletable) SoftDelete(now time.Time) {
	if s.DeletedAt == nil {
		s.DeletedAt = &now
	}
}
