package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryType discriminates expense and income categories.
type CategoryType string

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
)

// Category groups expenses and incomes. Default categories are seeded and
// shared across users; users may add their own.
type Category struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    *uuid.UUID   `json:"user_id,omitempty" gorm:"type:char(36);index"` // nil for shared defaults
	Name      string       `json:"name" gorm:"size:100;not null"`
	Type      CategoryType `json:"type" gorm:"type:varchar(10);not null;index"`
	Icon      string       `json:"icon" gorm:"size:50"`
	Color     string       `json:"color" gorm:"size:7"`
	IsDefault bool         `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
