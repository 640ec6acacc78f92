package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriod is the recurrence window of a budget.
type BudgetPeriod string

const (
	BudgetPeriodMonth BudgetPeriod = "month"
	BudgetPeriodYear  BudgetPeriod = "year"
)

// Budget caps spending for a category over a period.
type Budget struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	CategoryID uuid.UUID       `json:"category_id" gorm:"type:char(36);not null;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Period     BudgetPeriod    `json:"period" gorm:"type:varchar(10);not null;default:'month'"`
	StartDate  time.Time       `json:"start_date" gorm:"not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	User     User     `json:"-" gorm:"foreignKey:UserID"`
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BudgetSummary pairs a budget with the amount spent inside the current
// period. Spent is always derived from the expenses table, never stored.
type BudgetSummary struct {
	Budget    Budget          `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Exceeded  bool            `json:"exceeded"`
}
