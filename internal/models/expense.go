package models

import (
	"time"

	"budgetbook/internal/money"
)

// MaxExpenseDescriptionLength bounds free-text descriptions at the schema limit.
const MaxExpenseDescriptionLength = 255

// Expense represents a single expense recorded under a category.
// Amounts are stored as integer cents, never floats; the JSON encoding
// of money.Cents carries the two-decimal value on the wire.
type Expense struct {
	Base
	CategoryID  uint        `gorm:"not null;index" json:"category_id"`
	Amount      money.Cents `gorm:"not null" json:"added_expense_amount"`
	Description string      `gorm:"size:255" json:"expense_description"`
	Timestamp   time.Time   `gorm:"not null" json:"timestamp"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}
