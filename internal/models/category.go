package models

// MaxCategoryNameLength bounds category names at the schema limit.
const MaxCategoryNameLength = 100

// Category represents a spending category owned by a single user.
// Names are unique per user, not globally.
type Category struct {
	Base
	UserID uint   `gorm:"not null;index;uniqueIndex:uq_category_user,priority:2" json:"user_id"`
	Name   string `gorm:"size:100;not null;uniqueIndex:uq_category_user,priority:1" json:"category_name"`

	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}
