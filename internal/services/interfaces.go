package services

import (
	"budgetbook/internal/models"
	"budgetbook/internal/money"
	"budgetbook/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	EnsureSuperuser(username, password string) error
}

// CategoryServicer defines the contract for category-related business logic.
// Every call is scoped to the owning user's ID; a category belonging to a
// different user is indistinguishable from a missing one.
type CategoryServicer interface {
	CreateCategory(userID uint, name string) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// ExpenseServicer defines the contract for expense-related business logic,
// scoped to the owning user through the parent category.
type ExpenseServicer interface {
	CreateExpense(userID, categoryID uint, amount money.Cents, description string) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, amount *money.Cents, description *string) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	GetCategoryExpenses(userID, categoryID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	SumForCategory(userID, categoryID uint) (money.Cents, error)
	SumAllForUser(userID uint) (money.Cents, error)
}
