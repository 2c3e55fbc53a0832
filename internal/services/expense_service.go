package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/money"
	"budgetbook/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, categoryService CategoryServicer) ExpenseServicer {
	return &expenseService{db: db, categoryService: categoryService}
}

// getOwnedExpense loads an expense only if its parent category belongs to
// the given user. A foreign expense looks exactly like a missing one.
func (s *expenseService) getOwnedExpense(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.id = ? AND categories.user_id = ?", expenseID, userID).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// CreateExpense records a new expense under an owned category.
func (s *expenseService) CreateExpense(userID, categoryID uint, amount money.Cents, description string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if len(description) > models.MaxExpenseDescriptionLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense description is too long")
	}

	if _, err := s.categoryService.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now(),
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// UpdateExpense applies a partial update. A nil field is left untouched;
// a supplied amount is revalidated positive.
func (s *expenseService) UpdateExpense(userID, expenseID uint, amount *money.Cents, description *string) (*models.Expense, error) {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.ErrInvalidAmount
		}
		updates["amount"] = *amount
	}
	if description != nil {
		if len(*description) > models.MaxExpenseDescriptionLength {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense description is too long")
		}
		updates["description"] = *description
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// DeleteExpense removes a single expense.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetCategoryExpenses retrieves a paginated list of expenses for an owned
// category, oldest first.
func (s *expenseService) GetCategoryExpenses(userID, categoryID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if _, err := s.categoryService.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Expense{}).Where("category_id = ?", categoryID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("timestamp ASC, id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// SumForCategory returns the exact total of all expenses attached to an
// owned category, zero if it has none. The SUM runs over the integer
// cents column, so no precision is lost.
func (s *expenseService) SumForCategory(userID, categoryID uint) (money.Cents, error) {
	if _, err := s.categoryService.GetCategoryByID(userID, categoryID); err != nil {
		return 0, err
	}

	var total int64
	err := s.db.Model(&models.Expense{}).
		Where("category_id = ?", categoryID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return money.Cents(total), nil
}

// SumAllForUser returns the exact total across every category the user owns.
func (s *expenseService) SumAllForUser(userID uint) (money.Cents, error) {
	var total int64
	err := s.db.Model(&models.Expense{}).
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("categories.user_id = ?", userID).
		Select("COALESCE(SUM(expenses.amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return money.Cents(total), nil
}
