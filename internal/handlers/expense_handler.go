package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/money"
	"budgetbook/internal/pagination"
	"budgetbook/internal/services"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the payload for recording an expense
type CreateExpenseRequest struct {
	CategoryID         uint        `json:"category_id" binding:"required"`
	AddedExpenseAmount money.Cents `json:"added_expense_amount" binding:"required"`
	ExpenseDescription string      `json:"expense_description" binding:"max=255"`
}

// UpdateExpenseRequest represents the payload for a partial expense update.
// Omitted fields are left unchanged.
type UpdateExpenseRequest struct {
	AddedExpenseAmount *money.Cents `json:"added_expense_amount"`
	ExpenseDescription *string      `json:"expense_description" binding:"omitempty,max=255"`
}

// SumResponse represents a category total
type SumResponse struct {
	TotalExpenses money.Cents `json:"total_expenses"`
}

// SumAllResponse represents a user-wide total
type SumAllResponse struct {
	TotalExpensesAll money.Cents `json:"total_expenses_all"`
}

// CreateExpense handles recording a new expense
// @Summary     Record an expense
// @Description Record a new expense under one of the user's categories
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/ [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req.CategoryID, req.AddedExpenseAmount, req.ExpenseDescription)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": toExpenseResponse(*expense)})
}

// UpdateExpense handles a partial expense update
// @Summary     Update expense
// @Description Update an expense's amount and/or description
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} ExpenseResponse "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.AddedExpenseAmount, req.ExpenseDescription)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": toExpenseResponse(*expense)})
}

// DeleteExpense handles deleting an expense
// @Summary     Delete expense
// @Description Delete a single expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCategoryExpenses handles listing expenses of a category
// @Summary     List category expenses
// @Description List expenses of one of the user's categories, oldest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} ExpenseResponse "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/category/{id} [get]
func (h *ExpenseHandler) GetCategoryExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetCategoryExpenses(userID, categoryID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses := make([]ExpenseResponse, 0, len(result.Data))
	for _, e := range result.Data {
		expenses = append(expenses, toExpenseResponse(e))
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":    expenses,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_items": result.TotalItems,
		"total_pages": result.TotalPages,
	})
}

// SumForCategory handles summing a category's expenses
// @Summary     Sum category expenses
// @Description Exact total of all expenses currently attached to a category
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     200 {object} SumResponse "Category total"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/sum/category/{id} [get]
func (h *ExpenseHandler) SumForCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.expenseService.SumForCategory(userID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_expenses": total})
}

// SumAll handles summing all of the user's expenses
// @Summary     Sum all expenses
// @Description Exact total across every category the user owns
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SumAllResponse "Overall total"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/sum_all [get]
func (h *ExpenseHandler) SumAll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.expenseService.SumAllForUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_expenses_all": total})
}
