package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/money"
	"budgetbook/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	expenseService  services.ExpenseServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, expenseService services.ExpenseServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, expenseService: expenseService}
}

// CategoryRequest represents the payload for creating or renaming a category
type CategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required,notblank,max=100"`
}

// ExpenseResponse represents an expense in responses
type ExpenseResponse struct {
	ExpenseID          uint        `json:"expense_id"`
	CategoryID         uint        `json:"category_id"`
	AddedExpenseAmount money.Cents `json:"added_expense_amount"`
	ExpenseDescription string      `json:"expense_description"`
	Timestamp          time.Time   `json:"timestamp"`
}

// CategoryResponse represents a category in responses
type CategoryResponse struct {
	CategoryID    uint              `json:"category_id"`
	CategoryName  string            `json:"category_name"`
	Expenses      []ExpenseResponse `json:"expenses"`
	TotalExpenses money.Cents       `json:"total_expenses"`
}

// DashboardResponse is the payload backing the dashboard page
type DashboardResponse struct {
	Categories       []CategoryResponse `json:"categories"`
	TotalExpensesAll money.Cents        `json:"total_expenses_all"`
}

func toExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          e.ID,
		CategoryID:         e.CategoryID,
		AddedExpenseAmount: e.Amount,
		ExpenseDescription: e.Description,
		Timestamp:          e.Timestamp,
	}
}

func toCategoryResponse(cat models.Category) CategoryResponse {
	expenses := make([]ExpenseResponse, 0, len(cat.Expenses))
	var total money.Cents
	for _, e := range cat.Expenses {
		expenses = append(expenses, toExpenseResponse(e))
		total += e.Amount
	}
	return CategoryResponse{
		CategoryID:    cat.ID,
		CategoryName:  cat.Name,
		Expenses:      expenses,
		TotalExpenses: total,
	}
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new spending category for the authenticated user
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/ [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.CategoryName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": toCategoryResponse(*category)})
}

// GetUserCategories handles the retrieval of all categories for a user
// @Summary     List categories
// @Description List the authenticated user's categories in creation order, with
// @Description nested expenses, per-category totals, and the overall total.
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse "Categories with totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/ [get]
func (h *CategoryHandler) GetUserCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totalAll, err := h.expenseService.SumAllForUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		responses = append(responses, toCategoryResponse(cat))
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":         responses,
		"total_expenses_all": totalAll,
	})
}

// UpdateCategory handles renaming a category
// @Summary     Update category
// @Description Rename an existing category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Param       request body CategoryRequest true "Updated category details"
// @Success     200 {object} CategoryResponse "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
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

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.CategoryName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": toCategoryResponse(*category)})
}

// DeleteCategory handles deleting a category and its expenses
// @Summary     Delete category
// @Description Delete a category; all of its expenses are removed with it
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     204 "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
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

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
