package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/money"
	"budgetbook/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn    func(userID uint, name string) (*models.Category, error)
	getUserCategoriesFn func(userID uint) ([]models.Category, error)
	getCategoryByIDFn   func(userID, categoryID uint) (*models.Category, error)
	updateCategoryFn    func(userID, categoryID uint, name string) (*models.Category, error)
	deleteCategoryFn    func(userID, categoryID uint) error
}

func (m *mockCategoryService) CreateCategory(userID uint, name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	if m.getUserCategoriesFn != nil {
		return m.getUserCategoriesFn(userID)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, categoryID uint, name string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, categoryID, name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID uint) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/categories", handler.CreateCategory)
	auth.GET("/categories", handler.GetUserCategories)
	auth.PUT("/categories/:id", handler.UpdateCategory)
	auth.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(_ uint, name string) (*models.Category, error) {
				return &models.Category{
					Base: models.Base{ID: 1},
					Name: name,
				}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{"category_name":"Groceries"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		cat := result["category"].(map[string]interface{})
		if cat["category_name"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", cat["category_name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on blank name", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{"category_name":"   "}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on duplicate name", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(_ uint, _ string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		handler := NewCategoryHandler(catSvc, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{"category_name":"Groceries"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY")
	})
}

func TestCategoryHandler_GetUserCategories(t *testing.T) {
	t.Run("returns categories with totals", func(t *testing.T) {
		catSvc := &mockCategoryService{
			getUserCategoriesFn: func(_ uint) ([]models.Category, error) {
				return []models.Category{
					{
						Base: models.Base{ID: 1},
						Name: "Groceries",
						Expenses: []models.Expense{
							{Base: models.Base{ID: 1}, CategoryID: 1, Amount: 1250},
							{Base: models.Base{ID: 2}, CategoryID: 1, Amount: 725},
						},
					},
				}, nil
			},
		}
		expSvc := &mockExpenseService{
			sumAllForUserFn: func(_ uint) (money.Cents, error) {
				return 1975, nil
			},
		}
		handler := NewCategoryHandler(catSvc, expSvc)
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		categories := result["categories"].([]interface{})
		if len(categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(categories))
		}
		cat := categories[0].(map[string]interface{})
		if cat["total_expenses"] != 19.75 {
			t.Errorf("expected total_expenses 19.75, got %v", cat["total_expenses"])
		}
		if result["total_expenses_all"] != 19.75 {
			t.Errorf("expected total_expenses_all 19.75, got %v", result["total_expenses_all"])
		}
	})

	t.Run("returns empty list for new user", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		categories := result["categories"].([]interface{})
		if len(categories) != 0 {
			t.Errorf("expected empty categories list, got %d", len(categories))
		}
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		catSvc := &mockCategoryService{
			updateCategoryFn: func(_, categoryID uint, name string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: categoryID}, Name: name}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "PUT", "/categories/3", `{"category_name":"Renamed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		cat := result["category"].(map[string]interface{})
		if cat["category_name"] != "Renamed" {
			t.Errorf("expected Renamed, got %v", cat["category_name"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		catSvc := &mockCategoryService{
			updateCategoryFn: func(_, _ uint, _ string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewCategoryHandler(catSvc, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "PUT", "/categories/99", `{"category_name":"Renamed"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "PUT", "/categories/abc", `{"category_name":"Renamed"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var deletedID uint
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(_, categoryID uint) error {
				deletedID = categoryID
				return nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "DELETE", "/categories/5", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if deletedID != 5 {
			t.Errorf("expected category 5 deleted, got %d", deletedID)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(_, _ uint) error {
				return apperrors.ErrCategoryNotFound
			},
		}
		handler := NewCategoryHandler(catSvc, &mockExpenseService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "DELETE", "/categories/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
