package services

import (
	"strings"
	"testing"

	"budgetbook/internal/models"
	"budgetbook/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Groceries")
		testutil.AssertNoError(t, err)

		if cat.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.UserID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, cat.UserID)
		}
	})

	t.Run("trims_whitespace", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "  Rent  ")
		testutil.AssertNoError(t, err)
		if cat.Name != "Rent" {
			t.Errorf("expected trimmed name Rent, got %q", cat.Name)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Food")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Food")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("duplicate_name_different_users_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user1.ID, "Travel")
		testutil.AssertNoError(t, err)

		// Same name for different user should succeed
		_, err = svc.CreateCategory(user2.ID, "Travel")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("name_too_long", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		long := strings.Repeat("x", models.MaxCategoryNameLength+1)
		_, err := svc.CreateCategory(user.ID, long)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("length_counts_runes_not_bytes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		// 100 three-byte runes: over 100 bytes, but within the 100-character bound.
		name := strings.Repeat("食", models.MaxCategoryNameLength)
		cat, err := svc.CreateCategory(user.ID, name)
		testutil.AssertNoError(t, err)
		if cat.Name != name {
			t.Errorf("expected multibyte name to be stored unchanged")
		}

		_, err = svc.CreateCategory(user.ID, name+"食")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("returns_user_categories_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		first := testutil.CreateTestCategory(t, db, user1.ID)
		second := testutil.CreateTestCategory(t, db, user1.ID)
		testutil.CreateTestCategory(t, db, user2.ID)

		categories, err := svc.GetUserCategories(user1.ID)
		testutil.AssertNoError(t, err)

		if len(categories) != 2 {
			t.Fatalf("expected 2 categories for user1, got %d", len(categories))
		}
		if categories[0].ID != first.ID || categories[1].ID != second.ID {
			t.Errorf("expected creation order %d,%d, got %d,%d",
				first.ID, second.ID, categories[0].ID, categories[1].ID)
		}
	})

	t.Run("preloads_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpense(t, db, cat.ID, 1250)
		testutil.CreateTestExpense(t, db, cat.ID, 725)

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)

		if len(categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(categories))
		}
		if len(categories[0].Expenses) != 2 {
			t.Errorf("expected 2 preloaded expenses, got %d", len(categories[0].Expenses))
		}
	})

	t.Run("empty_list_for_new_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("expected no categories, got %d", len(categories))
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategory(t, db, user.ID)

		cat, err := svc.GetCategoryByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if cat.ID != created.ID {
			t.Errorf("expected category ID %d, got %d", created.ID, cat.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetCategoryByID(user.ID, 99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, owner.ID)

		// A foreign category must be indistinguishable from a missing one.
		_, err := svc.GetCategoryByID(intruder.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("renames", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategoryWithName(t, db, user.ID, "Old Name")

		cat, err := svc.UpdateCategory(user.ID, created.ID, "New Name")
		testutil.AssertNoError(t, err)
		if cat.Name != "New Name" {
			t.Errorf("expected name 'New Name', got %s", cat.Name)
		}

		reloaded, err := svc.GetCategoryByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if reloaded.Name != "New Name" {
			t.Errorf("expected persisted name 'New Name', got %s", reloaded.Name)
		}
	})

	t.Run("same_name_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategoryWithName(t, db, user.ID, "Keep")

		_, err := svc.UpdateCategory(user.ID, created.ID, "Keep")
		testutil.AssertNoError(t, err)
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Taken")
		other := testutil.CreateTestCategoryWithName(t, db, user.ID, "Other")

		_, err := svc.UpdateCategory(user.ID, other.ID, "Taken")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("other_users_category_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, owner.ID)

		_, err := svc.UpdateCategory(intruder.ID, cat.ID, "Hijacked")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("deletes_category_and_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestExpense(t, db, cat.ID, 1250)
		testutil.CreateTestExpense(t, db, cat.ID, 725)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, cat.ID))

		_, err := svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		var count int64
		if err := db.Model(&models.Expense{}).Where("category_id = ?", cat.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count expenses: %v", err)
		}
		if count != 0 {
			t.Errorf("expected cascade to remove expenses, %d remain", count)
		}
	})

	t.Run("leaves_other_categories_alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		doomed := testutil.CreateTestCategory(t, db, user.ID)
		kept := testutil.CreateTestCategory(t, db, user.ID)
		keptExpense := testutil.CreateTestExpense(t, db, kept.ID, 500)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, doomed.ID))

		var expense models.Expense
		if err := db.First(&expense, keptExpense.ID).Error; err != nil {
			t.Errorf("expense in surviving category should remain: %v", err)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteCategory(user.ID, 99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, owner.ID)

		err := svc.DeleteCategory(intruder.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		_, err = svc.GetCategoryByID(owner.ID, cat.ID)
		testutil.AssertNoError(t, err)
	})
}
