package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beabzk/pft-api/internal/models"
	"github.com/beabzk/pft-api/internal/pagination"
	"github.com/beabzk/pft-api/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid_with_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		tx, err := svc.CreateTransaction(user.ID, &cat.ID, models.TransactionTypeExpense,
			decimal.RequireFromString("42.50"), testutil.Date(2024, time.March, 5), "lunch")
		testutil.AssertNoError(t, err)

		if tx.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, tx.UserID)
		}
		if tx.CategoryID == nil || *tx.CategoryID != cat.ID {
			t.Error("expected transaction to reference the category")
		}
		testutil.AssertDecimalEqual(t, tx.Amount, "42.50")
	})

	t.Run("valid_without_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(user.ID, nil, models.TransactionTypeIncome,
			decimal.RequireFromString("1000.00"), testutil.Date(2024, time.March, 1), "")
		testutil.AssertNoError(t, err)

		if tx.CategoryID != nil {
			t.Errorf("expected no category, got %v", *tx.CategoryID)
		}
	})

	t.Run("another_users_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreignCat := testutil.CreateTestCategory(t, db, other.ID)

		// A validation error on the payload, not a category not-found
		_, err := svc.CreateTransaction(user.ID, &foreignCat.ID, models.TransactionTypeExpense,
			decimal.RequireFromString("10.00"), testutil.Date(2024, time.March, 1), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		unknown := "018f3b9a-0000-7000-8000-000000000000"
		_, err := svc.CreateTransaction(user.ID, &unknown, models.TransactionTypeExpense,
			decimal.RequireFromString("10.00"), testutil.Date(2024, time.March, 1), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		for _, amount := range []string{"0", "-5.00", "0.001", "100000000.00"} {
			_, err := svc.CreateTransaction(user.ID, nil, models.TransactionTypeExpense,
				decimal.RequireFromString(amount), testutil.Date(2024, time.March, 1), "")
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, nil, "transfer",
			decimal.RequireFromString("10.00"), testutil.Date(2024, time.March, 1), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserTransactions(t *testing.T) {
	t.Run("ordered_by_date_descending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 10))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "20.00", testutil.Date(2024, time.March, 25))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "30.00", testutil.Date(2024, time.March, 1))

		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(result.Data))
		}
		for i := 1; i < len(result.Data); i++ {
			if result.Data[i].Date.After(result.Data[i-1].Date) {
				t.Errorf("expected date-descending order, got %v before %v",
					result.Data[i-1].Date, result.Data[i].Date)
			}
		}
	})

	t.Run("equal_dates_ordered_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		date := testutil.Date(2024, time.March, 5)
		first := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10.00", date)
		second := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "20.00", date)

		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		// UUIDv7 ids are time-ordered, so the later insert sorts first
		if result.Data[0].ID != second.ID || result.Data[1].ID != first.ID {
			t.Errorf("expected stable newest-first tie-break, got %s then %s",
				result.Data[0].ID, result.Data[1].ID)
		}
	})

	t.Run("category_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestTransactionWithCategory(t, db, user.ID, &cat.ID,
			models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 1))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "20.00", testutil.Date(2024, time.March, 2))

		result, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{CategoryID: &cat.ID})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 filtered transaction, got %d", result.TotalItems)
		}
		if result.Data[0].CategoryID == nil || *result.Data[0].CategoryID != cat.ID {
			t.Error("expected the filtered transaction to match the category")
		}
	})

	t.Run("returns_user_transactions_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user1.ID, models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 1))
		testutil.CreateTestTransaction(t, db, user2.ID, models.TransactionTypeExpense, "20.00", testutil.Date(2024, time.March, 2))

		result, err := svc.GetUserTransactions(user1.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 transaction for user1, got %d", result.TotalItems)
		}
		if result.Data[0].UserID != user1.ID {
			t.Errorf("expected only user1 transactions, got one owned by %s", result.Data[0].UserID)
		}
	})
}

func TestGetTransactionByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "100.00", testutil.Date(2024, time.March, 5))

		got, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if got.ID != tx.ID {
			t.Errorf("expected transaction %s, got %s", tx.ID, got.ID)
		}
	})

	t.Run("another_users_transaction_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeIncome, "100.00", testutil.Date(2024, time.March, 5))

		// Same response as a genuinely missing record
		_, err := svc.GetTransactionByID(intruder.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("malformed_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetTransactionByID(user.ID, "not-a-uuid")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("update_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 5))

		amount := decimal.RequireFromString("15.75")
		_, err := svc.UpdateTransaction(user.ID, tx.ID, UpdateTransactionInput{Amount: &amount})
		testutil.AssertNoError(t, err)

		updated, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, updated.Amount, "15.75")
	})

	t.Run("clear_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		tx := testutil.CreateTestTransactionWithCategory(t, db, user.ID, &cat.ID,
			models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 5))

		empty := ""
		_, err := svc.UpdateTransaction(user.ID, tx.ID, UpdateTransactionInput{CategoryID: &empty})
		testutil.AssertNoError(t, err)

		updated, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if updated.CategoryID != nil {
			t.Errorf("expected category cleared, got %v", *updated.CategoryID)
		}
	})

	t.Run("another_users_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreignCat := testutil.CreateTestCategory(t, db, other.ID)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 5))

		_, err := svc.UpdateTransaction(user.ID, tx.ID, UpdateTransactionInput{CategoryID: &foreignCat.ID})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("another_users_transaction_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 5))

		desc := "hijacked"
		_, err := svc.UpdateTransaction(intruder.ID, tx.ID, UpdateTransactionInput{Description: &desc})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 5))

		err := svc.DeleteTransaction(user.ID, tx.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("another_users_transaction_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeExpense, "10.00", testutil.Date(2024, time.March, 5))

		err := svc.DeleteTransaction(intruder.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		// Still visible to the owner
		_, err = svc.GetTransactionByID(owner.ID, tx.ID)
		testutil.AssertNoError(t, err)
	})
}
