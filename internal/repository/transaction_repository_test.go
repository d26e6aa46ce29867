package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/testutil"
)

// TestListByAccountAndSymbol_SameDateOrder: transactions on the same calendar
// date replay in insertion order, so replays are deterministic.
func TestListByAccountAndSymbol_SameDateOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Insert(t, db)
	repo := repository.NewTransactionRepository(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testutil.NewTrade(account.ID).WithID("t1").WithDate(date).WithCreatedAt(created).Insert(t, db)
	testutil.NewTrade(account.ID).WithID("t2").WithDate(date).WithCreatedAt(created).AsSell().WithQuantity(5).Insert(t, db)
	testutil.NewTrade(account.ID).WithID("t3").WithDate(date).WithCreatedAt(created).Insert(t, db)

	list, err := repo.ListByAccountAndSymbol(context.Background(), account.ID, "AAPL")
	if err != nil {
		t.Fatalf("ListByAccountAndSymbol() returned unexpected error: %v", err)
	}

	if len(list) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(list))
	}
	for i, want := range []string{"t1", "t2", "t3"} {
		if list[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, list[i].ID)
		}
	}
}

func TestListByAccountAndSymbol_DateBeforeInsertion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Insert(t, db)
	repo := repository.NewTransactionRepository(db)

	// Inserted out of date order; listing must sort by date first.
	testutil.NewTrade(account.ID).WithID("later").
		WithDate(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)).Insert(t, db)
	testutil.NewTrade(account.ID).WithID("earlier").
		WithDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).Insert(t, db)

	list, err := repo.ListByAccountAndSymbol(context.Background(), account.ID, "AAPL")
	if err != nil {
		t.Fatalf("ListByAccountAndSymbol() returned unexpected error: %v", err)
	}

	if list[0].ID != "earlier" || list[1].ID != "later" {
		t.Errorf("Expected date order [earlier later], got [%s %s]", list[0].ID, list[1].ID)
	}
}

func TestListByAccount_FiltersOtherAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Insert(t, db)
	other := testutil.NewAccount().WithName("Other").Insert(t, db)
	repo := repository.NewTransactionRepository(db)

	testutil.NewTrade(account.ID).Insert(t, db)
	testutil.NewTrade(other.ID).Insert(t, db)

	list, err := repo.ListByAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ListByAccount() returned unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 transaction, got %d", len(list))
	}
}

func TestGet_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := repo.Delete(context.Background(), tx, "missing"); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}
