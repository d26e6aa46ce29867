package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/service"
	"github.com/stockpilot/backend/internal/testutil"
)

func TestAnalyze(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Insert(t, db)
	txSvc := newTransactionService(db)

	mustCreate(t, txSvc, account.ID, buyRequest("AAPL", 10, 100))
	mustCreate(t, txSvc, account.ID, buyRequest("AAPL", 10, 200))
	mustCreate(t, txSvc, account.ID, sellRequest("AAPL", 5, 180))

	svc := service.NewAnalysisService(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
	)

	analysis, err := svc.Analyze(context.Background(), account.ID, "aapl")
	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}

	if analysis.Symbol != "AAPL" {
		t.Errorf("Expected symbol normalized to AAPL, got %q", analysis.Symbol)
	}
	if analysis.TotalBoughtQuantity != 20 || analysis.TotalBoughtValue != 3000 {
		t.Errorf("Unexpected buy totals: %+v", analysis)
	}
	if analysis.TotalSoldQuantity != 5 || analysis.TotalSoldValue != 900 {
		t.Errorf("Unexpected sell totals: %+v", analysis)
	}
	if analysis.RealizedGainLoss != 150 {
		t.Errorf("Expected realized 150, got %f", analysis.RealizedGainLoss)
	}
	if analysis.TransactionCount != 3 {
		t.Errorf("Expected 3 transactions, got %d", analysis.TransactionCount)
	}

	// The audit view must agree with the live position.
	pos, err := repository.NewPositionRepository(db).Get(context.Background(), account.ID, "AAPL")
	if err != nil || pos == nil {
		t.Fatalf("Failed to load position: %v", err)
	}
	if analysis.RemainingQuantity != pos.QuantityHeld {
		t.Errorf("Analysis remaining %d disagrees with position held %d", analysis.RemainingQuantity, pos.QuantityHeld)
	}
}

func TestAnalyze_UnknownSymbol(t *testing.T) {
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Insert(t, db)

	svc := service.NewAnalysisService(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
	)

	_, err := svc.Analyze(context.Background(), account.ID, "TSLA")
	if !errors.Is(err, apperrors.ErrPositionNotFound) {
		t.Errorf("Expected ErrPositionNotFound, got %v", err)
	}
}

func TestAnalyze_AccountNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	svc := service.NewAnalysisService(
		repository.NewAccountRepository(db),
		repository.NewTransactionRepository(db),
	)

	_, err := svc.Analyze(context.Background(), "9b4f0f8e-0000-4000-8000-000000000000", "AAPL")
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}
}
