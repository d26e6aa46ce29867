package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/ledger"
	"github.com/stockpilot/backend/internal/model"
	"github.com/stockpilot/backend/internal/repository"
)

// AnalysisService produces per-symbol audit breakdowns recomputed from the raw
// transaction history.
type AnalysisService struct {
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(accounts *repository.AccountRepository, transactions *repository.TransactionRepository) *AnalysisService {
	return &AnalysisService{accounts: accounts, transactions: transactions}
}

// Analyze recomputes the full breakdown for one symbol from its history.
// Returns ErrPositionNotFound when the account has never traded the symbol.
func (s *AnalysisService) Analyze(ctx context.Context, accountID, symbol string) (model.SymbolAnalysis, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return model.SymbolAnalysis{}, err
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	history, err := s.transactions.ListByAccountAndSymbol(ctx, accountID, symbol)
	if err != nil {
		return model.SymbolAnalysis{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetAnalysis, err)
	}
	if len(history) == 0 {
		return model.SymbolAnalysis{}, apperrors.ErrPositionNotFound
	}

	analysis, err := ledger.Analyze(symbol, history)
	if err != nil {
		return model.SymbolAnalysis{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetAnalysis, err)
	}

	analysis.TotalBoughtValue = round2(analysis.TotalBoughtValue)
	analysis.TotalSoldValue = round2(analysis.TotalSoldValue)
	analysis.AveragePurchasePrice = round2(analysis.AveragePurchasePrice)
	analysis.RealizedGainLoss = round2(analysis.RealizedGainLoss)
	analysis.TotalReturnPercent = round2(analysis.TotalReturnPercent)
	return analysis, nil
}
