package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/backend/internal/api/request"
	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/ledger"
	"github.com/stockpilot/backend/internal/model"
	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/validation"
)

const dateLayout = "2006-01-02"

// TransactionService records and deletes transactions, keeping the derived
// position state consistent with the trade history. Writes to one account's
// symbol are serialized by a per-key mutex; reads never take the lock.
type TransactionService struct {
	db           *sql.DB
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
	positions    *repository.PositionRepository

	locks sync.Map // "accountID/symbol" -> *sync.Mutex
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	db *sql.DB,
	accounts *repository.AccountRepository,
	transactions *repository.TransactionRepository,
	positions *repository.PositionRepository,
) *TransactionService {
	return &TransactionService{
		db:           db,
		accounts:     accounts,
		transactions: transactions,
		positions:    positions,
	}
}

func (s *TransactionService) lock(accountID, symbol string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(accountID+"/"+symbol, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CreateTransaction validates and records a buy or sell, updating the symbol's
// position in the same database transaction. A rejected request leaves no
// state behind.
func (s *TransactionService) CreateTransaction(ctx context.Context, accountID string, req request.CreateTransaction) (model.Transaction, error) {
	if err := validation.ValidateCreateTransaction(req); err != nil {
		return model.Transaction{}, err
	}
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return model.Transaction{}, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date: %w", err)
	}

	t := model.Transaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Symbol:    symbol,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Date:      date,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: time.Now().UTC(),
	}

	mu := s.lock(accountID, symbol)
	mu.Lock()
	defer mu.Unlock()

	pos, err := s.positions.Get(ctx, accountID, symbol)
	if err != nil {
		return model.Transaction{}, err
	}

	var next model.Position
	switch t.Type {
	case model.TransactionBuy:
		next, err = ledger.ApplyBuy(pos, accountID, symbol, t.Quantity, t.Price)
	case model.TransactionSell:
		if pos == nil {
			err = &apperrors.InsufficientHoldingsError{Symbol: symbol, Requested: t.Quantity, Available: 0}
		} else {
			next, _, err = ledger.ApplySell(pos, t.Quantity, t.Price)
		}
	}
	if err != nil {
		return model.Transaction{}, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.transactions.Insert(ctx, tx, t); err != nil {
			return err
		}
		return s.positions.Upsert(ctx, tx, next)
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// DeleteTransaction removes a transaction and rebuilds the symbol's position
// by replaying the remaining history. When no transactions remain for the
// symbol, the position row is removed entirely.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	t, err := s.transactions.Get(ctx, id)
	if err != nil {
		return err
	}

	mu := s.lock(t.AccountID, t.Symbol)
	mu.Lock()
	defer mu.Unlock()

	history, err := s.transactions.ListByAccountAndSymbol(ctx, t.AccountID, t.Symbol)
	if err != nil {
		return err
	}

	remaining := make([]model.Transaction, 0, len(history)-1)
	for _, h := range history {
		if h.ID != id {
			remaining = append(remaining, h)
		}
	}

	pos, err := ledger.Replay(t.AccountID, t.Symbol, remaining)
	if err != nil {
		return fmt.Errorf("rebuilding position after deletion: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.transactions.Delete(ctx, tx, id); err != nil {
			return err
		}
		if len(remaining) == 0 {
			return s.positions.Delete(ctx, tx, t.AccountID, t.Symbol)
		}
		return s.positions.Upsert(ctx, tx, pos)
	})
}

// ListTransactions retrieves an account's transactions, newest first, with
// each sell annotated with its proportional gain/loss: sale value minus the
// share of the symbol's total buy value matching the sold quantity.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID string) ([]model.TransactionResponse, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, err
	}

	history, err := s.transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	type buyTotals struct {
		quantity int64
		value    float64
	}
	buys := map[string]buyTotals{}
	for _, t := range history {
		if t.Type == model.TransactionBuy {
			b := buys[t.Symbol]
			b.quantity += t.Quantity
			b.value += t.TotalValue()
			buys[t.Symbol] = b
		}
	}

	responses := make([]model.TransactionResponse, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		t := history[i]
		resp := model.TransactionResponse{
			ID:         t.ID,
			Symbol:     t.Symbol,
			Type:       t.Type,
			Quantity:   t.Quantity,
			Price:      t.Price,
			Date:       t.Date,
			Notes:      t.Notes,
			CreatedAt:  t.CreatedAt,
			TotalValue: round2(t.TotalValue()),
		}
		if t.Type == model.TransactionSell {
			if b := buys[t.Symbol]; b.quantity > 0 {
				costBasis := b.value * float64(t.Quantity) / float64(b.quantity)
				gainLoss := round2(t.TotalValue() - costBasis)
				resp.GainLoss = &gainLoss
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Summary aggregates an account's full trade history using the global method:
// net gain/loss is total sell value minus total buy value, with no cost-basis
// matching.
func (s *TransactionService) Summary(ctx context.Context, accountID string) (model.TransactionSummary, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return model.TransactionSummary{}, err
	}

	history, err := s.transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return model.TransactionSummary{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	summary := model.TransactionSummary{
		Symbols:          map[string]model.SymbolTotals{},
		TransactionCount: len(history),
	}
	for _, t := range history {
		totals := summary.Symbols[t.Symbol]
		switch t.Type {
		case model.TransactionBuy:
			summary.TotalBuyValue += t.TotalValue()
			summary.TotalBuyQuantity += t.Quantity
			summary.BuyCount++
			totals.TotalBoughtValue += t.TotalValue()
			totals.BuyCount++
		case model.TransactionSell:
			summary.TotalSellValue += t.TotalValue()
			summary.TotalSellQuantity += t.Quantity
			summary.SellCount++
			totals.TotalSoldValue += t.TotalValue()
			totals.SellCount++
		}
		totals.GainLoss = round2(totals.TotalSoldValue - totals.TotalBoughtValue)
		summary.Symbols[t.Symbol] = totals
	}

	summary.NetGainLoss = round2(summary.TotalSellValue - summary.TotalBuyValue)
	if summary.TotalBuyValue > 0 {
		summary.ReturnPercent = round2(summary.NetGainLoss / summary.TotalBuyValue * 100)
	}
	summary.TotalBuyValue = round2(summary.TotalBuyValue)
	summary.TotalSellValue = round2(summary.TotalSellValue)
	for symbol, totals := range summary.Symbols {
		totals.TotalBoughtValue = round2(totals.TotalBoughtValue)
		totals.TotalSoldValue = round2(totals.TotalSoldValue)
		summary.Symbols[symbol] = totals
	}
	return summary, nil
}

func (s *TransactionService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
