package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stockpilot/backend/internal/model"
)

// QuoteRepository handles cached reference prices.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Get retrieves the cached quote for a symbol. The second return value is
// false when no quote has ever been cached.
func (r *QuoteRepository) Get(ctx context.Context, symbol string) (model.Quote, bool, error) {
	query := `SELECT symbol, price, as_of FROM quote WHERE symbol = ?`

	var q model.Quote
	var asOf string
	err := r.db.QueryRowContext(ctx, query, symbol).Scan(&q.Symbol, &q.Price, &asOf)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quote{}, false, nil
	}
	if err != nil {
		return model.Quote{}, false, fmt.Errorf("querying quote: %w", err)
	}

	if q.AsOf, err = ParseTime(asOf); err != nil {
		return model.Quote{}, false, err
	}
	return q, true, nil
}

// Upsert stores a quote, replacing any previous price for the symbol.
func (r *QuoteRepository) Upsert(ctx context.Context, q model.Quote) error {
	query := `INSERT INTO quote (symbol, price, as_of) VALUES (?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET price = excluded.price, as_of = excluded.as_of`

	_, err := r.db.ExecContext(ctx, query, q.Symbol, q.Price, q.AsOf.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting quote: %w", err)
	}
	return nil
}
