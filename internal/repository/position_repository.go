package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stockpilot/backend/internal/model"
)

// PositionRepository handles the derived per-account, per-symbol holding rows.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

const positionColumns = `account_id, symbol, quantity_held, average_purchase_price, total_investment, realized_gain_loss, updated_at`

func scanPosition(scan func(...any) error) (model.Position, error) {
	var p model.Position
	var updatedAt string
	if err := scan(&p.AccountID, &p.Symbol, &p.QuantityHeld, &p.AveragePurchasePrice, &p.TotalInvestment, &p.RealizedGainLoss, &updatedAt); err != nil {
		return model.Position{}, err
	}

	var err error
	if p.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Position{}, err
	}
	return p, nil
}

// Get retrieves a position, or nil when no transaction has ever been recorded
// for the account and symbol.
func (r *PositionRepository) Get(ctx context.Context, accountID, symbol string) (*model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM position WHERE account_id = ? AND symbol = ?`

	row := r.db.QueryRowContext(ctx, query, accountID, symbol)
	p, err := scanPosition(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying position: %w", err)
	}
	return &p, nil
}

// ListActive retrieves all positions with a non-zero quantity for an account,
// ordered by symbol.
func (r *PositionRepository) ListActive(ctx context.Context, accountID string) ([]model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM position
		WHERE account_id = ? AND quantity_held > 0
		ORDER BY symbol`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("querying positions: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		p, err := scanPosition(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// List retrieves every position row for an account, including sold-out ones.
// Sold-out rows still carry accumulated realized gain/loss.
func (r *PositionRepository) List(ctx context.Context, accountID string) ([]model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM position
		WHERE account_id = ?
		ORDER BY symbol`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("querying positions: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		p, err := scanPosition(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// ActiveSymbols retrieves the distinct symbols held across all accounts, used
// by the quote refresh job.
func (r *PositionRepository) ActiveSymbols(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT symbol FROM position WHERE quantity_held > 0 ORDER BY symbol`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying active symbols: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// Upsert stores a position within tx, replacing any existing row for the same
// account and symbol.
func (r *PositionRepository) Upsert(ctx context.Context, tx *sql.Tx, p model.Position) error {
	query := `INSERT INTO position (` + positionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, symbol) DO UPDATE SET
			quantity_held = excluded.quantity_held,
			average_purchase_price = excluded.average_purchase_price,
			total_investment = excluded.total_investment,
			realized_gain_loss = excluded.realized_gain_loss,
			updated_at = excluded.updated_at`

	_, err := tx.ExecContext(ctx, query,
		p.AccountID, p.Symbol, p.QuantityHeld, p.AveragePurchasePrice,
		p.TotalInvestment, p.RealizedGainLoss, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting position: %w", err)
	}
	return nil
}

// Delete removes a position within tx. Used when a deletion replay leaves no
// transactions behind for the symbol.
func (r *PositionRepository) Delete(ctx context.Context, tx *sql.Tx, accountID, symbol string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM position WHERE account_id = ? AND symbol = ?`, accountID, symbol)
	if err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}
	return nil
}
