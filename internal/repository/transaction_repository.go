package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/model"
)

// TransactionRepository handles trade persistence. All listing queries order
// by date, then created_at, then rowid, so same-date transactions replay in
// insertion order.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, account_id, symbol, type, quantity, price, date, notes, created_at`

func scanTransaction(scan func(...any) error) (model.Transaction, error) {
	var t model.Transaction
	var date, createdAt string
	if err := scan(&t.ID, &t.AccountID, &t.Symbol, &t.Type, &t.Quantity, &t.Price, &date, &t.Notes, &createdAt); err != nil {
		return model.Transaction{}, err
	}

	var err error
	if t.Date, err = ParseTime(date); err != nil {
		return model.Transaction{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// Get retrieves a single transaction by ID. Returns ErrTransactionNotFound if
// it does not exist.
func (r *TransactionRepository) Get(ctx context.Context, id string) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM trade WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("querying transaction: %w", err)
	}
	return t, nil
}

// ListByAccount retrieves all transactions for an account in replay order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM trade
		WHERE account_id = ?
		ORDER BY date, created_at, rowid`

	return r.list(ctx, query, accountID)
}

// ListByAccountAndSymbol retrieves one symbol's transactions for an account in
// replay order.
func (r *TransactionRepository) ListByAccountAndSymbol(ctx context.Context, accountID, symbol string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM trade
		WHERE account_id = ? AND symbol = ?
		ORDER BY date, created_at, rowid`

	return r.list(ctx, query, accountID, symbol)
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Insert stores a new transaction within tx so the trade row and its position
// update commit together.
func (r *TransactionRepository) Insert(ctx context.Context, tx *sql.Tx, t model.Transaction) error {
	query := `INSERT INTO trade (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		t.ID, t.AccountID, t.Symbol, t.Type, t.Quantity, t.Price,
		t.Date.Format(dateLayout), t.Notes, t.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// Delete removes a transaction within tx. Returns ErrTransactionNotFound if no
// row was deleted.
func (r *TransactionRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM trade WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
