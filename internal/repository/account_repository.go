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

// AccountRepository handles account persistence.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Insert stores a new account.
func (r *AccountRepository) Insert(ctx context.Context, a model.Account) error {
	query := `INSERT INTO account (id, name, created_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

// Get retrieves an account by ID. Returns ErrAccountNotFound if it does not exist.
func (r *AccountRepository) Get(ctx context.Context, id string) (model.Account, error) {
	query := `SELECT id, name, created_at FROM account WHERE id = ?`

	var a model.Account
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("querying account: %w", err)
	}

	if a.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// List retrieves all accounts ordered by creation time.
func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	query := `SELECT id, name, created_at FROM account ORDER BY created_at, rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		var a model.Account
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		if a.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
