package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/backend/internal/api/request"
	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/model"
	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/validation"
)

// AccountService manages accounts.
type AccountService struct {
	accounts *repository.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts *repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// CreateAccount validates and stores a new account.
func (s *AccountService) CreateAccount(ctx context.Context, req request.CreateAccount) (model.Account, error) {
	if err := validation.ValidateCreateAccount(req); err != nil {
		return model.Account{}, err
	}

	account := model.Account{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return model.Account{}, fmt.Errorf("creating account: %w", err)
	}
	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id string) (model.Account, error) {
	return s.accounts.Get(ctx, id)
}

// ListAccounts retrieves all accounts.
func (s *AccountService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveAccounts, err)
	}
	return accounts, nil
}
