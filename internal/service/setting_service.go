package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/secrets"
)

const providerAPIKeySetting = "market_provider_api_key"

// SettingService manages application settings. Sensitive values are encrypted
// at rest with the configured fernet key.
type SettingService struct {
	settings *repository.SettingRepository
	keeper   *secrets.Keeper
}

// NewSettingService creates a new SettingService. keeper may be nil when no
// encryption key is configured; storing sensitive settings then fails.
func NewSettingService(settings *repository.SettingRepository, keeper *secrets.Keeper) *SettingService {
	return &SettingService{settings: settings, keeper: keeper}
}

// SetProviderAPIKey encrypts and stores the market provider API key.
func (s *SettingService) SetProviderAPIKey(ctx context.Context, apiKey string) error {
	if s.keeper == nil {
		return errors.New("secret encryption is not configured")
	}

	token, err := s.keeper.Encrypt(apiKey)
	if err != nil {
		return fmt.Errorf("encrypting provider API key: %w", err)
	}
	return s.settings.Set(ctx, providerAPIKeySetting, token)
}

// ProviderAPIKey retrieves and decrypts the market provider API key. The
// second return value is false when no key has been stored.
func (s *SettingService) ProviderAPIKey(ctx context.Context) (string, bool, error) {
	token, ok, err := s.settings.Get(ctx, providerAPIKeySetting)
	if err != nil || !ok {
		return "", false, err
	}
	if s.keeper == nil {
		return "", false, errors.New("secret encryption is not configured")
	}

	apiKey, err := s.keeper.Decrypt(token)
	if err != nil {
		return "", false, fmt.Errorf("decrypting provider API key: %w", err)
	}
	return apiKey, true, nil
}
