package secrets_test

import (
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/stockpilot/backend/internal/secrets"
)

func generateKey(t *testing.T) string {
	t.Helper()
	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

func TestKeeper_RoundTrip(t *testing.T) {
	keeper, err := secrets.NewKeeper(generateKey(t))
	if err != nil {
		t.Fatalf("NewKeeper() returned unexpected error: %v", err)
	}

	token, err := keeper.Encrypt("alpha-vantage-api-key")
	if err != nil {
		t.Fatalf("Encrypt() returned unexpected error: %v", err)
	}
	if token == "alpha-vantage-api-key" {
		t.Fatal("Expected ciphertext to differ from plaintext")
	}

	plaintext, err := keeper.Decrypt(token)
	if err != nil {
		t.Fatalf("Decrypt() returned unexpected error: %v", err)
	}
	if plaintext != "alpha-vantage-api-key" {
		t.Errorf("Expected round trip to return original value, got %q", plaintext)
	}
}

func TestKeeper_WrongKey(t *testing.T) {
	keeper, err := secrets.NewKeeper(generateKey(t))
	if err != nil {
		t.Fatalf("NewKeeper() returned unexpected error: %v", err)
	}
	other, err := secrets.NewKeeper(generateKey(t))
	if err != nil {
		t.Fatalf("NewKeeper() returned unexpected error: %v", err)
	}

	token, err := keeper.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt() returned unexpected error: %v", err)
	}

	if _, err := other.Decrypt(token); err == nil {
		t.Error("Expected decryption with a different key to fail")
	}
}

func TestNewKeeper_InvalidKey(t *testing.T) {
	if _, err := secrets.NewKeeper("not-a-key"); err == nil {
		t.Error("Expected error for malformed key")
	}
}
