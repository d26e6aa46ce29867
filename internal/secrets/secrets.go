// Package secrets encrypts sensitive setting values at rest using fernet
// tokens.
package secrets

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// Keeper encrypts and decrypts strings with a fernet key.
type Keeper struct {
	key *fernet.Key
}

// NewKeeper creates a Keeper from a base64-encoded fernet key.
func NewKeeper(encodedKey string) (*Keeper, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decoding fernet key: %w", err)
	}
	return &Keeper{key: key}, nil
}

// Encrypt returns a fernet token for the plaintext.
func (k *Keeper) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), k.key)
	if err != nil {
		return "", fmt.Errorf("encrypting value: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire.
func (k *Keeper) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{k.key})
	if plaintext == nil {
		return "", errors.New("invalid or tampered token")
	}
	return string(plaintext), nil
}
