package validation

import (
	"github.com/google/uuid"

	"github.com/stockpilot/backend/internal/apperrors"
)

// ValidateUUID checks that the value is a well-formed UUID.
func ValidateUUID(value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return apperrors.ErrInvalidUUID
	}
	return nil
}
