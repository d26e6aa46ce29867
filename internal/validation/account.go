package validation

import (
	"strings"

	"github.com/stockpilot/backend/internal/api/request"
)

// ValidateCreateAccount checks an account creation request. Returns nil when
// valid.
func ValidateCreateAccount(req request.CreateAccount) error {
	verr := NewError()

	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "name is required")
	} else if len(req.Name) > 100 {
		verr.Add("name", "name must be at most 100 characters")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
