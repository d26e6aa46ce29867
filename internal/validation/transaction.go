package validation

import (
	"strings"
	"time"

	"github.com/stockpilot/backend/internal/api/request"
	"github.com/stockpilot/backend/internal/model"
)

const dateLayout = "2006-01-02"

// ValidateCreateTransaction checks a transaction creation request. Returns nil
// when valid.
func ValidateCreateTransaction(req request.CreateTransaction) error {
	verr := NewError()

	if strings.TrimSpace(req.Symbol) == "" {
		verr.Add("symbol", "symbol is required")
	}

	if req.Type != model.TransactionBuy && req.Type != model.TransactionSell {
		verr.Add("type", `type must be either "buy" or "sell"`)
	}

	if req.Quantity <= 0 {
		verr.Add("quantity", "quantity must be a positive whole number")
	}

	if req.Price <= 0 {
		verr.Add("price", "price must be positive")
	}

	if req.Date == "" {
		verr.Add("date", "date is required")
	} else if _, err := time.Parse(dateLayout, req.Date); err != nil {
		verr.Add("date", "date must be in YYYY-MM-DD format")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
