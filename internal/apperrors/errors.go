package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPositionNotFound indicates that no position exists for the requested
	// account and symbol (no transaction has ever been recorded for it).
	ErrPositionNotFound = errors.New("position not found")
)

// Business logic errors represent validation failures or constraint violations.
// All of them are detected before any state mutation; a rejected operation
// never leaves partial state behind.
var (
	// ErrInvalidQuantity indicates a quantity that is zero, negative, or not a whole number.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")

	// ErrInvalidPrice indicates a price that is zero or negative.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInvalidTransactionType indicates a transaction type other than buy or sell.
	ErrInvalidTransactionType = errors.New(`transaction type must be either "buy" or "sell"`)

	// ErrInsufficientHoldings is the errors.Is target for InsufficientHoldingsError.
	ErrInsufficientHoldings = errors.New("insufficient holdings for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// ErrPriceUnavailable signals that no reference price could be obtained for a
// symbol. It is non-fatal: aggregation degrades to the position's average
// purchase price instead of surfacing this to the caller.
var ErrPriceUnavailable = errors.New("price unavailable")

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrieveAccounts     = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToGetPortfolioSummary  = errors.New("failed to get portfolio summary")
	ErrFailedToGetAnalysis          = errors.New("failed to get symbol analysis")
)

// InsufficientHoldingsError rejects a sell that exceeds the shares currently
// held. It carries the maximum sellable quantity for user-facing messaging.
type InsufficientHoldingsError struct {
	Symbol    string
	Requested int64
	Available int64
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings: cannot sell %d shares of %s, only %d available",
		e.Requested, e.Symbol, e.Available)
}

// Is makes errors.Is(err, ErrInsufficientHoldings) match any
// InsufficientHoldingsError regardless of its fields.
func (e *InsufficientHoldingsError) Is(target error) bool {
	return target == ErrInsufficientHoldings
}
