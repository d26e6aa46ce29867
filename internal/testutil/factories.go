package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot/backend/internal/model"
)

// AccountBuilder builds and inserts test accounts.
type AccountBuilder struct {
	account model.Account
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{account: model.Account{
		ID:        uuid.NewString(),
		Name:      "Test Account",
		CreatedAt: time.Now().UTC(),
	}}
}

// WithID sets the account ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.account.ID = id
	return b
}

// WithName sets the account name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.account.Name = name
	return b
}

// Insert stores the account and returns it.
func (b *AccountBuilder) Insert(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	_, err := db.Exec(`INSERT INTO account (id, name, created_at) VALUES (?, ?, ?)`,
		b.account.ID, b.account.Name, b.account.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to insert test account: %v", err)
	}
	return b.account
}

// TradeBuilder builds and inserts test transactions.
type TradeBuilder struct {
	trade model.Transaction
}

// NewTrade creates a TradeBuilder with sensible defaults: a buy of 10 shares
// of AAPL at 100.
func NewTrade(accountID string) *TradeBuilder {
	return &TradeBuilder{trade: model.Transaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Symbol:    "AAPL",
		Type:      model.TransactionBuy,
		Quantity:  10,
		Price:     100,
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}}
}

// WithID sets the transaction ID.
func (b *TradeBuilder) WithID(id string) *TradeBuilder {
	b.trade.ID = id
	return b
}

// WithSymbol sets the symbol.
func (b *TradeBuilder) WithSymbol(symbol string) *TradeBuilder {
	b.trade.Symbol = symbol
	return b
}

// AsSell makes the trade a sell.
func (b *TradeBuilder) AsSell() *TradeBuilder {
	b.trade.Type = model.TransactionSell
	return b
}

// WithQuantity sets the quantity.
func (b *TradeBuilder) WithQuantity(quantity int64) *TradeBuilder {
	b.trade.Quantity = quantity
	return b
}

// WithPrice sets the price.
func (b *TradeBuilder) WithPrice(price float64) *TradeBuilder {
	b.trade.Price = price
	return b
}

// WithDate sets the trade date.
func (b *TradeBuilder) WithDate(date time.Time) *TradeBuilder {
	b.trade.Date = date
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *TradeBuilder) WithCreatedAt(createdAt time.Time) *TradeBuilder {
	b.trade.CreatedAt = createdAt
	return b
}

// Insert stores the trade row directly, bypassing the ledger. Tests that need
// consistent position state should record trades through the service instead.
func (b *TradeBuilder) Insert(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	_, err := db.Exec(`INSERT INTO trade (id, account_id, symbol, type, quantity, price, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.trade.ID, b.trade.AccountID, b.trade.Symbol, b.trade.Type, b.trade.Quantity,
		b.trade.Price, b.trade.Date.Format("2006-01-02"), b.trade.Notes,
		b.trade.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to insert test trade: %v", err)
	}
	return b.trade
}
