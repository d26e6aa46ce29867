package model

import "time"

// Transaction type values.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction represents a single buy or sell of a security for an account.
// Transactions are immutable once recorded; the only permitted mutation is
// deletion, which triggers a full replay of the symbol's remaining history.
type Transaction struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Symbol    string    `json:"symbol"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// TotalValue returns quantity times price for this transaction.
func (t Transaction) TotalValue() float64 {
	return float64(t.Quantity) * t.Price
}

// TransactionResponse represents a transaction enriched for API responses.
// GainLoss is populated for sell transactions only: it is the simple
// proportional figure the transaction screen displays (sale value minus the
// matching share of all buy value), not the average-cost realized amount.
type TransactionResponse struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	TotalValue float64   `json:"totalValue"`
	GainLoss   *float64  `json:"gainLoss,omitempty"`
}

// TransactionSummary aggregates an account's full trade history using the
// global method: net gain/loss is total sell value minus total buy value,
// independent of per-position cost basis.
type TransactionSummary struct {
	TotalBuyValue     float64                 `json:"totalBuyValue"`
	TotalSellValue    float64                 `json:"totalSellValue"`
	TotalBuyQuantity  int64                   `json:"totalBuyQuantity"`
	TotalSellQuantity int64                   `json:"totalSellQuantity"`
	NetGainLoss       float64                 `json:"netGainLoss"`
	ReturnPercent     float64                 `json:"returnPercent"`
	Symbols           map[string]SymbolTotals `json:"symbols"`
	TransactionCount  int                     `json:"transactionCount"`
	BuyCount          int                     `json:"buyCount"`
	SellCount         int                     `json:"sellCount"`
}

// SymbolTotals is the per-symbol slice of a TransactionSummary.
type SymbolTotals struct {
	TotalBoughtValue float64 `json:"totalBoughtValue"`
	TotalSoldValue   float64 `json:"totalSoldValue"`
	GainLoss         float64 `json:"gainLoss"`
	BuyCount         int     `json:"buyCount"`
	SellCount        int     `json:"sellCount"`
}
