package model

import "time"

// Position is the derived per-account, per-symbol holding state maintained by
// the ledger. QuantityHeld never goes negative. AveragePurchasePrice is the
// weighted average cost of the shares currently held; it is recomputed on each
// buy and left untouched by sells. RealizedGainLoss accumulates the
// average-cost profit or loss locked in by sells and is preserved when the
// position is sold down to zero.
type Position struct {
	AccountID            string    `json:"-"`
	Symbol               string    `json:"symbol"`
	QuantityHeld         int64     `json:"quantityHeld"`
	AveragePurchasePrice float64   `json:"averagePurchasePrice"`
	TotalInvestment      float64   `json:"totalInvestment"`
	RealizedGainLoss     float64   `json:"realizedGainLoss"`
	UpdatedAt            time.Time `json:"-"`
}

// Holding is an active position enriched with a reference price.
// PriceIsFallback is true when no live price was available and the average
// purchase price was used instead, which makes the unrealized figure zero.
type Holding struct {
	Position
	CurrentPrice       float64 `json:"currentPrice"`
	PriceIsFallback    bool    `json:"priceIsFallback"`
	CurrentValue       float64 `json:"currentValue"`
	UnrealizedGainLoss float64 `json:"unrealizedGainLoss"`
	TotalGainLoss      float64 `json:"totalGainLoss"`
}

// PortfolioSummary is a pure projection of an account's portfolio, recomputed
// on every read. Two profit/loss methods coexist deliberately: each holding
// carries average-cost figures, while NetGainLoss is the raw difference
// between everything sold and everything bought across the full history.
// All monetary values are rounded to two decimal places.
type PortfolioSummary struct {
	Holdings        []Holding `json:"holdings"`
	TotalValue      float64   `json:"totalValue"`
	TotalInvestment float64   `json:"totalInvestment"`
	TotalUnrealized float64   `json:"totalUnrealizedGainLoss"`
	TotalRealized   float64   `json:"totalRealizedGainLoss"`
	TotalBuyValue   float64   `json:"totalBuyValue"`
	TotalSellValue  float64   `json:"totalSellValue"`
	NetGainLoss     float64   `json:"netGainLoss"`
	ReturnPercent   float64   `json:"returnPercent"`
}

// PortfolioPerformance extends the summary with simple ranking metrics.
type PortfolioPerformance struct {
	PortfolioSummary
	HoldingCount   int               `json:"holdingCount"`
	BestPerformer  *PerformerSummary `json:"bestPerformer,omitempty"`
	WorstPerformer *PerformerSummary `json:"worstPerformer,omitempty"`
}

// PerformerSummary identifies a holding by its unrealized return.
type PerformerSummary struct {
	Symbol        string  `json:"symbol"`
	ReturnPercent float64 `json:"returnPercent"`
}
