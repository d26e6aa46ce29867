package model

// SymbolAnalysis is a ground-truth breakdown for one symbol, recomputed from
// the raw transaction history independently of the incrementally maintained
// position. RemainingQuantity must always equal the live position's
// QuantityHeld; operators use this to audit the ledger.
type SymbolAnalysis struct {
	Symbol               string  `json:"symbol"`
	TotalBoughtQuantity  int64   `json:"totalBoughtQuantity"`
	TotalBoughtValue     float64 `json:"totalBoughtValue"`
	TotalSoldQuantity    int64   `json:"totalSoldQuantity"`
	TotalSoldValue       float64 `json:"totalSoldValue"`
	RemainingQuantity    int64   `json:"remainingQuantity"`
	AveragePurchasePrice float64 `json:"averagePurchasePrice"`
	RealizedGainLoss     float64 `json:"realizedGainLoss"`
	TotalReturnPercent   float64 `json:"totalReturnPercent"`
	TransactionCount     int     `json:"transactionCount"`
}
