// Package request defines the JSON request bodies accepted by the API.
package request

// CreateTransaction is the body for recording a buy or sell.
type CreateTransaction struct {
	Symbol   string  `json:"symbol"`
	Type     string  `json:"type"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes"`
}
