package model

import "time"

// Quote is a cached reference price for a symbol.
type Quote struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	AsOf   time.Time `json:"asOf"`
}
