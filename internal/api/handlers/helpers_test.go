package handlers_test

import "github.com/stockpilot/backend/internal/api/request"

func requestOf(symbol, typ string, quantity int64, price float64, date string) request.CreateTransaction {
	return request.CreateTransaction{
		Symbol:   symbol,
		Type:     typ,
		Quantity: quantity,
		Price:    price,
		Date:     date,
	}
}
