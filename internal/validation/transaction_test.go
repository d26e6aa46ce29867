package validation_test

import (
	"errors"
	"testing"

	"github.com/stockpilot/backend/internal/api/request"
	"github.com/stockpilot/backend/internal/validation"
)

func TestValidateCreateTransaction_Valid(t *testing.T) {
	req := request.CreateTransaction{
		Symbol: "AAPL", Type: "buy", Quantity: 10, Price: 150.25, Date: "2024-01-15",
	}
	if err := validation.ValidateCreateTransaction(req); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
}

func TestValidateCreateTransaction_CollectsAllFailures(t *testing.T) {
	err := validation.ValidateCreateTransaction(request.CreateTransaction{})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	for _, field := range []string{"symbol", "type", "quantity", "price", "date"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("Expected failure on %q, got %v", field, verr.Fields)
		}
	}
}

func TestValidateCreateTransaction_Fields(t *testing.T) {
	valid := request.CreateTransaction{
		Symbol: "AAPL", Type: "buy", Quantity: 10, Price: 150, Date: "2024-01-15",
	}

	tests := []struct {
		name   string
		mutate func(*request.CreateTransaction)
		field  string
	}{
		{"blank symbol", func(r *request.CreateTransaction) { r.Symbol = "  " }, "symbol"},
		{"unknown type", func(r *request.CreateTransaction) { r.Type = "transfer" }, "type"},
		{"zero quantity", func(r *request.CreateTransaction) { r.Quantity = 0 }, "quantity"},
		{"negative quantity", func(r *request.CreateTransaction) { r.Quantity = -1 }, "quantity"},
		{"zero price", func(r *request.CreateTransaction) { r.Price = 0 }, "price"},
		{"wrong date format", func(r *request.CreateTransaction) { r.Date = "01/15/2024" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validation.ValidateCreateTransaction(req)
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("Expected failure on %q, got %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	if err := validation.ValidateUUID("9b4f0f8e-0000-4000-8000-000000000000"); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}
	if err := validation.ValidateUUID("not-a-uuid"); err == nil {
		t.Error("Expected error for malformed UUID")
	}
}
