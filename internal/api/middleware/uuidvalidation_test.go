package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockpilot/backend/internal/api/middleware"
	"github.com/stockpilot/backend/internal/testutil"
)

func TestValidateUUID(t *testing.T) {
	called := false
	handler := middleware.ValidateUUID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("valid uuid passes through", func(t *testing.T) {
		called = false
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/", nil,
			map[string]string{"uuid": "9b4f0f8e-0000-4000-8000-000000000000"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if !called {
			t.Error("Expected handler to be called")
		}
	})

	t.Run("malformed uuid rejected", func(t *testing.T) {
		called = false
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/", nil,
			map[string]string{"uuid": "not-a-uuid"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if called {
			t.Error("Expected handler not to be called")
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})
}
