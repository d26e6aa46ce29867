package service

import (
	"context"
	"database/sql"

	"github.com/stockpilot/backend/internal/database"
)

// Version is the application version, set at build time.
var Version = "dev"

// SystemService reports application health and version.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies the application's dependencies are reachable.
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// GetVersion returns the application version.
func (s *SystemService) GetVersion() string {
	return Version
}
