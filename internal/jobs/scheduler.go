// Package jobs runs scheduled background work.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stockpilot/backend/internal/repository"
	"github.com/stockpilot/backend/internal/service"
)

// refreshTimeout bounds one full refresh pass across all held symbols.
const refreshTimeout = 2 * time.Minute

// Scheduler runs the periodic quote refresh so portfolio reads mostly hit a
// warm cache instead of the provider.
type Scheduler struct {
	cron      *cron.Cron
	positions *repository.PositionRepository
	prices    *service.PriceService
}

// NewScheduler creates a Scheduler refreshing quotes on the given cron
// schedule.
func NewScheduler(positions *repository.PositionRepository, prices *service.PriceService, schedule string) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		positions: positions,
		prices:    prices,
	}
	if _, err := s.cron.AddFunc(schedule, s.refreshQuotes); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling new runs and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshQuotes() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	symbols, err := s.positions.ActiveSymbols(ctx)
	if err != nil {
		log.Printf("Quote refresh: listing symbols failed: %v", err)
		return
	}

	refreshed := 0
	for _, symbol := range symbols {
		if err := s.prices.Refresh(ctx, symbol); err != nil {
			log.Printf("Quote refresh: %v", err)
			continue
		}
		refreshed++
	}
	log.Printf("Quote refresh: updated %d/%d symbols", refreshed, len(symbols))
}
