package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/model"
	"github.com/stockpilot/backend/internal/repository"
)

// priceFetchConcurrency bounds parallel provider lookups per summary request.
const priceFetchConcurrency = 4

// PortfolioService computes portfolio projections. Every read recomputes from
// current state; nothing here is persisted.
type PortfolioService struct {
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
	positions    *repository.PositionRepository
	prices       *PriceService
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	accounts *repository.AccountRepository,
	transactions *repository.TransactionRepository,
	positions *repository.PositionRepository,
	prices *PriceService,
) *PortfolioService {
	return &PortfolioService{
		accounts:     accounts,
		transactions: transactions,
		positions:    positions,
		prices:       prices,
	}
}

// Summary values the account's active holdings at current prices and reports
// both profit views: per-holding average-cost figures, and the portfolio-level
// net gain/loss computed as total sell value minus total buy value over the
// raw history. The two views answer different questions and are not expected
// to agree.
func (s *PortfolioService) Summary(ctx context.Context, accountID string) (model.PortfolioSummary, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return model.PortfolioSummary{}, err
	}

	allPositions, err := s.positions.List(ctx, accountID)
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetPortfolioSummary, err)
	}

	active := make([]model.Position, 0, len(allPositions))
	for _, p := range allPositions {
		if p.QuantityHeld > 0 {
			active = append(active, p)
		}
	}

	holdings := make([]model.Holding, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(priceFetchConcurrency)
	for i, p := range active {
		i, p := i, p
		g.Go(func() error {
			holdings[i] = s.valueHolding(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetPortfolioSummary, err)
	}

	summary := model.PortfolioSummary{Holdings: holdings}
	for _, h := range holdings {
		summary.TotalValue += h.CurrentValue
		summary.TotalInvestment += h.TotalInvestment
		summary.TotalUnrealized += h.UnrealizedGainLoss
	}
	// Sold-out positions still contribute their realized gain/loss.
	for _, p := range allPositions {
		summary.TotalRealized += p.RealizedGainLoss
	}

	history, err := s.transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetPortfolioSummary, err)
	}
	for _, t := range history {
		switch t.Type {
		case model.TransactionBuy:
			summary.TotalBuyValue += t.TotalValue()
		case model.TransactionSell:
			summary.TotalSellValue += t.TotalValue()
		}
	}

	summary.NetGainLoss = summary.TotalSellValue - summary.TotalBuyValue
	if summary.TotalBuyValue > 0 {
		summary.ReturnPercent = round2(summary.NetGainLoss / summary.TotalBuyValue * 100)
	}

	summary.TotalValue = round2(summary.TotalValue)
	summary.TotalInvestment = round2(summary.TotalInvestment)
	summary.TotalUnrealized = round2(summary.TotalUnrealized)
	summary.TotalRealized = round2(summary.TotalRealized)
	summary.TotalBuyValue = round2(summary.TotalBuyValue)
	summary.TotalSellValue = round2(summary.TotalSellValue)
	summary.NetGainLoss = round2(summary.NetGainLoss)
	return summary, nil
}

// Performance extends the summary with best and worst performers, ranked by
// unrealized return against cost basis.
func (s *PortfolioService) Performance(ctx context.Context, accountID string) (model.PortfolioPerformance, error) {
	summary, err := s.Summary(ctx, accountID)
	if err != nil {
		return model.PortfolioPerformance{}, err
	}

	performance := model.PortfolioPerformance{
		PortfolioSummary: summary,
		HoldingCount:     len(summary.Holdings),
	}

	for _, h := range summary.Holdings {
		if h.TotalInvestment <= 0 {
			continue
		}
		pct := round2(h.UnrealizedGainLoss / h.TotalInvestment * 100)
		if performance.BestPerformer == nil || pct > performance.BestPerformer.ReturnPercent {
			performance.BestPerformer = &model.PerformerSummary{Symbol: h.Symbol, ReturnPercent: pct}
		}
		if performance.WorstPerformer == nil || pct < performance.WorstPerformer.ReturnPercent {
			performance.WorstPerformer = &model.PerformerSummary{Symbol: h.Symbol, ReturnPercent: pct}
		}
	}
	return performance, nil
}

// valueHolding prices a single position. With no reference price available the
// average purchase price stands in, which pins the unrealized figure at zero
// rather than fabricating a gain or loss.
func (s *PortfolioService) valueHolding(ctx context.Context, p model.Position) model.Holding {
	price, ok := s.prices.GetPrice(ctx, p.Symbol)
	if !ok {
		price = p.AveragePurchasePrice
	}

	h := model.Holding{
		Position:        p,
		CurrentPrice:    round2(price),
		PriceIsFallback: !ok,
		CurrentValue:    round2(float64(p.QuantityHeld) * price),
	}
	h.UnrealizedGainLoss = round2(float64(p.QuantityHeld)*price - p.TotalInvestment)
	h.TotalGainLoss = round2(h.UnrealizedGainLoss + p.RealizedGainLoss)
	h.AveragePurchasePrice = round2(p.AveragePurchasePrice)
	h.TotalInvestment = round2(p.TotalInvestment)
	h.RealizedGainLoss = round2(p.RealizedGainLoss)
	return h
}
