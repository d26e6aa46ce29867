// Package ledger implements the average-cost transaction ledger: pure
// functions that fold buy and sell events into per-symbol position state.
// Nothing here touches storage; callers load history, fold, and persist.
package ledger

import (
	"fmt"

	"github.com/stockpilot/backend/internal/apperrors"
	"github.com/stockpilot/backend/internal/model"
)

// ApplyBuy returns the position state after buying quantity shares at price.
// A nil position creates a fresh one. A position that has been sold down to
// zero resets its average cost baseline to this purchase; the accumulated
// realized gain/loss carries over.
func ApplyBuy(pos *model.Position, accountID, symbol string, quantity int64, price float64) (model.Position, error) {
	if err := validate(quantity, price); err != nil {
		return model.Position{}, err
	}

	if pos == nil || pos.QuantityHeld == 0 {
		next := model.Position{
			AccountID:            accountID,
			Symbol:               symbol,
			QuantityHeld:         quantity,
			AveragePurchasePrice: price,
			TotalInvestment:      float64(quantity) * price,
		}
		if pos != nil {
			next.RealizedGainLoss = pos.RealizedGainLoss
		}
		return next, nil
	}

	next := *pos
	oldQty := float64(pos.QuantityHeld)
	newQty := oldQty + float64(quantity)
	newAvg := (oldQty*pos.AveragePurchasePrice + float64(quantity)*price) / newQty

	next.QuantityHeld += quantity
	next.AveragePurchasePrice = newAvg
	next.TotalInvestment = float64(next.QuantityHeld) * newAvg
	return next, nil
}

// ApplySell returns the position state after selling quantity shares at price,
// along with the realized gain or loss locked in by the sale, computed against
// the average cost at the time of sale. The average purchase price itself is
// unchanged by a sell; only the cost basis shrinks with the shares.
func ApplySell(pos *model.Position, quantity int64, price float64) (model.Position, float64, error) {
	if pos == nil {
		return model.Position{}, 0, apperrors.ErrPositionNotFound
	}
	if err := validate(quantity, price); err != nil {
		return model.Position{}, 0, err
	}
	if quantity > pos.QuantityHeld {
		return model.Position{}, 0, &apperrors.InsufficientHoldingsError{
			Symbol:    pos.Symbol,
			Requested: quantity,
			Available: pos.QuantityHeld,
		}
	}

	realized := (price - pos.AveragePurchasePrice) * float64(quantity)

	next := *pos
	next.QuantityHeld -= quantity
	next.TotalInvestment = float64(next.QuantityHeld) * next.AveragePurchasePrice
	next.RealizedGainLoss += realized
	return next, realized, nil
}

// Replay folds a symbol's transaction history, oldest first, into a position.
// Deleting a transaction invalidates incrementally maintained state, so
// callers rebuild with Replay rather than patching; the fold is deterministic
// given the same ordered history. An empty history yields a zero position.
func Replay(accountID, symbol string, transactions []model.Transaction) (model.Position, error) {
	var pos *model.Position
	for _, t := range transactions {
		var next model.Position
		var err error
		switch t.Type {
		case model.TransactionBuy:
			next, err = ApplyBuy(pos, accountID, symbol, t.Quantity, t.Price)
		case model.TransactionSell:
			next, _, err = ApplySell(pos, t.Quantity, t.Price)
		default:
			err = apperrors.ErrInvalidTransactionType
		}
		if err != nil {
			return model.Position{}, fmt.Errorf("replaying %s transaction %s: %w", symbol, t.ID, err)
		}
		pos = &next
	}
	if pos == nil {
		return model.Position{AccountID: accountID, Symbol: symbol}, nil
	}
	return *pos, nil
}

// Analyze recomputes the full breakdown for one symbol from its ordered raw
// history. RealizedGainLoss uses the same incremental average-cost rule as
// ApplySell, replayed from scratch; AveragePurchasePrice here is the weighted
// average over buy transactions only, which is what the analysis screen shows
// even after partial sells.
func Analyze(symbol string, transactions []model.Transaction) (model.SymbolAnalysis, error) {
	analysis := model.SymbolAnalysis{
		Symbol:           symbol,
		TransactionCount: len(transactions),
	}

	var pos *model.Position
	for _, t := range transactions {
		switch t.Type {
		case model.TransactionBuy:
			next, err := ApplyBuy(pos, t.AccountID, symbol, t.Quantity, t.Price)
			if err != nil {
				return model.SymbolAnalysis{}, fmt.Errorf("analyzing %s transaction %s: %w", symbol, t.ID, err)
			}
			pos = &next
			analysis.TotalBoughtQuantity += t.Quantity
			analysis.TotalBoughtValue += t.TotalValue()
		case model.TransactionSell:
			next, realized, err := ApplySell(pos, t.Quantity, t.Price)
			if err != nil {
				return model.SymbolAnalysis{}, fmt.Errorf("analyzing %s transaction %s: %w", symbol, t.ID, err)
			}
			pos = &next
			analysis.TotalSoldQuantity += t.Quantity
			analysis.TotalSoldValue += t.TotalValue()
			analysis.RealizedGainLoss += realized
		default:
			return model.SymbolAnalysis{}, apperrors.ErrInvalidTransactionType
		}
	}

	analysis.RemainingQuantity = analysis.TotalBoughtQuantity - analysis.TotalSoldQuantity
	if analysis.TotalBoughtQuantity > 0 {
		analysis.AveragePurchasePrice = analysis.TotalBoughtValue / float64(analysis.TotalBoughtQuantity)
	}
	if analysis.TotalBoughtValue > 0 {
		analysis.TotalReturnPercent = analysis.RealizedGainLoss / analysis.TotalBoughtValue * 100
	}
	return analysis, nil
}

func validate(quantity int64, price float64) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidQuantity
	}
	if price <= 0 {
		return apperrors.ErrInvalidPrice
	}
	return nil
}
