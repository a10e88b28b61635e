// Package report derives aggregate portfolio views from ledger state.
// All functions are pure queries; nothing here mutates the ledger.
package report

import (
	"context"

	"github.com/sirclawson/polymarket-cli/internal/ledger"
	"github.com/sirclawson/polymarket-cli/internal/models"
)

// Summarize computes the portfolio summary from raw ledger rows.
// Open positions are valued at the last observed price, falling back
// to the entry price when never repriced. A resolved trade with zero
// pnl counts as neither a win nor a loss.
func Summarize(cash, initial float64, open, resolved []models.Trade) models.PortfolioSummary {
	s := models.PortfolioSummary{
		Cash:        cash,
		Initial:     initial,
		OpenCount:   len(open),
		ClosedCount: len(resolved),
	}

	for i := range open {
		t := &open[i]
		s.PositionValue += t.Shares * t.MarkPrice()
		s.UnrealizedPnL += t.UnrealizedPnL()
	}

	for i := range resolved {
		t := &resolved[i]
		s.RealizedPnL += t.PnL
		if t.PnL > 0 {
			s.WinCount++
		} else if t.PnL < 0 {
			s.LossCount++
		}
	}

	s.TotalValue = s.Cash + s.PositionValue
	s.TotalPnL = s.TotalValue - s.Initial
	return s
}

// Portfolio is the full report bundle for display: the summary plus
// the open positions and the most recently closed trades.
type Portfolio struct {
	Summary      models.PortfolioSummary `json:"summary"`
	OpenTrades   []models.Trade          `json:"open_trades"`
	RecentClosed []models.Trade          `json:"recent_closed"`
}

// RecentClosedLimit caps the closed-trade list shown in the portfolio
// report. Totals are always computed over the full resolved set.
const RecentClosedLimit = 10

// Build assembles the portfolio report from current ledger state.
func Build(ctx context.Context, l *ledger.Ledger) (*Portfolio, error) {
	cash, err := l.Cash(ctx)
	if err != nil {
		return nil, err
	}
	initial, err := l.Initial(ctx)
	if err != nil {
		return nil, err
	}
	open, err := l.OpenTrades(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := l.ResolvedTrades(ctx, 0)
	if err != nil {
		return nil, err
	}

	recent := resolved
	if len(recent) > RecentClosedLimit {
		recent = recent[:RecentClosedLimit]
	}

	return &Portfolio{
		Summary:      Summarize(cash, initial, open, resolved),
		OpenTrades:   open,
		RecentClosed: recent,
	}, nil
}
