package ledger

import (
	"context"
	"database/sql"
	"time"

	apperrors "github.com/sirclawson/polymarket-cli/internal/errors"
	"github.com/sirclawson/polymarket-cli/internal/models"
)

const tradeColumns = "id, market_slug, question, outcome, entry_price, current_price, amount_usd, shares, status, pnl, opened_at, closed_at"

// GetTrade fetches a single trade by id. Returns ErrTradeNotFound
// when no such trade exists.
func (l *Ledger) GetTrade(ctx context.Context, id int64) (*models.Trade, error) {
	row := l.db.QueryRowContext(ctx,
		"SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)

	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewLedgerError("get", id, apperrors.ErrTradeNotFound)
	}
	if err != nil {
		return nil, apperrors.NewLedgerError("get", id, err)
	}
	return trade, nil
}

// OpenTrades returns all open trades, newest first.
func (l *Ledger) OpenTrades(ctx context.Context) ([]models.Trade, error) {
	return l.queryTrades(ctx,
		"SELECT "+tradeColumns+" FROM trades WHERE status = 'open' ORDER BY id DESC")
}

// ResolvedTrades returns all resolved trades, most recently closed
// first. A limit of 0 returns the full set.
func (l *Ledger) ResolvedTrades(ctx context.Context, limit int) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE status != 'open' ORDER BY closed_at DESC"
	if limit > 0 {
		return l.queryTrades(ctx, query+" LIMIT ?", limit)
	}
	return l.queryTrades(ctx, query)
}

func (l *Ledger) queryTrades(ctx context.Context, query string, args ...interface{}) ([]models.Trade, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewLedgerError("query", 0, err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, apperrors.NewLedgerError("query", 0, err)
		}
		trades = append(trades, *trade)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewLedgerError("query", 0, err)
	}
	return trades, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var currentPrice sql.NullFloat64
	var openedAt string
	var closedAt sql.NullString

	err := row.Scan(&t.ID, &t.MarketSlug, &t.Question, &t.Outcome, &t.EntryPrice,
		&currentPrice, &t.AmountUSD, &t.Shares, &t.Status, &t.PnL, &openedAt, &closedAt)
	if err != nil {
		return nil, err
	}

	if currentPrice.Valid {
		t.CurrentPrice = &currentPrice.Float64
	}
	if ts, err := parseTimestamp(openedAt); err == nil {
		t.OpenedAt = ts
	}
	if closedAt.Valid {
		if ts, err := parseTimestamp(closedAt.String); err == nil {
			t.ClosedAt = &ts
		}
	}
	return &t, nil
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
