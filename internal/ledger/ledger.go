// Package ledger provides the paper-trading ledger: persisted cash
// balance plus trade records, with atomic open/resolve/reprice
// operations.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	apperrors "github.com/sirclawson/polymarket-cli/internal/errors"
	"github.com/sirclawson/polymarket-cli/internal/feed"
	"github.com/sirclawson/polymarket-cli/internal/models"
)

// InitialBalance is the starting cash for a fresh ledger.
const InitialBalance = 1000.0

// Ledger owns the persisted portfolio state. It is the sole mutator
// of trade and cash records.
type Ledger struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Config holds ledger configuration.
type Config struct {
	DBPath         string
	InitialBalance float64
	Logger         zerolog.Logger
}

// Open opens (and lazily bootstraps) the ledger at the given path.
// First touch creates the schema and seeds cash = initial; an
// existing store is loaded as-is.
func Open(cfg Config) (*Ledger, error) {
	if cfg.DBPath == "" {
		return nil, apperrors.NewValidationError("db_path", cfg.DBPath, "must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single-process CLI; one connection keeps transactions trivially
	// serialized.
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db, logger: cfg.Logger}

	initial := cfg.InitialBalance
	if initial <= 0 {
		initial = InitialBalance
	}
	if err := l.initSchema(initial); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return l, nil
}

// initSchema creates the tables and seeds the portfolio balance on
// first touch.
func (l *Ledger) initSchema(initial float64) error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		market_slug TEXT NOT NULL,
		question TEXT,
		outcome TEXT NOT NULL,
		entry_price REAL NOT NULL,
		current_price REAL,
		amount_usd REAL NOT NULL,
		shares REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		pnl REAL NOT NULL DEFAULT 0,
		opened_at TEXT NOT NULL,
		closed_at TEXT
	);

	CREATE TABLE IF NOT EXISTS portfolio (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
	CREATE INDEX IF NOT EXISTS idx_trades_slug ON trades(market_slug);
	`

	if _, err := l.db.Exec(schema); err != nil {
		return err
	}

	// Seed cash and the immutable initial baseline exactly once.
	res, err := l.db.Exec(
		"INSERT OR IGNORE INTO portfolio (key, value) VALUES ('initial', ?)",
		formatAmount(initial),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if _, err := l.db.Exec(
			"INSERT OR IGNORE INTO portfolio (key, value) VALUES ('cash', ?)",
			formatAmount(initial),
		); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Cash returns the current uncommitted balance.
func (l *Ledger) Cash(ctx context.Context) (float64, error) {
	return l.portfolioValue(ctx, "cash")
}

// Initial returns the original baseline balance.
func (l *Ledger) Initial(ctx context.Context) (float64, error) {
	return l.portfolioValue(ctx, "initial")
}

func (l *Ledger) portfolioValue(ctx context.Context, key string) (float64, error) {
	var raw string
	err := l.db.QueryRowContext(ctx,
		"SELECT value FROM portfolio WHERE key = ?", key).Scan(&raw)
	if err != nil {
		return 0, apperrors.NewLedgerError("portfolio", 0, err)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.NewLedgerError("portfolio", 0,
			fmt.Errorf("corrupt %s value %q: %w", key, raw, err))
	}
	return v, nil
}

// OpenTrade places a paper buy order. The price argument is the price
// the caller observed; the feed call only validates that the market
// exists and pins its question text into the trade. The trade insert
// and the cash decrement commit together or not at all.
func (l *Ledger) OpenTrade(ctx context.Context, mf feed.MarketFeed, slug, outcome string, amountUSD, price float64) (*models.Trade, error) {
	if amountUSD <= 0 {
		return nil, apperrors.NewValidationError("amount_usd", amountUSD, "must be positive")
	}
	if price <= 0 || price > 1 {
		return nil, apperrors.NewValidationError("price", price, "must be in (0, 1]")
	}

	cash, err := l.Cash(ctx)
	if err != nil {
		return nil, err
	}
	if amountUSD > cash {
		return nil, apperrors.Wrapf(apperrors.ErrInsufficientFunds,
			"$%.2f available, $%.2f needed", cash, amountUSD)
	}

	market, err := mf.GetMarket(ctx, slug)
	if err != nil {
		return nil, err
	}
	question := market.Question
	if question == "" {
		question = slug
	}

	now := time.Now().UTC()
	trade := &models.Trade{
		MarketSlug:   slug,
		Question:     question,
		Outcome:      outcome,
		EntryPrice:   price,
		CurrentPrice: &price,
		AmountUSD:    amountUSD,
		Shares:       amountUSD / price,
		Status:       models.TradeOpen,
		OpenedAt:     now,
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewLedgerError("open", 0, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO trades (market_slug, question, outcome, entry_price, current_price, amount_usd, shares, status, opened_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.MarketSlug, trade.Question, trade.Outcome, trade.EntryPrice, price, trade.AmountUSD, trade.Shares, trade.Status, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, apperrors.NewLedgerError("open", 0, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperrors.NewLedgerError("open", 0, err)
	}

	if err := setCashTx(ctx, tx, cash-amountUSD); err != nil {
		return nil, apperrors.NewLedgerError("open", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewLedgerError("open", id, err)
	}

	trade.ID = id
	l.logger.Info().
		Int64("trade_id", id).
		Str("slug", slug).
		Str("outcome", outcome).
		Float64("amount_usd", amountUSD).
		Float64("price", price).
		Msg("Paper trade opened")

	return trade, nil
}

// Resolve settles an open trade as won or lost. Won pays out the full
// share count at $1/share; lost leaves cash untouched since the stake
// was deducted at open. Resolving a settled trade always fails with
// ErrAlreadyResolved and changes nothing.
func (l *Ledger) Resolve(ctx context.Context, tradeID int64, won bool) (*models.Trade, error) {
	trade, err := l.GetTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if !trade.IsOpen() {
		return nil, apperrors.NewLedgerError("resolve", tradeID, apperrors.ErrAlreadyResolved)
	}

	cash, err := l.Cash(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var pnl, newCash float64
	var status models.TradeStatus
	if won {
		pnl = trade.Shares - trade.AmountUSD
		newCash = cash + trade.Shares
		status = models.TradeWon
	} else {
		pnl = -trade.AmountUSD
		newCash = cash
		status = models.TradeLost
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewLedgerError("resolve", tradeID, err)
	}
	defer tx.Rollback()

	// Guard on status inside the transaction so a settled trade can
	// never pay out twice.
	res, err := tx.ExecContext(ctx, `
		UPDATE trades SET status = ?, pnl = ?, closed_at = ?
		WHERE id = ? AND status = 'open'
	`, status, pnl, now.Format(time.RFC3339Nano), tradeID)
	if err != nil {
		return nil, apperrors.NewLedgerError("resolve", tradeID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.NewLedgerError("resolve", tradeID, apperrors.ErrAlreadyResolved)
	}

	if err := setCashTx(ctx, tx, newCash); err != nil {
		return nil, apperrors.NewLedgerError("resolve", tradeID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewLedgerError("resolve", tradeID, err)
	}

	trade.Status = status
	trade.PnL = pnl
	trade.ClosedAt = &now
	l.logger.Info().
		Int64("trade_id", tradeID).
		Str("status", string(status)).
		Float64("pnl", pnl).
		Float64("cash", newCash).
		Msg("Trade resolved")

	return trade, nil
}

// Reprice refreshes current_price for every open trade from the feed.
// A lookup or price failure for one trade is logged and skipped; the
// rest of the batch proceeds. Returns the number of open trades
// considered.
func (l *Ledger) Reprice(ctx context.Context, mf feed.MarketFeed) (int, error) {
	trades, err := l.OpenTrades(ctx)
	if err != nil {
		return 0, err
	}

	for i := range trades {
		t := &trades[i]
		market, err := mf.GetMarket(ctx, t.MarketSlug)
		if err != nil {
			l.logger.Warn().
				Int64("trade_id", t.ID).
				Str("slug", t.MarketSlug).
				Err(err).
				Msg("Skipping reprice: market lookup failed")
			continue
		}

		price := market.PriceFor(t.Outcome)
		if price == nil {
			l.logger.Warn().
				Int64("trade_id", t.ID).
				Str("slug", t.MarketSlug).
				Msg("Skipping reprice: no usable price")
			continue
		}

		if _, err := l.db.ExecContext(ctx,
			"UPDATE trades SET current_price = ? WHERE id = ?", *price, t.ID); err != nil {
			return len(trades), apperrors.NewLedgerError("reprice", t.ID, err)
		}
		l.logger.Debug().
			Int64("trade_id", t.ID).
			Float64("price", *price).
			Msg("Repriced trade")
	}

	return len(trades), nil
}

func setCashTx(ctx context.Context, tx *sql.Tx, amount float64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE portfolio SET value = ? WHERE key = 'cash'", formatAmount(amount))
	return err
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
