package models

import "time"

// TradeStatus represents the lifecycle state of a paper trade.
type TradeStatus string

const (
	TradeOpen TradeStatus = "open"
	TradeWon  TradeStatus = "won"
	TradeLost TradeStatus = "lost"
)

// Trade represents one hypothetical position in the paper-trading ledger.
type Trade struct {
	ID           int64       `json:"id"`
	MarketSlug   string      `json:"market_slug"`
	Question     string      `json:"question"`
	Outcome      string      `json:"outcome"`
	EntryPrice   float64     `json:"entry_price"`
	CurrentPrice *float64    `json:"current_price"`
	AmountUSD    float64     `json:"amount_usd"`
	Shares       float64     `json:"shares"`
	Status       TradeStatus `json:"status"`
	PnL          float64     `json:"pnl"`
	OpenedAt     time.Time   `json:"opened_at"`
	ClosedAt     *time.Time  `json:"closed_at"`
}

// IsOpen returns true while the trade has not been resolved.
func (t *Trade) IsOpen() bool {
	return t.Status == TradeOpen
}

// MarkPrice returns the price used for valuation: the last observed
// price, falling back to the entry price when never repriced.
func (t *Trade) MarkPrice() float64 {
	if t.CurrentPrice != nil {
		return *t.CurrentPrice
	}
	return t.EntryPrice
}

// UnrealizedPnL returns the mark-to-market profit for an open trade.
func (t *Trade) UnrealizedPnL() float64 {
	return t.Shares * (t.MarkPrice() - t.EntryPrice)
}

// Payout returns the cash received if the outcome resolves true,
// at $1 per share.
func (t *Trade) Payout() float64 {
	return t.Shares
}
