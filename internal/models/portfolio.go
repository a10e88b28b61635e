package models

// PortfolioSummary is an aggregate view derived from ledger state.
type PortfolioSummary struct {
	Cash          float64 `json:"cash"`
	Initial       float64 `json:"initial"`
	PositionValue float64 `json:"position_value"`
	TotalValue    float64 `json:"total_value"`
	TotalPnL      float64 `json:"total_pnl"`
	RealizedPnL   float64 `json:"realized_pnl"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
	WinCount      int     `json:"win_count"`
	LossCount     int     `json:"loss_count"`
	OpenCount     int     `json:"open_count"`
	ClosedCount   int     `json:"closed_count"`
}

// TotalPnLPercent returns the total P&L as a percentage of the
// initial balance.
func (p *PortfolioSummary) TotalPnLPercent() float64 {
	if p.Initial == 0 {
		return 0
	}
	return p.TotalPnL / p.Initial * 100
}
