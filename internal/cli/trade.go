package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/sirclawson/polymarket-cli/internal/errors"
	"github.com/sirclawson/polymarket-cli/internal/models"
	"github.com/sirclawson/polymarket-cli/internal/report"
	"github.com/sirclawson/polymarket-cli/pkg/utils"
)

// addTradingCommands adds paper-trading commands.
func addTradingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBuyCmd(app))
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newUpdateCmd(app))
	rootCmd.AddCommand(newResolveCmd(app))
}

func newBuyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <slug> <Yes|No> <amount_usd> <price>",
		Short: "Paper trade: buy a position",
		Long: `Place a paper buy order.

The price is the probability you observed for the outcome, in (0, 1].
The market must exist on the feed; its question text is pinned into
the trade. Cash is deducted immediately; a winning resolution pays
$1 per share.`,
		Example: `  polymarket buy will-eth-hit-5000 Yes 50 0.35
  polymarket buy will-eth-hit-5000 No 25 0.70 --db /tmp/test.db`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := context.Background()

			slug := args[0]
			outcome := args[1]

			amountUSD, err := strconv.ParseFloat(args[2], 64)
			if err != nil || amountUSD <= 0 {
				output.Error("Invalid amount: %s", args[2])
				return apperrors.NewValidationError("amount_usd", args[2], "must be a positive number")
			}
			price, err := strconv.ParseFloat(args[3], 64)
			if err != nil || price <= 0 || price > 1 {
				output.Error("Invalid price: %s (expected a probability in (0, 1])", args[3])
				return apperrors.NewValidationError("price", args[3], "must be a probability in (0, 1]")
			}

			l, err := app.openLedger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}
			defer l.Close()

			trade, err := l.OpenTrade(ctx, app.Feed, slug, outcome, amountUSD, price)
			if err != nil {
				output.Error("❌ %v", err)
				return err
			}

			cash, err := l.Cash(ctx)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			payout := trade.Payout()
			output.Success("✅ PAPER BUY: %s @ %s", trade.Outcome, utils.FormatProbability(trade.EntryPrice))
			output.Printf("   %s\n", trade.Question)
			output.Printf("   Spent: %s → %.1f shares\n", utils.FormatUSD(trade.AmountUSD), trade.Shares)
			output.Printf("   If correct: %s payout (%s profit)\n",
				utils.FormatUSD(payout), utils.FormatUSD(payout-trade.AmountUSD))
			output.Printf("   Balance: %s\n", utils.FormatUSD(cash))
			return nil
		},
	}

	cmd.Flags().String("db", "", "custom database path")
	return cmd
}

func newPortfolioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "portfolio",
		Short:   "Show paper trading portfolio",
		Example: `  polymarket portfolio`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := context.Background()

			l, err := app.openLedger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}
			defer l.Close()

			p, err := report.Build(ctx, l)
			if err != nil {
				output.Error("Failed to build report: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(p)
			}

			printPortfolio(output, p)
			return nil
		},
	}

	cmd.Flags().String("db", "", "custom database path")
	return cmd
}

func printPortfolio(output *Output, p *report.Portfolio) {
	s := p.Summary

	output.Rule(50)
	output.Bold("📊 PAPER TRADING PORTFOLIO")
	output.Rule(50)
	output.Printf("  Cash:           %s\n", utils.FormatUSD(s.Cash))
	output.Printf("  Positions:      %s\n", utils.FormatUSD(s.PositionValue))
	output.Printf("  Total Value:    %s\n", utils.FormatUSD(s.TotalValue))
	output.Printf("  Initial:        %s\n", utils.FormatUSD(s.Initial))
	output.Printf("  Total P&L:      %s (%s)\n", output.FormatPnL(s.TotalPnL), utils.FormatPercent(s.TotalPnLPercent()))
	output.Printf("  Realized:       %s\n", output.FormatPnL(s.RealizedPnL))
	output.Printf("  Unrealized:     %s\n", output.FormatPnL(s.UnrealizedPnL))
	if s.WinCount > 0 || s.LossCount > 0 {
		output.Printf("  Win/Loss:       %dW / %dL\n", s.WinCount, s.LossCount)
	}

	if len(p.OpenTrades) > 0 {
		output.Println()
		output.Bold("📈 OPEN POSITIONS (%d)", len(p.OpenTrades))
		output.Rule(50)
		for i := range p.OpenTrades {
			t := &p.OpenTrades[i]
			upnl := t.UnrealizedPnL()
			arrow := "📈"
			if upnl < 0 {
				arrow = "📉"
			}
			output.Printf("  #%d %s %s @ %s → %s | %s\n",
				t.ID, arrow, t.Outcome,
				utils.FormatProbability(t.EntryPrice),
				utils.FormatProbability(t.MarkPrice()),
				output.FormatPnL(upnl))
			output.Dim("     %s", utils.Truncate(t.Question, 55))
		}
	}

	if len(p.RecentClosed) > 0 {
		output.Println()
		output.Bold("📜 RECENT CLOSED (%d)", len(p.RecentClosed))
		output.Rule(50)
		for i := range p.RecentClosed {
			t := &p.RecentClosed[i]
			icon := "✅"
			if t.PnL <= 0 {
				icon = "❌"
			}
			output.Printf("  #%d %s %s | %s\n", t.ID, icon, t.Outcome, output.FormatPnL(t.PnL))
			output.Dim("     %s", utils.Truncate(t.Question, 55))
		}
	}
}

func newUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Update prices for open positions",
		Example: `  polymarket update`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := context.Background()

			l, err := app.openLedger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}
			defer l.Close()

			count, err := l.Reprice(ctx, app.Feed)
			if err != nil {
				output.Error("Update failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]int{"open_trades": count})
			}

			if count == 0 {
				output.Println("No open trades.")
				return nil
			}
			output.Printf("Updating %d open trades...\n", count)
			output.Success("✅ Prices updated.")
			return nil
		},
	}

	cmd.Flags().String("db", "", "custom database path")
	return cmd
}

// parseWon maps the resolve verdict argument to a boolean. The won
// synonyms are matched case-insensitively; anything else means lost.
func parseWon(s string) bool {
	switch strings.ToLower(s) {
	case "won", "win", "yes", "true", "1":
		return true
	default:
		return false
	}
}

func newResolveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <trade_id> <won|lost>",
		Short: "Resolve a paper trade",
		Long: `Resolve an open paper trade as won or lost.

A winning trade pays out $1 per share into cash; a losing trade
forfeits the stake deducted at buy time. Resolution is terminal.`,
		Example: `  polymarket resolve 3 won
  polymarket resolve 7 lost`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := context.Background()

			tradeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || tradeID <= 0 {
				output.Error("Invalid trade id: %s", args[0])
				return apperrors.NewValidationError("trade_id", args[0], "must be a positive integer")
			}
			won := parseWon(args[1])

			l, err := app.openLedger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}
			defer l.Close()

			trade, err := l.Resolve(ctx, tradeID, won)
			if err != nil {
				output.Error("❌ %v", err)
				return err
			}

			cash, err := l.Cash(ctx)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			icon := "✅"
			if trade.Status == models.TradeLost {
				icon = "❌"
			}
			output.Printf("%s Trade #%d resolved: %s (%s)\n",
				icon, trade.ID, trade.Status, output.FormatPnL(trade.PnL))
			output.Printf("   Balance: %s\n", utils.FormatUSD(cash))
			return nil
		},
	}

	cmd.Flags().String("db", "", "custom database path")
	return cmd
}
