package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirclawson/polymarket-cli/internal/models"
	"github.com/sirclawson/polymarket-cli/internal/scanner"
	"github.com/sirclawson/polymarket-cli/pkg/utils"
)

// addMarketCommands adds market-scan and analysis commands.
func addMarketCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newScanCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
}

// parseLimitArg reads an optional positional limit argument.
func parseLimitArg(args []string, fallback int) int {
	if len(args) == 0 {
		return fallback
	}
	limit, err := strconv.Atoi(args[0])
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func newScanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [limit]",
		Short: "Scan top markets by 24h volume",
		Example: `  polymarket scan
  polymarket scan 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := context.Background()

			limit := parseLimitArg(args, scanner.DefaultScanLimit)
			markets, err := scanner.Scan(ctx, app.Feed, limit)
			if err != nil {
				output.Error("Scan failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(markets)
			}

			output.Bold("🔍 Polymarket Scanner — %s", time.Now().Format("2006-01-02 15:04"))
			output.Println()
			for i, m := range markets {
				yp := "?"
				if m.YesPrice != nil {
					yp = utils.FormatProbability(*m.YesPrice)
				}
				output.Printf("%2d. [%s] %s\n", i+1, yp, utils.Truncate(m.Question, 70))
				output.Printf("    Vol 24h: %s | Total: %s | Liq: %s\n",
					utils.FormatCompactUSD(m.Volume24h),
					utils.FormatCompactUSD(m.VolumeTotal),
					utils.FormatCompactUSD(m.Liquidity))
				output.Dim("    Slug: %s", m.Slug)
				output.Println()
			}
			return nil
		},
	}
}

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [limit]",
		Short: "Find volume spikes and toss-up markets",
		Long: `Analyze markets for opportunities.

Volume spikes are markets whose 24h volume exceeds 3x their liquidity.
Toss-ups are markets priced between 35% and 65% with decent volume.`,
		Example: `  polymarket analyze
  polymarket analyze 200`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx := context.Background()

			limit := parseLimitArg(args, scanner.DefaultAnalyzeLimit)
			analysis, err := scanner.Analyze(ctx, app.Feed, limit)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(analysis)
			}

			output.Bold("📊 Polymarket Analyzer — %s", time.Now().Format("2006-01-02 15:04"))

			output.Println()
			output.Bold("🔥 VOLUME SPIKES (vol/liquidity > %.0fx)", scanner.SpikeRatio)
			output.Rule(50)
			for _, c := range analysis.VolumeSpikes {
				output.Printf("  %6.1fx | Yes: %s | %s vol\n",
					c.SpikeRatio, yesPriceLabel(c.Market), utils.FormatCompactUSD(c.Market.Volume24h))
				output.Dim("     %s", utils.Truncate(c.Market.Question, 65))
			}

			output.Println()
			output.Bold("⚖️ TOSS-UPS (%.0f-%.0f%%, high volume)", scanner.TossUpLow*100, scanner.TossUpHigh*100)
			output.Rule(50)
			for _, c := range analysis.TossUps {
				output.Printf("  Yes: %s | %s vol\n",
					yesPriceLabel(c.Market), utils.FormatCompactUSD(c.Market.Volume24h))
				output.Dim("     %s", utils.Truncate(c.Market.Question, 65))
			}
			return nil
		},
	}
}

func yesPriceLabel(m models.Market) string {
	if m.YesPrice == nil {
		return "?"
	}
	return utils.FormatProbability(*m.YesPrice)
}
