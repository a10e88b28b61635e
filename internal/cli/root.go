// Package cli provides the command-line interface for the application.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sirclawson/polymarket-cli/internal/config"
	"github.com/sirclawson/polymarket-cli/internal/feed"
	"github.com/sirclawson/polymarket-cli/internal/ledger"
	"github.com/sirclawson/polymarket-cli/internal/logging"
)

// Version information
const (
	Version = "0.3.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Feed   feed.MarketFeed
}

// openLedger opens the ledger at the path from the --db flag, falling
// back to the configured default.
func (a *App) openLedger(cmd *cobra.Command) (*ledger.Ledger, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = a.Config.Ledger.DBPath
	}
	return ledger.Open(ledger.Config{
		DBPath:         dbPath,
		InitialBalance: a.Config.Ledger.InitialBalance,
		Logger:         a.Logger,
	})
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Feed = feed.NewClient(feed.ClientConfig{
		BaseURL: cfg.Feed.BaseURL,
		Timeout: cfg.Feed.Timeout,
		Logger:  logger,
	})

	rootCmd := &cobra.Command{
		Use:   "polymarket",
		Short: "polymarket-cli - terminal toolkit for Polymarket",
		Long: `polymarket-cli is a terminal-native toolkit for the Polymarket
prediction-market data feed.

It scans markets by volume, flags volume spikes and toss-ups, and
tracks hypothetical positions in a local paper-trading ledger with
profit/loss accounting.

Use 'polymarket help <command>' for more information about a command.`,
		Example: `  polymarket scan 20
  polymarket analyze
  polymarket buy will-eth-hit-5000 Yes 50 0.35
  polymarket portfolio
  polymarket update
  polymarket resolve 3 won`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/polymarket-cli)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addMarketCommands(rootCmd, app)
	addTradingCommands(rootCmd, app)
	addCoreCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("polymarket-cli v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Feed")
			output.Printf("  Base URL: %s\n", app.Config.Feed.BaseURL)
			output.Printf("  Timeout:  %s\n", app.Config.Feed.Timeout)
			output.Println()
			output.Bold("Ledger")
			output.Printf("  Database: %s\n", app.Config.Ledger.DBPath)
			output.Printf("  Initial:  %.2f\n", app.Config.Ledger.InitialBalance)
			output.Println()
			output.Bold("Log")
			output.Printf("  Level:    %s\n", app.Config.Log.Level)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}
