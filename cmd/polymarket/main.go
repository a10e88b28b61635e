// polymarket - terminal toolkit for the Polymarket data feed
package main

import (
	"fmt"
	"os"

	"github.com/sirclawson/polymarket-cli/internal/cli"
	"github.com/sirclawson/polymarket-cli/internal/config"
	"github.com/sirclawson/polymarket-cli/internal/logging"
)

func main() {
	// The --config flag has to be read before cobra parses anything,
	// since the config feeds into command construction.
	configDir := ""
	for i, arg := range os.Args[1:] {
		if arg == "--config" && i+2 < len(os.Args) {
			configDir = os.Args[i+2]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Log.Level
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
