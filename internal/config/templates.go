package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# polymarket-cli Configuration

[feed]
# Gamma API base URL
base_url = "https://gamma-api.polymarket.com"
# Per-request timeout
timeout = "15s"

[ledger]
# Paper-trading database path
db_path = "%s"
# Starting cash balance for a fresh ledger
initial_balance = 1000.0

[ui]
# Enable colored output
color_enabled = true

[log]
# Log level: debug, info, warn, error
level = "warn"
`

// createTemplateConfig writes a default config.toml so the user has
// something to edit. Missing config is not an error.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	content := fmt.Sprintf(configTemplate, filepath.Join(configDir, "trades.db"))
	return os.WriteFile(path, []byte(content), 0644)
}
