package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Analyzer Configuration

[range]
# Underlying prices swept when plotting a strategy (inclusive)
min = 0.0
max = 200.0
step = 1.0

[strategy]
# Maximum number of legs in one strategy
max_legs = 4
# Preset defaults: at-the-money strike, wing width and ATM premium
center = 100.0
width = 10.0
premium = 5.0

[ui]
# Enable colored output
color_enabled = true
# ASCII payoff chart size in characters
chart_width = 60
chart_height = 15

[log]
# Log level: debug, info, warn, error
level = "info"
# Also write logs to a rotating file
file = false
# file_path = "~/.config/options-analyzer/logs/analyzer.log"
max_size = 10
max_backups = 3
max_age = 30
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
