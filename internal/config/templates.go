package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Cross-Market Settlement Checker Configuration

[defaults]
# Default market pair for check and compare commands
market_a = "HK"
market_b = "JP"

[display]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
# Time format
time_format = "15:04"

[data]
# Manual override blob. Leave empty for <config dir>/manual_overrides.json
overrides_file = ""
# Exchange calendar database. Leave empty for <config dir>/calendars.db
calendar_db = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to console
console = true
# Log to rotating file
file = true
# Log file path. Leave empty for <config dir>/logs/settle.log
file_path = ""
# Maximum log file size in megabytes before rotation
max_size = 100
# Number of rotated files to keep
max_backups = 7
# Maximum age of rotated files in days
max_age = 30
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
