// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file. ":memory:" keeps state
	// process-local.
	DBPath string `koanf:"db_path"`

	// HistoryLimit sets how many history entries a workspace fetches.
	HistoryLimit int `koanf:"history_limit"`

	// MaxHistoryLimit caps GET /assessment/history?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`

	// Locale selects number rendering in signal messages, e.g. "en".
	Locale string `koanf:"locale"`

	// DefaultScenario is the scenario filter new workspaces start with.
	DefaultScenario string `koanf:"default_scenario"`

	// ReportTitle overrides the title line on exported reports.
	ReportTitle string `koanf:"report_title"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DBPath:          "groundwork.db",
		HistoryLimit:    20,
		MaxHistoryLimit: 100,
		Locale:          "en",
		DefaultScenario: "all",
		ReportTitle:     "Condition Assessment Report",
	}
}
