// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and DKCRON_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// LobbyURL is the base URL of the contest lobby.
	LobbyURL string `koanf:"lobby_url"`

	// Cookie is sent verbatim as the Cookie header of lobby requests.
	Cookie string `koanf:"cookie"`

	// UserAgent is sent with lobby requests.
	UserAgent string `koanf:"user_agent"`

	// HTTPTimeoutMS bounds a single lobby request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// Timezone names the location contest start times are decoded in.
	// "Local" uses the system zone.
	Timezone string `koanf:"timezone"`

	// EntryFee is the default fee to match, in dollars.
	EntryFee string `koanf:"entry_fee"`

	// Cron job command layout.
	HomeDir        string `koanf:"home_dir"`
	PipenvPath     string `koanf:"pipenv_path"`
	DownloadScript string `koanf:"download_script"`
	ResultsScript  string `koanf:"results_script"`
	LogDir         string `koanf:"log_dir"`
	DisplayEnv     string `koanf:"display_env"`

	// MetricsFile, when set, receives a node_exporter textfile after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		LobbyURL:       "https://www.draftkings.com",
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/48.0.2564.97 Safari/537.36",
		HTTPTimeoutMS:  30_000,
		Timezone:       "Local",
		EntryFee:       "25",
		HomeDir:        "/home/pi/Desktop/dk_salary_owner/",
		PipenvPath:     "/home/pi/.local/bin/pipenv",
		DownloadScript: "download_DK_salary.py",
		ResultsScript:  "get_DFS_results.py",
		LogDir:         "/home/pi/Desktop",
		DisplayEnv:     "export DISPLAY=:0",
	}
}

// HTTPTimeout returns the lobby request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, name, err)
	}
	return loc, nil
}

// Fee parses EntryFee.
func (c *Config) Fee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.EntryFee))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: entry_fee %q: %w", ErrInvalidConfig, c.EntryFee, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: entry_fee must not be negative", ErrInvalidConfig)
	}
	return fee, nil
}

// Validate checks the configuration for values the run cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LobbyURL) == "" {
		return fmt.Errorf("%w: lobby_url must not be empty", ErrInvalidConfig)
	}
	if c.HTTPTimeoutMS <= 0 {
		return fmt.Errorf("%w: http_timeout_ms must be positive", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Fee(); err != nil {
		return err
	}
	return nil
}
