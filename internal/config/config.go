// Package config defines process configuration and its loading.
//
// Conventions:
// - Durations are configured in whole milliseconds (keys ending in _ms).
// - New returns defaults; Load layers a YAML file and the environment on top.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr is the listen address of the Prometheus endpoint, e.g.
	// ":9090". Empty disables the endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// CatalogPath points at a layout catalog overriding the bundled one.
	CatalogPath string `koanf:"catalog_path"`

	// RosterPath points at a roster YAML file. Empty uses a generated roster.
	RosterPath string `koanf:"roster_path"`

	// Sport and FixtureSeed shape the generated roster.
	Sport       string `koanf:"sport"`
	FixtureSeed int64  `koanf:"fixture_seed"`

	// SwapOnDrop swaps occupants instead of displacing them to the bench.
	SwapOnDrop bool `koanf:"swap_on_drop"`

	// Reveal ceremony timing.
	CountdownSteps    int `koanf:"countdown_steps"`
	CountdownStepMS   int `koanf:"countdown_step_ms"`
	FlipDelayMS       int `koanf:"flip_delay_ms"`
	FlipDurationMS    int `koanf:"flip_duration_ms"`
	AutoAdvanceMS     int `koanf:"auto_advance_ms"`
	CompletionDelayMS int `koanf:"completion_delay_ms"`

	// MailboxSize bounds the queued events of a reveal session.
	MailboxSize int `koanf:"mailbox_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Sport:             "football",
		FixtureSeed:       1,
		CountdownSteps:    3,
		CountdownStepMS:   800,
		FlipDelayMS:       300,
		FlipDurationMS:    600,
		AutoAdvanceMS:     3500,
		CompletionDelayMS: 500,
		MailboxSize:       256,
	}
}

// Durations converts the *_ms fields to time.Duration values in ceremony
// order: countdown step, flip delay, flip duration, auto-advance, completion.
func (c *Config) Durations() (step, flipDelay, flipDuration, autoAdvance, completion time.Duration) {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return ms(c.CountdownStepMS), ms(c.FlipDelayMS), ms(c.FlipDurationMS), ms(c.AutoAdvanceMS), ms(c.CompletionDelayMS)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	if c.CountdownSteps < 0 {
		return fmt.Errorf("%w: countdown_steps must not be negative", ErrInvalidConfig)
	}
	for key, v := range map[string]int{
		"countdown_step_ms":   c.CountdownStepMS,
		"flip_delay_ms":       c.FlipDelayMS,
		"flip_duration_ms":    c.FlipDurationMS,
		"auto_advance_ms":     c.AutoAdvanceMS,
		"completion_delay_ms": c.CompletionDelayMS,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, key)
		}
	}
	if c.MailboxSize <= 0 {
		return fmt.Errorf("%w: mailbox_size must be positive", ErrInvalidConfig)
	}
	if c.RosterPath == "" && strings.TrimSpace(c.Sport) == "" {
		return fmt.Errorf("%w: sport is required without roster_path", ErrInvalidConfig)
	}
	return nil
}
