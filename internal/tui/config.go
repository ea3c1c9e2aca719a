package tui

import (
	"time"

	"golang.org/x/text/currency"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/config"
	"github.com/Veraticus/moneyflow/internal/tui/themes"
)

// Source supplies a consistent copy of the collections to browse.
type Source interface {
	Snapshot() aggregate.Collections
}

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Source       Source
	ReferenceNow func() time.Time
	Currency     currency.Unit
	Width        int
	Height       int
	RecentCount  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		ReferenceNow: time.Now,
		Currency:     currency.EUR,
		Width:        100,
		Height:       30,
		RecentCount:  config.DefaultRecentCount,
	}
}

// WithSource sets where the browser reads its collections from.
func WithSource(source Source) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithReferenceNow sets the clock used for month windows and deadlines.
func WithReferenceNow(now func() time.Time) Option {
	return func(c *Config) {
		c.ReferenceNow = now
	}
}

// WithCurrency sets the currency amounts are shown in.
func WithCurrency(unit currency.Unit) Option {
	return func(c *Config) {
		c.Currency = unit
	}
}

// WithRecentCount sets how many transactions the overview lists.
func WithRecentCount(n int) Option {
	return func(c *Config) {
		c.RecentCount = n
	}
}
