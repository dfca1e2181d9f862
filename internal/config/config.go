// Package config loads repolens configuration from file, environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"
)

// Output formats accepted for the stats run.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatPlot  = "plot"
)

// Defaults applied when no config file or environment override is present.
const (
	DefaultStatsFormat = FormatTable
	DefaultDateFormat  = "02 Jan 2006 15:04:05"
)

// Default classification prefixes, in precedence order.
var (
	DefaultFeaturePrefixes = []string{"feat", "feature", "Merged PR", "task"}
	DefaultFixPrefixes     = []string{"fix", "bug"}
)

// ErrInvalidStatsFormat is returned when stats.format is not a known format.
var ErrInvalidStatsFormat = errors.New("invalid stats format")

// Config is the top-level configuration struct for repolens.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Stats     StatsConfig     `mapstructure:"stats"`
	Changelog ChangelogConfig `mapstructure:"changelog"`
}

// StatsConfig holds settings for the author statistics run.
type StatsConfig struct {
	Format string `mapstructure:"format"`
}

// ChangelogConfig holds settings for changelog generation. The prefix lists
// extend the classification rule table without touching traversal logic.
type ChangelogConfig struct {
	FeaturePrefixes []string `mapstructure:"feature_prefixes"`
	FixPrefixes     []string `mapstructure:"fix_prefixes"`
	DateFormat      string   `mapstructure:"date_format"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Stats.Format {
	case FormatTable, FormatYAML, FormatPlot:
		return nil
	default:
		return fmt.Errorf("%w: %s (use table, yaml, or plot)", ErrInvalidStatsFormat, c.Stats.Format)
	}
}
