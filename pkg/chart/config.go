package chart

import (
	"github.com/matzehuels/apexkit/pkg/errors"
)

const (
	// RefreshDisabled turns off client-side polling for new data.
	RefreshDisabled = -1

	// DefaultRefreshTime is the polling interval in seconds used by
	// DefaultConfig.
	DefaultRefreshTime = 60

	// DefaultNoDataText is shown by the client while a chart has no series.
	DefaultNoDataText = "No data available"
)

// Config carries the per-chart settings injected at construction.
type Config struct {
	// RefreshTime is the data polling interval in seconds, or
	// RefreshDisabled.
	RefreshTime int

	// Debug pretty-prints serialized options.
	Debug bool

	// NoDataText replaces DefaultNoDataText when set.
	NoDataText string
}

// DefaultConfig returns a config polling every DefaultRefreshTime seconds.
func DefaultConfig() Config {
	return Config{RefreshTime: DefaultRefreshTime}
}

// Validate rejects refresh times that are neither positive nor
// RefreshDisabled.
func (c Config) Validate() error {
	return ValidateRefreshTime(c.RefreshTime)
}

// RefreshEnabled reports whether the client should poll for new data.
func (c Config) RefreshEnabled() bool {
	return c.RefreshTime > 0
}

// ValidateRefreshTime checks a refresh interval in seconds.
func ValidateRefreshTime(seconds int) error {
	if seconds > 0 || seconds == RefreshDisabled {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidRefresh,
		"invalid refresh time: %d (must be positive or %d to disable)", seconds, RefreshDisabled)
}

func (c Config) noDataText() string {
	if c.NoDataText == "" {
		return DefaultNoDataText
	}
	return c.NoDataText
}
