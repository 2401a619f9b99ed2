package timelock

import (
	"github.com/go-playground/validator/v10"
)

// Defaults in blocks of 12 seconds.
const (
	DefaultGracePeriod  uint64 = 100800 // 14 days
	DefaultMinimumDelay uint64 = 14400  // 2 days
	DefaultMaximumDelay uint64 = 216000 // 30 days
)

// Config holds the timing bounds of a Timelock. All values are in blocks.
type Config struct {
	Delay        uint64 `json:"delay" yaml:"delay" validate:"gtefield=MinimumDelay,ltefield=MaximumDelay"`
	GracePeriod  uint64 `json:"gracePeriod" yaml:"gracePeriod" validate:"gt=0"`
	MinimumDelay uint64 `json:"minimumDelay" yaml:"minimumDelay" validate:"gt=0"`
	MaximumDelay uint64 `json:"maximumDelay" yaml:"maximumDelay" validate:"gtefield=MinimumDelay"`
}

// DefaultConfig returns a config whose delay is the minimum delay.
func DefaultConfig() Config {
	return Config{
		Delay:        DefaultMinimumDelay,
		GracePeriod:  DefaultGracePeriod,
		MinimumDelay: DefaultMinimumDelay,
		MaximumDelay: DefaultMaximumDelay,
	}
}

// Validate checks that 0 < MinimumDelay <= Delay <= MaximumDelay and GracePeriod > 0.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
