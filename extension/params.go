package extension

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PercentScale is the denominator of PercentDecay.
const PercentScale = 100

var (
	// ErrInvalidDecayPeriod is returned when the decay period is set to zero.
	ErrInvalidDecayPeriod = errors.New("decay period must be greater than zero")
)

// PercentDecayOutOfRangeError is returned when the percent decay is above PercentScale.
type PercentDecayOutOfRangeError struct {
	PercentDecay uint64
}

// NewPercentDecayOutOfRangeError creates a new PercentDecayOutOfRangeError.
func NewPercentDecayOutOfRangeError(percentDecay uint64) *PercentDecayOutOfRangeError {
	return &PercentDecayOutOfRangeError{PercentDecay: percentDecay}
}

func (e *PercentDecayOutOfRangeError) Error() string {
	return fmt.Sprintf("percent decay %d out of range [0, %d]", e.PercentDecay, PercentScale)
}

// Params are the anti-sniping parameters. Durations are in blocks. Version grows by one on
// every change.
type Params struct {
	Version               uint64 `json:"version" yaml:"-"`
	MaxDeadlineExtension  uint64 `json:"maxDeadlineExtension" yaml:"maxDeadlineExtension"`
	BaseDeadlineExtension uint64 `json:"baseDeadlineExtension" yaml:"baseDeadlineExtension"`
	DecayPeriod           uint64 `json:"decayPeriod" yaml:"decayPeriod" validate:"gt=0"`
	PercentDecay          uint64 `json:"percentDecay" yaml:"percentDecay" validate:"lte=100"`
}

// DefaultParams extend by up to two days with a base of one day halving every day past the
// original deadline.
func DefaultParams() Params {
	return Params{
		MaxDeadlineExtension:  14400,
		BaseDeadlineExtension: 7200,
		DecayPeriod:           7200,
		PercentDecay:          50,
	}
}

// Validate checks DecayPeriod > 0 and PercentDecay <= 100.
func (p Params) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			switch verrs[0].Field() {
			case "DecayPeriod":
				return ErrInvalidDecayPeriod
			case "PercentDecay":
				return NewPercentDecayOutOfRangeError(p.PercentDecay)
			}
		}

		return err
	}

	return nil
}
