package ledger

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

var (
	// ErrUnorderedInsertion is returned when a checkpoint is pushed with a key older than the latest.
	ErrUnorderedInsertion = errors.New("checkpoint unordered insertion")

	// ErrSubtractUnderflow is returned when a subtraction would take a value below zero.
	ErrSubtractUnderflow = errors.New("checkpoint value underflow")

	// ErrInvalidOp is returned for an operation other than Add or Subtract.
	ErrInvalidOp = errors.New("invalid checkpoint operation")
)

// FutureLookupError is returned when a lookup targets the current or a future timepoint, whose
// value could still change within the current block.
type FutureLookupError struct {
	Timepoint uint64
	Clock     uint64
}

// NewFutureLookupError creates a new FutureLookupError.
func NewFutureLookupError(timepoint, clock uint64) *FutureLookupError {
	return &FutureLookupError{Timepoint: timepoint, Clock: clock}
}

func (e *FutureLookupError) Error() string {
	return fmt.Sprintf("future lookup: timepoint %d, current clock %d", e.Timepoint, e.Clock)
}

// MaxSupplyOverflowError is returned when a write would push the total supply past its cap.
type MaxSupplyOverflowError struct {
	Increased *uint256.Int
	Cap       *uint256.Int
}

// NewMaxSupplyOverflowError creates a new MaxSupplyOverflowError.
func NewMaxSupplyOverflowError(increased, cap *uint256.Int) *MaxSupplyOverflowError {
	return &MaxSupplyOverflowError{Increased: increased, Cap: cap}
}

func (e *MaxSupplyOverflowError) Error() string {
	return fmt.Sprintf("total supply %s exceeds max supply %s", e.Increased.Dec(), e.Cap.Dec())
}

// ValueOverflowError is returned when a value does not fit in a checkpoint.
type ValueOverflowError struct {
	Value *uint256.Int
}

// NewValueOverflowError creates a new ValueOverflowError.
func NewValueOverflowError(value *uint256.Int) *ValueOverflowError {
	return &ValueOverflowError{Value: value.Clone()}
}

func (e *ValueOverflowError) Error() string {
	return fmt.Sprintf("value %s does not fit in %d bits", e.Value.Dec(), ValueBits)
}
