// Package safecast implements functions to safely cast types to avoid panics
package safecast

import (
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/spf13/cast"
)

// Uint64ToUint8 safely converts an uint64 to uint8 using cast and checks for overflow
func Uint64ToUint8(value uint64) (uint8, error) {
	if value > math.MaxUint8 {
		return 0, fmt.Errorf("value %d exceeds uint8 range", value)
	}

	return cast.ToUint8E(value)
}

// Uint64ToInt64 safely converts a uint64 to int64 using cast and checks for overflow
func Uint64ToInt64(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, fmt.Errorf("value %d exceeds int64 range", value)
	}

	return cast.ToInt64E(value)
}

// Int64ToUint64 safely converts an int64 to uint64 using cast and checks for overflow
func Int64ToUint64(value int64) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}

// BigToUint64 converts an abi decoded integer to uint64, rejecting negative and oversized values.
func BigToUint64(value *big.Int) (uint64, error) {
	if value == nil {
		return 0, fmt.Errorf("nil value cannot convert to uint64")
	}
	if value.Sign() < 0 {
		return 0, fmt.Errorf("value %s is negative, cannot convert to uint64", value)
	}
	if !value.IsUint64() {
		return 0, fmt.Errorf("value %s exceeds uint64 range", value)
	}

	return value.Uint64(), nil
}

// BigToUint256 converts an abi decoded integer to a uint256, rejecting negative and oversized
// values.
func BigToUint256(value *big.Int) (*uint256.Int, error) {
	if value == nil {
		return nil, fmt.Errorf("nil value cannot convert to uint256")
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("value %s is negative, cannot convert to uint256", value)
	}

	v, overflow := uint256.FromBig(value)
	if overflow {
		return nil, fmt.Errorf("value %s exceeds uint256 range", value)
	}

	return v, nil
}
