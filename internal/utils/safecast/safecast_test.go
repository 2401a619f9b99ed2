package safecast

import (
	"math"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Uint64ToUint8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    uint64
		want    uint8
		wantErr bool
	}{
		{name: "Valid uint64 within range", give: 42, want: 42},
		{name: "Uint64 exceeds uint8 max value", give: uint64(math.MaxUint8 + 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint64ToUint8(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_Uint64ToInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    uint64
		want    int64
		wantErr bool
	}{
		{name: "Valid uint64 within range", give: 42, want: 42},
		{name: "Uint64 exceeds int64 max value", give: uint64(math.MaxInt64) + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint64ToInt64(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_Int64ToUint64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    int64
		want    uint64
		wantErr bool
	}{
		{name: "Valid int64 within range", give: 42, want: 42},
		{name: "Negative int64", give: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Int64ToUint64(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_BigToUint64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    *big.Int
		want    uint64
		wantErr string
	}{
		{name: "Valid big within range", give: big.NewInt(42), want: 42},
		{name: "Nil", give: nil, wantErr: "nil value cannot convert to uint64"},
		{name: "Negative", give: big.NewInt(-1), wantErr: "value -1 is negative, cannot convert to uint64"},
		{
			name:    "Exceeds uint64",
			give:    new(big.Int).Lsh(big.NewInt(1), 64),
			wantErr: "value 18446744073709551616 exceeds uint64 range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BigToUint64(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_BigToUint256(t *testing.T) {
	t.Parallel()

	got, err := BigToUint256(big.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(42), got)

	_, err = BigToUint256(new(big.Int).Lsh(big.NewInt(1), 256))
	require.Error(t, err)

	_, err = BigToUint256(big.NewInt(-3))
	require.EqualError(t, err, "value -3 is negative, cannot convert to uint256")

	_, err = BigToUint256(nil)
	require.Error(t, err)
}
