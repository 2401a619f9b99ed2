package simulation

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
)

func Test_EncodeCall(t *testing.T) {
	t.Parallel()

	alice := common.HexToAddress("0xb0001")
	resolve := func(name string) (common.Address, error) {
		if name == "alice" {
			return alice, nil
		}

		return common.Address{}, ErrUnknownAccount
	}

	tests := []struct {
		name      string
		signature string
		args      []string
		want      []any
		wantErr   string
	}{
		{
			name:      "success: address and uint256",
			signature: "transfer(address,uint256)",
			args:      []string{"alice", "1000"},
			want:      []any{alice, big.NewInt(1000)},
		},
		{
			name:      "success: small integers, bool, string and bytes",
			signature: "f(uint8,int64,bool,string,bytes,bytes4)",
			args:      []string{"255", "-3", "true", "hello", "0x0102", "0xdeadbeef"},
			want:      []any{uint8(255), int64(-3), true, "hello", []byte{1, 2}, [4]byte{0xde, 0xad, 0xbe, 0xef}},
		},
		{
			name:      "failure: argument count",
			signature: "f(uint256)",
			wantErr:   "f(uint256) takes 1 arguments, got 0",
		},
		{
			name:      "failure: uint8 overflow",
			signature: "f(uint8)",
			args:      []string{"256"},
			wantErr:   "256 out of range for uint8",
		},
		{
			name:      "failure: not an integer",
			signature: "f(uint256)",
			args:      []string{"ten"},
			wantErr:   `invalid integer "ten"`,
		},
		{
			name:      "failure: fixed bytes length",
			signature: "f(bytes32)",
			args:      []string{"0x01"},
			wantErr:   "bytes32 needs 32 bytes, got 1",
		},
		{
			name:      "failure: unresolved address",
			signature: "f(address)",
			args:      []string{"bob"},
			wantErr:   ErrUnknownAccount.Error(),
		},
		{
			name:      "failure: unsupported type",
			signature: "f(uint256[])",
			args:      []string{"1"},
			wantErr:   "unsupported argument type uint256[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodeCall(tt.signature, tt.args, resolve)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			decoded, err := abiUtils.DecodeCall(tt.signature, got)
			require.NoError(t, err)
			require.Equal(t, tt.want, decoded)
		})
	}
}
