package governor

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKeyHex = "b17c4c6a409cebce4b39977689180900d9009d5c55a57ff9fd9cb962b24ae99d"

func Test_PrivateKeySigner_SignHash(t *testing.T) {
	t.Parallel()

	privKey, err := crypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)
	signer := NewPrivateKeySigner(privKey)

	tests := []struct {
		name string
		give common.Hash
	}{
		{name: "zero hash", give: common.Hash{}},
		{name: "keccak digest", give: crypto.Keccak256Hash([]byte("ballot"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig, err := signer.SignHash(tt.give)
			require.NoError(t, err)
			require.NoError(t, sig.ValidateCanonical())

			recovered, err := sig.Recover(tt.give)
			require.NoError(t, err)
			assert.Equal(t, signer.Address(), recovered)
			assert.Equal(t, crypto.PubkeyToAddress(privKey.PublicKey), recovered)
		})
	}
}
