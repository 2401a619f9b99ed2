package testutils

import (
	"context"
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap/zaptest"

	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/types"
)

// Note: should only be used for testing purposes
type ECDSASigner struct {
	Key *ecdsa.PrivateKey
}

func NewECDSASigner() *ECDSASigner {
	key, _ := crypto.GenerateKey()
	return &ECDSASigner{Key: key}
}

func (s *ECDSASigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.Key.PublicKey)
}

// SignHash signs a ballot digest without any prefix.
func (s *ECDSASigner) SignHash(hash common.Hash) (types.Signature, error) {
	sig, err := crypto.Sign(hash.Bytes(), s.Key)
	if err != nil {
		return types.Signature{}, err
	}

	return types.NewSignatureFromBytes(sig)
}

// Context returns a context carrying a logger that writes through t.
func Context(t *testing.T) context.Context {
	t.Helper()

	return sdk.WithLogger(t.Context(), zaptest.NewLogger(t).Sugar())
}
