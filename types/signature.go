package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureVOffset is added to the recovery id by signers following the legacy 27/28 convention.
const SignatureVOffset = 27

// ErrMalleableSignature is returned for signatures with a high S value or an unexpected
// recovery id.
var ErrMalleableSignature = errors.New("malleable signature")

var secp256k1HalfN = new(big.Int).Rsh(crypto.S256().Params().N, 1)

// Signature is a secp256k1 signature over a ballot digest.
type Signature struct {
	R common.Hash `json:"r"`
	S common.Hash `json:"s"`
	V uint8       `json:"v"`
}

// NewSignatureFromBytes splits a 65 byte r || s || v signature, as produced by crypto.Sign.
func NewSignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != crypto.SignatureLength {
		return Signature{}, fmt.Errorf("invalid signature length: %d", len(sig))
	}

	return Signature{
		R: common.BytesToHash(sig[:32]),
		S: common.BytesToHash(sig[32:64]),
		V: sig[crypto.RecoveryIDOffset],
	}, nil
}

// Recover returns the address that signed hash. V may be given as 0/1 or 27/28.
func (s Signature) Recover(hash common.Hash) (common.Address, error) {
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[:32], s.R.Bytes())
	copy(sig[32:64], s.S.Bytes())
	sig[crypto.RecoveryIDOffset] = s.V
	if s.V >= SignatureVOffset {
		sig[crypto.RecoveryIDOffset] -= SignatureVOffset
	}

	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// ValidateCanonical rejects signatures whose S value lies in the upper half of the curve order
// or whose V is not one of 0, 1, 27 or 28.
func (s Signature) ValidateCanonical() error {
	if s.S.Big().Cmp(secp256k1HalfN) > 0 {
		return fmt.Errorf("%w: s value too high", ErrMalleableSignature)
	}

	switch s.V {
	case 0, 1, SignatureVOffset, SignatureVOffset + 1:
		return nil
	default:
		return fmt.Errorf("%w: invalid v value %d", ErrMalleableSignature, s.V)
	}
}
