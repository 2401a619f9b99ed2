package governor

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcontractkit/governor/types"
)

// BallotSigner signs ballot digests on behalf of a voter.
type BallotSigner interface {
	SignHash(hash common.Hash) (types.Signature, error)
	Address() common.Address
}

var _ BallotSigner = &PrivateKeySigner{}

// PrivateKeySigner signs ballots using a private key.
type PrivateKeySigner struct {
	pk *ecdsa.PrivateKey
}

// NewPrivateKeySigner creates a new PrivateKeySigner.
func NewPrivateKeySigner(pk *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{pk: pk}
}

// SignHash signs an EIP-712 digest as is, without the EIP-191 prefix.
func (s *PrivateKeySigner) SignHash(hash common.Hash) (types.Signature, error) {
	sig, err := crypto.Sign(hash.Bytes(), s.pk)
	if err != nil {
		return types.Signature{}, err
	}

	return types.NewSignatureFromBytes(sig)
}

// Address returns the address of the signer.
func (s *PrivateKeySigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.pk.PublicKey)
}

// SignBallot signs a ballot for the signer's next nonce.
func (g *Governor) SignBallot(signer BallotSigner, id uint64, support types.VoteType) (types.Signature, error) {
	voter := signer.Address()
	hash, err := g.BallotHash(id, support, voter, g.Nonces(voter))
	if err != nil {
		return types.Signature{}, err
	}

	return signer.SignHash(hash)
}

// SignExtendedBallot signs a ballot with a reason and params for the signer's next nonce.
func (g *Governor) SignExtendedBallot(
	signer BallotSigner, id uint64, support types.VoteType, reason string, params []byte,
) (types.Signature, error) {
	voter := signer.Address()
	hash, err := g.ExtendedBallotHash(id, support, voter, g.Nonces(voter), reason, params)
	if err != nil {
		return types.Signature{}, err
	}

	return signer.SignHash(hash)
}
