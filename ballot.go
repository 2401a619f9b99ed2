package governor

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/types"
)

// BallotVersion is the version of the EIP-712 signing domain.
const BallotVersion = "1"

var ballotTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Ballot": {
		{Name: "proposalId", Type: "uint256"},
		{Name: "support", Type: "uint8"},
		{Name: "voter", Type: "address"},
		{Name: "nonce", Type: "uint256"},
	},
	"ExtendedBallot": {
		{Name: "proposalId", Type: "uint256"},
		{Name: "support", Type: "uint8"},
		{Name: "voter", Type: "address"},
		{Name: "nonce", Type: "uint256"},
		{Name: "reason", Type: "string"},
		{Name: "params", Type: "bytes"},
	},
}

func (g *Governor) domain() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              g.name,
		Version:           BallotVersion,
		ChainId:           math.NewHexOrDecimal256(int64(g.chainID)), //nolint:gosec // evm chain ids fit in int64
		VerifyingContract: g.address.Hex(),
	}
}

func ballotMessage(id uint64, support types.VoteType, voter common.Address, nonce uint64) apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"proposalId": new(big.Int).SetUint64(id),
		"support":    big.NewInt(int64(support)),
		"voter":      voter.Hex(),
		"nonce":      new(big.Int).SetUint64(nonce),
	}
}

// BallotHash returns the EIP-712 digest a voter signs to vote with the given nonce.
func (g *Governor) BallotHash(id uint64, support types.VoteType, voter common.Address, nonce uint64) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(apitypes.TypedData{
		Types:       ballotTypes,
		PrimaryType: "Ballot",
		Domain:      g.domain(),
		Message:     ballotMessage(id, support, voter, nonce),
	})
	if err != nil {
		return common.Hash{}, err
	}

	return common.BytesToHash(hash), nil
}

// ExtendedBallotHash returns the EIP-712 digest of a ballot carrying a reason and params.
func (g *Governor) ExtendedBallotHash(
	id uint64, support types.VoteType, voter common.Address, nonce uint64, reason string, params []byte,
) (common.Hash, error) {
	message := ballotMessage(id, support, voter, nonce)
	message["reason"] = reason
	message["params"] = hexutil.Bytes(params)

	hash, _, err := apitypes.TypedDataAndHash(apitypes.TypedData{
		Types:       ballotTypes,
		PrimaryType: "ExtendedBallot",
		Domain:      g.domain(),
		Message:     message,
	})
	if err != nil {
		return common.Hash{}, err
	}

	return common.BytesToHash(hash), nil
}

// CastVoteBySig casts a vote signed by voter over BallotHash with the voter's current nonce.
func (g *Governor) CastVoteBySig(
	ctx context.Context, id uint64, support types.VoteType, voter common.Address, sig types.Signature,
) (*uint256.Int, error) {
	var weight *uint256.Int
	err := g.chain.Atomic(ctx, func(ctx context.Context) error {
		hash, err := g.BallotHash(id, support, voter, g.nonces[voter])
		if err != nil {
			return err
		}
		if err := g.useSignature(voter, hash, sig); err != nil {
			return err
		}

		weight, err = g.castVote(ctx, id, voter, support, "", nil)

		return err
	})

	return weight, err
}

// CastVoteWithReasonAndParamsBySig casts a vote signed by voter over ExtendedBallotHash.
func (g *Governor) CastVoteWithReasonAndParamsBySig(
	ctx context.Context,
	id uint64,
	support types.VoteType,
	voter common.Address,
	reason string,
	params []byte,
	sig types.Signature,
) (*uint256.Int, error) {
	var weight *uint256.Int
	err := g.chain.Atomic(ctx, func(ctx context.Context) error {
		hash, err := g.ExtendedBallotHash(id, support, voter, g.nonces[voter], reason, params)
		if err != nil {
			return err
		}
		if err := g.useSignature(voter, hash, sig); err != nil {
			return err
		}

		weight, err = g.castVote(ctx, id, voter, support, reason, params)

		return err
	})

	return weight, err
}

// useSignature checks that voter signed hash and consumes the voter's nonce.
func (g *Governor) useSignature(voter common.Address, hash common.Hash, sig types.Signature) error {
	if err := sig.ValidateCanonical(); err != nil {
		return NewInvalidSignatureError(voter)
	}

	signer, err := sig.Recover(hash)
	if err != nil || signer != voter {
		return NewInvalidSignatureError(voter)
	}
	g.nonces[voter]++

	return nil
}
