package governor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/extension"
	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/types"
)

// CastVote records the vote of voter and returns its weight.
func (g *Governor) CastVote(ctx context.Context, voter common.Address, id uint64, support types.VoteType) (*uint256.Int, error) {
	return g.castVote(ctx, id, voter, support, "", nil)
}

// CastVoteWithReason is CastVote with a reason published in the VoteCast event.
func (g *Governor) CastVoteWithReason(
	ctx context.Context, voter common.Address, id uint64, support types.VoteType, reason string,
) (*uint256.Int, error) {
	return g.castVote(ctx, id, voter, support, reason, nil)
}

// CastVoteWithReasonAndParams is CastVoteWithReason with opaque params. Votes with params emit
// VoteCastWithParams.
func (g *Governor) CastVoteWithReasonAndParams(
	ctx context.Context, voter common.Address, id uint64, support types.VoteType, reason string, params []byte,
) (*uint256.Int, error) {
	return g.castVote(ctx, id, voter, support, reason, params)
}

func (g *Governor) castVote(
	ctx context.Context, id uint64, voter common.Address, support types.VoteType, reason string, params []byte,
) (*uint256.Int, error) {
	var weight *uint256.Int
	err := g.chain.Atomic(ctx, func(ctx context.Context) error {
		p, err := g.proposal(id)
		if err != nil {
			return err
		}

		state, err := g.state(p)
		if err != nil {
			return err
		}
		if state != types.ProposalStateActive {
			return NewUnexpectedProposalStateError(id, state, types.ProposalStateActive)
		}

		if p.receipts[voter].HasVoted {
			return NewAlreadyCastVoteError(id, voter)
		}
		if !support.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidVoteType, support)
		}

		weight, err = g.votes.Lookup(voter, p.VoteStart)
		if err != nil {
			return err
		}

		g.countVote(p, voter, support, weight)
		g.extendDeadline(ctx, p, weight)

		if len(params) == 0 {
			g.chain.Emit(g.address, VoteCast{
				Voter: voter, ProposalID: id, Support: support, Weight: weight.Clone(), Reason: reason,
			})
		} else {
			g.chain.Emit(g.address, VoteCastWithParams{
				Voter: voter, ProposalID: id, Support: support, Weight: weight.Clone(), Reason: reason, Params: params,
			})
		}
		sdk.LoggerFrom(ctx).Debugf("%s voted %s on proposal %d with weight %s", voter, support, id, weight.Dec())

		return nil
	})
	if err != nil {
		return nil, err
	}

	return weight, nil
}

func (g *Governor) countVote(p *proposalRecord, voter common.Address, support types.VoteType, weight *uint256.Int) {
	g.modify(p)
	prev, had := p.receipts[voter]
	g.journal(func() {
		if had {
			p.receipts[voter] = prev
		} else {
			delete(p.receipts, voter)
		}
	})
	p.receipts[voter] = Receipt{HasVoted: true, Support: support, Weight: weight.Clone()}

	switch support {
	case types.VoteAgainst:
		p.Votes.Against.Add(p.Votes.Against, weight)
	case types.VoteFor:
		p.Votes.For.Add(p.Votes.For, weight)
	case types.VoteAbstain:
		p.Votes.Abstain.Add(p.Votes.Abstain, weight)
	}
}

// extendDeadline runs the extension engine after a vote was counted.
func (g *Governor) extendDeadline(ctx context.Context, p *proposalRecord, weight *uint256.Int) {
	state, extended := g.engine.OnVote(extension.Vote{
		ProposalID:      p.ID,
		Now:             g.chain.Clock().Now(),
		CurrentDeadline: g.engine.Deadline(p.ID, p.VoteEnd),
		Weight:          weight,
		For:             p.Votes.For,
		Against:         p.Votes.Against,
	}, func() bool {
		reached, err := g.quorumReached(p)
		return err == nil && reached
	})
	if !extended {
		return
	}

	g.chain.Emit(g.address, ProposalExtended{
		ID:               p.ID,
		ExtendedDeadline: state.Deadline(),
		ExtendedBy:       state.ExtendedBy,
	})
	sdk.LoggerFrom(ctx).Infof("proposal %d deadline extended to %d", p.ID, state.Deadline())
}
