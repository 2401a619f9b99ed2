package governor

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/types"
)

// Propose creates a proposal and returns its id. Voting starts VotingDelay blocks from now and
// lasts VotingPeriod blocks.
func (g *Governor) Propose(ctx context.Context, proposer common.Address, actions []types.Action, description string) (uint64, error) {
	var id uint64
	err := g.chain.Atomic(ctx, func(ctx context.Context) error {
		request := ProposalRequest{Actions: actions, Description: description}
		if err := request.Validate(); err != nil {
			return err
		}

		if !isValidDescriptionForProposer(proposer, description) {
			return NewRestrictedProposerError(proposer)
		}

		now := g.chain.Clock().Now()
		if threshold := g.settings.ProposalThreshold; !threshold.IsZero() {
			votes := new(uint256.Int)
			if now > 0 {
				var err error
				if votes, err = g.votes.Lookup(proposer, now-1); err != nil {
					return err
				}
			}
			if votes.Lt(threshold) {
				return NewInsufficientProposerVotesError(proposer, votes, threshold.Clone())
			}
		}

		actionsHash, err := HashActions(actions)
		if err != nil {
			return err
		}

		stored := make([]types.Action, len(actions))
		for i, a := range actions {
			stored[i] = types.NewAction(a.Target, a.Value, a.Calldata, a.Signature)
		}

		g.proposalCount++
		id = g.proposalCount
		voteStart := now + g.settings.VotingDelay
		p := &proposalRecord{
			Proposal: Proposal{
				ID:          id,
				Proposer:    proposer,
				Actions:     stored,
				ActionsHash: actionsHash,
				Description: description,
				VoteStart:   voteStart,
				VoteEnd:     voteStart + g.settings.VotingPeriod,
				Votes:       newTally(),
			},
			receipts: make(map[common.Address]Receipt),
		}
		g.proposals[id] = p
		g.journal(func() { delete(g.proposals, id) })

		targets, values, calldatas := types.SplitActions(stored)
		event := ProposalCreated{
			ID:          id,
			Proposer:    proposer,
			Targets:     targets,
			Values:      values,
			Signatures:  make([]string, len(stored)),
			Calldatas:   make([]hexutil.Bytes, len(stored)),
			VoteStart:   p.VoteStart,
			VoteEnd:     p.VoteEnd,
			Description: description,
		}
		for i, a := range stored {
			event.Signatures[i] = a.Signature
			event.Calldatas[i] = calldatas[i]
		}
		g.chain.Emit(g.address, event)

		sdk.LoggerFrom(ctx).Infof("proposal %d created by %s, voting %d..%d", id, proposer, p.VoteStart, p.VoteEnd)

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}
