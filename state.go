package governor

import (
	"github.com/smartcontractkit/governor/types"
)

// State derives the state of a proposal from its record and the current block.
func (g *Governor) State(id uint64) (types.ProposalState, error) {
	p, err := g.proposal(id)
	if err != nil {
		return "", err
	}

	return g.state(p)
}

func (g *Governor) state(p *proposalRecord) (types.ProposalState, error) {
	switch {
	case p.Executed:
		return types.ProposalStateExecuted, nil
	case p.Canceled:
		return types.ProposalStateCanceled, nil
	}

	now := g.chain.Clock().Now()
	if now <= p.VoteStart {
		return types.ProposalStatePending, nil
	}
	if now <= g.engine.Deadline(p.ID, p.VoteEnd) {
		return types.ProposalStateActive, nil
	}

	passed, err := g.quorumReached(p)
	if err != nil {
		return "", err
	}
	if !passed || !voteSucceeded(p) {
		return types.ProposalStateDefeated, nil
	}

	if p.Eta == 0 {
		return types.ProposalStateSucceeded, nil
	}
	if now > p.Eta+g.executor.GracePeriod() {
		return types.ProposalStateExpired, nil
	}

	return types.ProposalStateQueued, nil
}

// quorumReached reports whether for and abstain votes reach the quorum at the snapshot.
func (g *Governor) quorumReached(p *proposalRecord) (bool, error) {
	quorum, err := g.Quorum(p.VoteStart)
	if err != nil {
		return false, err
	}

	counted := p.Votes.For.Clone()
	counted.Add(counted, p.Votes.Abstain)

	return !quorum.Gt(counted), nil
}

func voteSucceeded(p *proposalRecord) bool {
	return p.Votes.For.Gt(p.Votes.Against)
}
