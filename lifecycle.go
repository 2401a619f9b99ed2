package governor

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/types"
)

// timelockTransactions returns the executor transactions of a proposal. Calldata is passed whole
// with an empty signature.
func timelockTransactions(p *proposalRecord, eta uint64) []types.Transaction {
	txs := make([]types.Transaction, len(p.Actions))
	for i, a := range p.Actions {
		txs[i] = types.Transaction{
			Target: a.Target,
			Value:  a.ValueOrZero().Clone(),
			Data:   append([]byte{}, a.Calldata...),
			Eta:    eta,
		}
	}

	return txs
}

// checkActions loads the proposal and checks that the caller supplied its exact actions.
func (g *Governor) checkActions(
	id uint64, targets []common.Address, values []*uint256.Int, calldatas [][]byte,
) (*proposalRecord, error) {
	p, err := g.proposal(id)
	if err != nil {
		return nil, err
	}

	actionsHash, err := HashProposalActions(targets, values, calldatas)
	if err != nil {
		return nil, err
	}
	if actionsHash != p.ActionsHash {
		return nil, NewActionsHashMismatchError(id, p.ActionsHash, actionsHash)
	}

	return p, nil
}

// Queue schedules the actions of a succeeded proposal in the executor and returns the eta.
func (g *Governor) Queue(
	ctx context.Context, id uint64, targets []common.Address, values []*uint256.Int, calldatas [][]byte,
) (uint64, error) {
	var eta uint64
	err := g.chain.Atomic(ctx, func(ctx context.Context) error {
		p, err := g.checkActions(id, targets, values, calldatas)
		if err != nil {
			return err
		}

		state, err := g.state(p)
		if err != nil {
			return err
		}
		if state != types.ProposalStateSucceeded {
			return NewUnexpectedProposalStateError(id, state, types.ProposalStateSucceeded)
		}

		eta = g.chain.Clock().Now() + g.executor.Delay()
		for i, tx := range timelockTransactions(p, eta) {
			txHash, err := g.executor.HashTransaction(tx)
			if err != nil {
				return err
			}
			if g.executor.IsQueued(txHash) {
				return NewAlreadyQueuedActionError(id, i)
			}
			if _, err := g.executor.QueueTransaction(ctx, g.address, tx); err != nil {
				return err
			}
		}

		g.modify(p)
		p.Eta = eta
		g.chain.Emit(g.address, ProposalQueued{ID: id, Eta: eta})
		sdk.LoggerFrom(ctx).Infof("proposal %d queued for block %d", id, eta)

		return nil
	})
	if err != nil {
		return 0, err
	}

	return eta, nil
}

// Execute runs the actions of a queued proposal through the executor. Either every action takes
// effect or none does.
func (g *Governor) Execute(
	ctx context.Context, id uint64, targets []common.Address, values []*uint256.Int, calldatas [][]byte,
) error {
	return g.chain.Atomic(ctx, func(ctx context.Context) error {
		p, err := g.checkActions(id, targets, values, calldatas)
		if err != nil {
			return err
		}

		state, err := g.state(p)
		if err != nil {
			return err
		}
		if state != types.ProposalStateQueued {
			return NewUnexpectedProposalStateError(id, state, types.ProposalStateQueued)
		}

		g.modify(p)
		p.Executed = true

		executor := g.executor
		selfExecuting := executor.Address() == g.address
		if !selfExecuting {
			for _, a := range p.Actions {
				if a.Target == g.address {
					g.calls.Push(crypto.Keccak256Hash(a.Calldata))
				}
			}
		}

		for _, tx := range timelockTransactions(p, p.Eta) {
			if _, err := executor.ExecuteTransaction(ctx, g.address, tx); err != nil {
				return err
			}
		}

		if !selfExecuting {
			g.calls.Clear()
		}

		g.chain.Emit(g.address, ProposalExecuted{ID: id})
		sdk.LoggerFrom(ctx).Infof("proposal %d executed", id)

		return nil
	})
}

// Cancel cancels a proposal. The proposer may cancel while it is pending, the canceler until it
// is executed. Actions already queued in the executor are canceled too.
func (g *Governor) Cancel(ctx context.Context, caller common.Address, id uint64) error {
	return g.chain.Atomic(ctx, func(ctx context.Context) error {
		p, err := g.proposal(id)
		if err != nil {
			return err
		}

		state, err := g.state(p)
		if err != nil {
			return err
		}

		switch {
		case state == types.ProposalStateCanceled || state == types.ProposalStateExecuted:
			return NewUnexpectedProposalStateError(id, state,
				types.ProposalStatePending,
				types.ProposalStateActive,
				types.ProposalStateDefeated,
				types.ProposalStateSucceeded,
				types.ProposalStateQueued,
				types.ProposalStateExpired,
			)
		case g.canceler != (common.Address{}) && caller == g.canceler:
		case caller == p.Proposer:
			if state != types.ProposalStatePending {
				return NewUnexpectedProposalStateError(id, state, types.ProposalStatePending)
			}
		default:
			return NewUnauthorizedCancelError(id, caller)
		}

		g.modify(p)
		p.Canceled = true
		if p.Eta != 0 {
			for _, tx := range timelockTransactions(p, p.Eta) {
				if err := g.executor.CancelTransaction(ctx, g.address, tx); err != nil {
					return err
				}
			}
		}

		g.chain.Emit(g.address, ProposalCanceled{ID: id})
		sdk.LoggerFrom(ctx).Infof("proposal %d canceled by %s", id, caller)

		return nil
	})
}
