package governor

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/chain"
	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/internal/utils/safecast"
	"github.com/smartcontractkit/governor/sdk"
)

// Signatures of the governance setters reachable through Call.
const (
	SetVotingDelaySignature           = "setVotingDelay(uint256)"
	SetVotingPeriodSignature          = "setVotingPeriod(uint256)"
	SetProposalThresholdSignature     = "setProposalThreshold(uint256)"
	UpdateQuorumNumeratorSignature    = "updateQuorumNumerator(uint256)"
	SetMaxDeadlineExtensionSignature  = "setMaxDeadlineExtension(uint256)"
	SetBaseDeadlineExtensionSignature = "setBaseDeadlineExtension(uint256)"
	SetDecayPeriodSignature           = "setDecayPeriod(uint256)"
	SetPercentDecaySignature          = "setPercentDecay(uint256)"
	UpdateExecutorSignature           = "updateExecutor(address)"
	SetCancelerSignature              = "setCanceler(address)"
)

type setter func(g *Governor, ctx context.Context, arg any) error

var setters = map[string]setter{
	SetVotingDelaySignature:           uintSetter((*Governor).setVotingDelay),
	SetVotingPeriodSignature:          uintSetter((*Governor).setVotingPeriod),
	SetProposalThresholdSignature:     (*Governor).setProposalThreshold,
	UpdateQuorumNumeratorSignature:    uintSetter((*Governor).updateQuorumNumerator),
	SetMaxDeadlineExtensionSignature:  uintSetter((*Governor).setMaxDeadlineExtension),
	SetBaseDeadlineExtensionSignature: uintSetter((*Governor).setBaseDeadlineExtension),
	SetDecayPeriodSignature:           uintSetter((*Governor).setDecayPeriod),
	SetPercentDecaySignature:          uintSetter((*Governor).setPercentDecay),
	UpdateExecutorSignature:           addressSetter((*Governor).updateExecutor),
	SetCancelerSignature:              addressSetter((*Governor).setCanceler),
}

func uintSetter(fn func(g *Governor, v uint64) error) setter {
	return func(g *Governor, _ context.Context, arg any) error {
		v, err := safecast.BigToUint64(arg.(*big.Int))
		if err != nil {
			return err
		}

		return fn(g, v)
	}
}

func addressSetter(fn func(g *Governor, a common.Address) error) setter {
	return func(g *Governor, _ context.Context, arg any) error {
		return fn(g, arg.(common.Address))
	}
}

// Call handles calls made to the governor. Only the governance setters are callable, and only by
// the executor running a proposal that authorized the exact call.
func (g *Governor) Call(ctx context.Context, msg chain.Message) ([]byte, error) {
	for signature, set := range setters {
		if !abiUtils.HasSelector(signature, msg.Data) {
			continue
		}

		if err := g.checkGovernance(msg); err != nil {
			return nil, err
		}

		args, err := abiUtils.DecodeCall(signature, msg.Data)
		if err != nil {
			return nil, err
		}
		if err := set(g, ctx, args[0]); err != nil {
			return nil, err
		}
		sdk.LoggerFrom(ctx).Infof("governor %s: %s applied, settings version %d", g.address, signature, g.settings.Version)

		return nil, nil
	}

	return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, msg.Data[:min(len(msg.Data), abiUtils.SelectorLength)])
}

// checkGovernance requires the executor as sender and consumes the next authorized call.
func (g *Governor) checkGovernance(msg chain.Message) error {
	executor := g.executor.Address()
	if msg.From != executor {
		return NewOnlyGovernanceError(msg.From)
	}
	if executor == g.address {
		return nil
	}

	return g.calls.Pop(crypto.Keccak256Hash(msg.Data))
}

func (g *Governor) setVotingDelay(v uint64) error {
	g.chain.Emit(g.address, VotingDelaySet{OldVotingDelay: g.settings.VotingDelay, NewVotingDelay: v})
	g.settings.VotingDelay = v
	g.settings.Version++

	return nil
}

func (g *Governor) setVotingPeriod(v uint64) error {
	if v == 0 {
		return NewInvalidVotingPeriodError(v)
	}

	g.chain.Emit(g.address, VotingPeriodSet{OldVotingPeriod: g.settings.VotingPeriod, NewVotingPeriod: v})
	g.settings.VotingPeriod = v
	g.settings.Version++

	return nil
}

func (g *Governor) setProposalThreshold(_ context.Context, arg any) error {
	v, err := safecast.BigToUint256(arg.(*big.Int))
	if err != nil {
		return err
	}

	g.chain.Emit(g.address, ProposalThresholdSet{
		OldProposalThreshold: g.settings.ProposalThreshold.Clone(),
		NewProposalThreshold: v.Clone(),
	})
	g.settings.ProposalThreshold = v
	g.settings.Version++

	return nil
}

func (g *Governor) updateQuorumNumerator(v uint64) error {
	if v > QuorumDenominator {
		return NewInvalidQuorumFractionError(v, QuorumDenominator)
	}

	old := g.QuorumNumerator()
	if _, _, err := g.quorumNumerator.Push(g.chain.Clock().Now(), uint256.NewInt(v)); err != nil {
		return err
	}
	g.chain.Emit(g.address, QuorumNumeratorUpdated{OldQuorumNumerator: old, NewQuorumNumerator: v})
	g.settings.Version++

	return nil
}

func (g *Governor) setMaxDeadlineExtension(v uint64) error {
	old := g.engine.Params().MaxDeadlineExtension
	g.engine.SetMaxDeadlineExtension(v)
	g.chain.Emit(g.address, MaxDeadlineExtensionSet{OldMaxDeadlineExtension: old, NewMaxDeadlineExtension: v})

	return nil
}

func (g *Governor) setBaseDeadlineExtension(v uint64) error {
	old := g.engine.Params().BaseDeadlineExtension
	g.engine.SetBaseDeadlineExtension(v)
	g.chain.Emit(g.address, BaseDeadlineExtensionSet{OldBaseDeadlineExtension: old, NewBaseDeadlineExtension: v})

	return nil
}

func (g *Governor) setDecayPeriod(v uint64) error {
	old := g.engine.Params().DecayPeriod
	if _, err := g.engine.SetDecayPeriod(v); err != nil {
		return err
	}
	g.chain.Emit(g.address, DecayPeriodSet{OldDecayPeriod: old, NewDecayPeriod: v})

	return nil
}

func (g *Governor) setPercentDecay(v uint64) error {
	old := g.engine.Params().PercentDecay
	if _, err := g.engine.SetPercentDecay(v); err != nil {
		return err
	}
	g.chain.Emit(g.address, PercentDecaySet{OldPercentDecay: old, NewPercentDecay: v})

	return nil
}

func (g *Governor) updateExecutor(a common.Address) error {
	contract, ok := g.chain.Contract(a)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidExecutor, a)
	}
	executor, ok := contract.(sdk.Executor)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidExecutor, a)
	}

	g.chain.Emit(g.address, ExecutorUpdated{OldExecutor: g.executor.Address(), NewExecutor: a})
	g.executor = executor
	g.settings.Version++

	return nil
}

func (g *Governor) setCanceler(a common.Address) error {
	g.chain.Emit(g.address, CancelerSet{OldCanceler: g.canceler, NewCanceler: a})
	g.canceler = a
	g.settings.Version++

	return nil
}
