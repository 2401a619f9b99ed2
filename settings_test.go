package governor

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/governor/chain"
	"github.com/smartcontractkit/governor/extension"
	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/timelock"
	"github.com/smartcontractkit/governor/types"
)

// runProposal proposes actions, passes, queues and executes them, returning the execution error.
func (e *testEnv) runProposal(t *testing.T, actions ...types.Action) (uint64, error) {
	t.Helper()

	id := e.propose(t, actions...)
	e.pass(t, id)
	eta := e.queue(t, id)
	e.mineTo(t, eta)

	return id, e.execute(id)
}

func Test_Governor_Setters(t *testing.T) {
	t.Parallel()

	otherTimelock := common.HexToAddress("0x00000000000000000000000000000000000a0005")

	tests := []struct {
		name    string
		action  func(t *testing.T) types.Action
		setup   func(t *testing.T, env *testEnv)
		assert  func(t *testing.T, env *testEnv)
		wantErr error
	}{
		{
			name:   "set voting delay",
			action: func(t *testing.T) types.Action { return governorAction(t, SetVotingDelaySignature, big64(5)) },
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, uint64(5), env.governor.VotingDelay())
				assert.Equal(t, []VotingDelaySet{{OldVotingDelay: 10, NewVotingDelay: 5}}, eventsOf[VotingDelaySet](env.chain))
			},
		},
		{
			name:   "set voting period",
			action: func(t *testing.T) types.Action { return governorAction(t, SetVotingPeriodSignature, big64(50)) },
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, uint64(50), env.governor.VotingPeriod())
			},
		},
		{
			name:    "set voting period to zero",
			action:  func(t *testing.T) types.Action { return governorAction(t, SetVotingPeriodSignature, big64(0)) },
			wantErr: NewInvalidVotingPeriodError(0),
		},
		{
			name:   "set proposal threshold",
			action: func(t *testing.T) types.Action { return governorAction(t, SetProposalThresholdSignature, big64(12)) },
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, uint256.NewInt(12), env.governor.ProposalThreshold())

				_, err := env.governor.Propose(env.ctx, dave, []types.Action{types.NewAction(bob, nil, nil, "")}, "")
				require.Equal(t, NewInsufficientProposerVotesError(dave, uint256.NewInt(10), uint256.NewInt(12)), err)
			},
		},
		{
			name:   "update quorum numerator",
			action: func(t *testing.T) types.Action { return governorAction(t, UpdateQuorumNumeratorSignature, big64(10)) },
			assert: func(t *testing.T, env *testEnv) {
				now := env.clock.Now()
				assert.Equal(t, uint64(10), env.governor.QuorumNumerator())
				assert.Equal(t, uint64(10), env.governor.QuorumNumeratorAt(now))
				assert.Equal(t, uint64(4), env.governor.QuorumNumeratorAt(now-1))
				assert.Equal(t, []QuorumNumeratorUpdated{{OldQuorumNumerator: 4, NewQuorumNumerator: 10}},
					eventsOf[QuorumNumeratorUpdated](env.chain))
			},
		},
		{
			name:    "update quorum numerator above denominator",
			action:  func(t *testing.T) types.Action { return governorAction(t, UpdateQuorumNumeratorSignature, big64(101)) },
			wantErr: NewInvalidQuorumFractionError(101, QuorumDenominator),
		},
		{
			name: "extension parameters",
			action: func(t *testing.T) types.Action {
				return governorAction(t, SetMaxDeadlineExtensionSignature, big64(600))
			},
			assert: func(t *testing.T, env *testEnv) {
				params := env.governor.ExtensionParams()
				assert.Equal(t, uint64(600), params.MaxDeadlineExtension)
				assert.Equal(t, uint64(1), params.Version)
			},
		},
		{
			name:   "base deadline extension",
			action: func(t *testing.T) types.Action { return governorAction(t, SetBaseDeadlineExtensionSignature, big64(300)) },
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, uint64(300), env.governor.ExtensionParams().BaseDeadlineExtension)
			},
		},
		{
			name:   "decay period",
			action: func(t *testing.T) types.Action { return governorAction(t, SetDecayPeriodSignature, big64(100)) },
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, uint64(100), env.governor.ExtensionParams().DecayPeriod)
			},
		},
		{
			name:    "zero decay period",
			action:  func(t *testing.T) types.Action { return governorAction(t, SetDecayPeriodSignature, big64(0)) },
			wantErr: extension.ErrInvalidDecayPeriod,
		},
		{
			name:   "percent decay",
			action: func(t *testing.T) types.Action { return governorAction(t, SetPercentDecaySignature, big64(100)) },
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, uint64(100), env.governor.ExtensionParams().PercentDecay)
			},
		},
		{
			name:    "percent decay above scale",
			action:  func(t *testing.T) types.Action { return governorAction(t, SetPercentDecaySignature, big64(101)) },
			wantErr: extension.NewPercentDecayOutOfRangeError(101),
		},
		{
			name:   "set canceler",
			action: func(t *testing.T) types.Action { return governorAction(t, SetCancelerSignature, bob) },
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, bob, env.governor.Canceler())
			},
		},
		{
			name:    "update executor to a non executor",
			action:  func(t *testing.T) types.Action { return governorAction(t, UpdateExecutorSignature, treasuryAddress) },
			wantErr: ErrInvalidExecutor,
		},
		{
			name:   "update executor",
			action: func(t *testing.T) types.Action { return governorAction(t, UpdateExecutorSignature, otherTimelock) },
			setup: func(t *testing.T, env *testEnv) {
				tl, err := timelock.New(env.chain, otherTimelock, governorAddress, testTimelockConfig())
				require.NoError(t, err)
				require.NoError(t, tl.Deploy())
			},
			assert: func(t *testing.T, env *testEnv) {
				assert.Equal(t, otherTimelock, env.governor.Executor().Address())
				assert.Equal(t, []ExecutorUpdated{{OldExecutor: timelockAddress, NewExecutor: otherTimelock}},
					eventsOf[ExecutorUpdated](env.chain))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			if tt.setup != nil {
				tt.setup(t, env)
			}
			before := env.governor.Settings()

			id, err := env.runProposal(t, tt.action(t))
			if tt.wantErr != nil {
				require.ErrorContains(t, err, tt.wantErr.Error())

				state, err := env.governor.State(id)
				require.NoError(t, err)
				assert.Equal(t, types.ProposalStateQueued, state)
				assert.Equal(t, before, env.governor.Settings())

				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, env.governor.calls.Len())
			tt.assert(t, env)
		})
	}
}

func Test_Governor_Settings_Version(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.runProposal(t,
		governorAction(t, SetVotingDelaySignature, big64(5)),
		governorAction(t, SetVotingPeriodSignature, big64(60)),
	)
	require.NoError(t, err)

	assert.Equal(t, Settings{
		Version:           2,
		VotingDelay:       5,
		VotingPeriod:      60,
		ProposalThreshold: new(uint256.Int),
	}, env.governor.Settings())

	// new proposals use the new settings
	id := env.propose(t, types.NewAction(bob, nil, nil, ""))
	p, err := env.governor.Proposal(id)
	require.NoError(t, err)
	now := env.clock.Now()
	assert.Equal(t, now+5, p.VoteStart)
	assert.Equal(t, now+65, p.VoteEnd)
}

func Test_Governor_Call(t *testing.T) {
	t.Parallel()

	setDelay, err := abiUtils.EncodeCall(SetVotingDelaySignature, big64(1))
	require.NoError(t, err)

	tests := []struct {
		name    string
		msg     chain.Message
		wantErr error
	}{
		{
			name:    "not the executor",
			msg:     chain.Message{From: alice, To: governorAddress, Data: setDelay},
			wantErr: NewOnlyGovernanceError(alice),
		},
		{
			name:    "executor outside of a proposal",
			msg:     chain.Message{From: timelockAddress, To: governorAddress, Data: setDelay},
			wantErr: ErrGovernanceCallQueueEmpty,
		},
		{
			name:    "unknown selector",
			msg:     chain.Message{From: timelockAddress, To: governorAddress, Data: []byte{0x01, 0x02, 0x03, 0x04}},
			wantErr: ErrUnknownSelector,
		},
		{
			name:    "short data",
			msg:     chain.Message{From: timelockAddress, To: governorAddress, Data: []byte{0x01}},
			wantErr: ErrUnknownSelector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)

			_, err := env.chain.Call(env.ctx, tt.msg)
			require.ErrorContains(t, err, tt.wantErr.Error())
			assert.Equal(t, uint64(10), env.governor.VotingDelay())
		})
	}
}

func Test_Governor_Execute_Reentrancy(t *testing.T) {
	t.Parallel()

	attackerAddress := common.HexToAddress("0x00000000000000000000000000000000000c0001")

	tests := []struct {
		name    string
		relay   func(t *testing.T) []byte
		wantErr error
	}{
		{
			// the relayed call is not the next authorized digest
			name:    "unauthorized call",
			relay:   func(t *testing.T) []byte { return governorAction(t, SetVotingDelaySignature, big64(1)).Calldata },
			wantErr: ErrGovernanceCallMismatch,
		},
		{
			// the relayed call consumes the authorization of the proposal's own call
			name:    "replayed authorized call",
			relay:   func(t *testing.T) []byte { return governorAction(t, SetVotingDelaySignature, big64(5)).Calldata },
			wantErr: ErrGovernanceCallQueueEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			attacker := &reentrantCaller{chain: env.chain, to: governorAddress, data: tt.relay(t)}
			require.NoError(t, env.chain.Deploy(attackerAddress, attacker))

			actions := []types.Action{
				types.NewAction(attackerAddress, nil, []byte{0xca, 0xfe}, ""),
				governorAction(t, SetVotingDelaySignature, big64(5)),
			}
			id := env.propose(t, actions...)
			env.pass(t, id)
			eta := env.queue(t, id)
			env.mineTo(t, eta)

			logs := len(env.chain.Logs())
			err := env.execute(id)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, attacker.calls)

			// nothing happened
			assert.Equal(t, uint64(10), env.governor.VotingDelay())
			assert.Equal(t, uint64(0), env.governor.Settings().Version)
			assert.Equal(t, 0, env.governor.calls.Len())
			assert.Len(t, env.chain.Logs(), logs)

			state, err := env.governor.State(id)
			require.NoError(t, err)
			assert.Equal(t, types.ProposalStateQueued, state)

			p, err := env.governor.Proposal(id)
			require.NoError(t, err)
			for _, tx := range timelockTransactions(&proposalRecord{Proposal: p}, eta) {
				txHash, err := env.timelock.HashTransaction(tx)
				require.NoError(t, err)
				assert.True(t, env.timelock.IsQueued(txHash))
			}
		})
	}
}

func Test_Governor_Execute_AuthorizesInOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	first := governorAction(t, SetVotingDelaySignature, big64(5))
	second := governorAction(t, SetVotingDelaySignature, big64(7))

	id := env.propose(t, first, second)
	env.pass(t, id)
	eta := env.queue(t, id)
	env.mineTo(t, eta)

	// the executor dispatches in proposal order, so each pop sees its own digest
	require.NoError(t, env.execute(id))
	assert.Equal(t, uint64(7), env.governor.VotingDelay())
	assert.Equal(t, []VotingDelaySet{
		{OldVotingDelay: 10, NewVotingDelay: 5},
		{OldVotingDelay: 5, NewVotingDelay: 7},
	}, eventsOf[VotingDelaySet](env.chain))

	// digests match the calldata hashes
	var q CallQueue
	q.Push(crypto.Keccak256Hash(first.Calldata))
	require.ErrorIs(t, q.Pop(crypto.Keccak256Hash(second.Calldata)), ErrGovernanceCallMismatch)
}
