package governor

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/governor/chain"
	"github.com/smartcontractkit/governor/extension"
	"github.com/smartcontractkit/governor/internal/testutils"
	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/timelock"
	"github.com/smartcontractkit/governor/token"
	"github.com/smartcontractkit/governor/treasury"
	"github.com/smartcontractkit/governor/types"
)

var (
	tokenAddress    = common.HexToAddress("0x00000000000000000000000000000000000a0001")
	timelockAddress = common.HexToAddress("0x00000000000000000000000000000000000a0002")
	governorAddress = common.HexToAddress("0x00000000000000000000000000000000000a0003")
	treasuryAddress = common.HexToAddress("0x00000000000000000000000000000000000a0004")

	deployer = common.HexToAddress("0x00000000000000000000000000000000000b0000")
	alice    = common.HexToAddress("0x00000000000000000000000000000000000b0001")
	bob      = common.HexToAddress("0x00000000000000000000000000000000000b0002")
	carol    = common.HexToAddress("0x00000000000000000000000000000000000b0003")
	dave     = common.HexToAddress("0x00000000000000000000000000000000000b0004")
	outsider = common.HexToAddress("0x00000000000000000000000000000000000b0005")
	guardian = common.HexToAddress("0x00000000000000000000000000000000000b0006")
)

// testGovernorConfig votes for 100 blocks after a 10 block delay with a 4% quorum. Deadline
// extension is off so deadlines stay put unless a test turns it on.
func testGovernorConfig() Config {
	return Config{
		Name:            "Governor",
		ChainSelector:   types.ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector),
		VotingDelay:     10,
		VotingPeriod:    100,
		QuorumNumerator: 4,
		Canceler:        guardian,
		Extension: extension.Params{
			DecayPeriod:  7200,
			PercentDecay: 50,
		},
	}
}

func testTimelockConfig() timelock.Config {
	return timelock.Config{
		Delay:        10,
		GracePeriod:  20,
		MinimumDelay: 1,
		MaximumDelay: 1000,
	}
}

// testEnv is a deployed token, timelock, governor and treasury. Alice, bob, carol and dave hold
// 40, 30, 20 and 10 tokens minted at block 1, and the clock starts at block 2.
type testEnv struct {
	ctx      context.Context
	chain    *chain.Chain
	clock    *chain.Clock
	token    *token.Token
	timelock *timelock.Timelock
	governor *Governor
	treasury *treasury.Treasury
}

type envOption func(*Config)

func withExtension(params extension.Params) envOption {
	return func(c *Config) { c.Extension = params }
}

func withProposalThreshold(threshold uint64) envOption {
	return func(c *Config) { c.ProposalThreshold = uint256.NewInt(threshold) }
}

func withVoting(delay, period uint64) envOption {
	return func(c *Config) {
		c.VotingDelay = delay
		c.VotingPeriod = period
	}
}

func withQuorumNumerator(numerator uint64) envOption {
	return func(c *Config) { c.QuorumNumerator = numerator }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	ctx := testutils.Context(t)
	clock := chain.NewClock(1)
	ch := chain.New(clock)

	tok := token.New(ch, tokenAddress, deployer, "Governance", "GOV")
	require.NoError(t, tok.Deploy())
	for account, amount := range map[common.Address]uint64{alice: 40, bob: 30, carol: 20, dave: 10} {
		require.NoError(t, tok.Mint(ctx, deployer, account, uint256.NewInt(amount)))
	}

	tl, err := timelock.New(ch, timelockAddress, governorAddress, testTimelockConfig())
	require.NoError(t, err)
	require.NoError(t, tl.Deploy())

	config := testGovernorConfig()
	for _, opt := range opts {
		opt(&config)
	}
	gov, err := New(ch, governorAddress, tok.Votes(), tl, config)
	require.NoError(t, err)
	require.NoError(t, gov.Deploy())

	tr := treasury.New(ch, treasuryAddress, timelockAddress)
	require.NoError(t, tr.Deploy())

	clock.Mine(1)

	return &testEnv{
		ctx:      ctx,
		chain:    ch,
		clock:    clock,
		token:    tok,
		timelock: tl,
		governor: gov,
		treasury: tr,
	}
}

// mineTo advances the clock to height.
func (e *testEnv) mineTo(t *testing.T, height uint64) {
	t.Helper()

	require.NoError(t, e.clock.Set(height))
}

func (e *testEnv) propose(t *testing.T, actions ...types.Action) uint64 {
	t.Helper()

	id, err := e.governor.Propose(e.ctx, alice, actions, "proposal")
	require.NoError(t, err)

	return id
}

// pass votes the proposal through with alice's and bob's votes and mines past its deadline.
func (e *testEnv) pass(t *testing.T, id uint64) {
	t.Helper()

	snapshot, err := e.governor.ProposalSnapshot(id)
	require.NoError(t, err)
	e.mineTo(t, snapshot+1)

	_, err = e.governor.CastVote(e.ctx, alice, id, types.VoteFor)
	require.NoError(t, err)
	_, err = e.governor.CastVote(e.ctx, bob, id, types.VoteFor)
	require.NoError(t, err)

	deadline, err := e.governor.ProposalDeadline(id)
	require.NoError(t, err)
	e.mineTo(t, deadline+1)
}

// queue queues a passed proposal and returns its eta.
func (e *testEnv) queue(t *testing.T, id uint64) uint64 {
	t.Helper()

	p, err := e.governor.Proposal(id)
	require.NoError(t, err)
	targets, values, calldatas := types.SplitActions(p.Actions)
	eta, err := e.governor.Queue(e.ctx, id, targets, values, calldatas)
	require.NoError(t, err)

	return eta
}

func (e *testEnv) execute(id uint64) error {
	p, err := e.governor.Proposal(id)
	if err != nil {
		return err
	}
	targets, values, calldatas := types.SplitActions(p.Actions)

	return e.governor.Execute(e.ctx, id, targets, values, calldatas)
}

// callAction builds an action calling signature on target.
func callAction(t *testing.T, target common.Address, signature string, args ...any) types.Action {
	t.Helper()

	data, err := abiUtils.EncodeCall(signature, args...)
	require.NoError(t, err)

	return types.NewAction(target, nil, data, signature)
}

func governorAction(t *testing.T, signature string, args ...any) types.Action {
	t.Helper()

	return callAction(t, governorAddress, signature, args...)
}

func big64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// reentrantCaller relays a fixed call back out under the address of whoever called it.
type reentrantCaller struct {
	chain *chain.Chain
	to    common.Address
	data  []byte
	calls int
}

func (r *reentrantCaller) Call(ctx context.Context, msg chain.Message) ([]byte, error) {
	r.calls++

	return r.chain.Call(ctx, chain.Message{From: msg.From, To: r.to, Data: r.data})
}

// eventsOf returns the committed events of type T in emission order.
func eventsOf[T sdk.Event](ch *chain.Chain) []T {
	var events []T
	for _, log := range ch.Logs() {
		if event, ok := log.Event.(T); ok {
			events = append(events, event)
		}
	}

	return events
}
