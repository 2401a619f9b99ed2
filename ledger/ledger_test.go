package ledger

import (
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xa11ce")
	bob   = common.HexToAddress("0xb0b")
	carol = common.HexToAddress("0xca401")
)

func TestLedger_WriteCheckpoint(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: 1}
	l := New(clock, WithMaxSupply(uint256.NewInt(100)))

	require.NoError(t, l.WriteCheckpoint(alice, uint256.NewInt(60), Add))
	require.NoError(t, l.WriteCheckpoint(alice, uint256.NewInt(10), Subtract))
	assert.Equal(t, uint64(50), l.Latest(alice).Uint64())
	assert.Equal(t, uint64(50), l.LatestTotal().Uint64())
	assert.Equal(t, 1, l.CheckpointCount(alice), "same block writes update in place")

	err := l.WriteCheckpoint(bob, uint256.NewInt(51), Add)
	var overflow *MaxSupplyOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, "total supply 101 exceeds max supply 100", err.Error())
	assert.True(t, l.Latest(bob).IsZero())
	assert.Equal(t, uint64(50), l.LatestTotal().Uint64())

	err = l.WriteCheckpoint(bob, uint256.NewInt(1), Subtract)
	require.ErrorIs(t, err, ErrSubtractUnderflow)

	err = l.WriteCheckpoint(bob, uint256.NewInt(1), Op(7))
	require.ErrorIs(t, err, ErrInvalidOp)
}

func TestLedger_FutureLookup(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: 10}
	l := New(clock)
	require.NoError(t, l.MoveVotingPower(common.Address{}, alice, uint256.NewInt(5)))

	for _, tp := range []uint64{10, 11, 1000} {
		_, err := l.Lookup(alice, tp)
		var future *FutureLookupError
		require.ErrorAs(t, err, &future)
		assert.Equal(t, tp, future.Timepoint)
		assert.Equal(t, uint64(10), future.Clock)

		_, err = l.LookupTotal(tp)
		require.ErrorAs(t, err, &future)
	}

	clock.now = 11
	got, err := l.Lookup(alice, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got.Uint64())

	got, err = l.Lookup(alice, 9)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLedger_MoveVotingPower(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: 1}
	emitter := &fakeEmitter{}
	l := New(clock, WithEmitter(emitter, common.HexToAddress("0x70")))

	require.NoError(t, l.MoveVotingPower(common.Address{}, alice, uint256.NewInt(100)))
	clock.now = 2
	require.NoError(t, l.MoveVotingPower(alice, bob, uint256.NewInt(30)))
	clock.now = 3
	require.NoError(t, l.MoveVotingPower(bob, common.Address{}, uint256.NewInt(10)))

	assert.Equal(t, uint64(70), l.Latest(alice).Uint64())
	assert.Equal(t, uint64(20), l.Latest(bob).Uint64())
	assert.Equal(t, uint64(90), l.LatestTotal().Uint64())

	clock.now = 4
	total1, err := l.LookupTotal(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), total1.Uint64())

	// failed transfers leave no trace
	err = l.MoveVotingPower(bob, alice, uint256.NewInt(21))
	require.ErrorIs(t, err, ErrSubtractUnderflow)
	assert.Equal(t, uint64(20), l.Latest(bob).Uint64())
	assert.Equal(t, uint64(90), l.LatestTotal().Uint64())

	require.Len(t, emitter.events, 4)
	assert.Equal(t, VotesChanged{Account: alice, Previous: uint256.NewInt(0), New: uint256.NewInt(100)}, emitter.events[0])
	assert.Equal(t, "VotesChanged", emitter.events[0].EventName())

	// no-ops
	require.NoError(t, l.MoveVotingPower(alice, alice, uint256.NewInt(1)))
	require.NoError(t, l.MoveVotingPower(alice, bob, new(uint256.Int)))
	assert.Len(t, emitter.events, 4)
}

func TestLedger_Snapshot(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: 1}
	l := New(clock)
	require.NoError(t, l.MoveVotingPower(common.Address{}, alice, uint256.NewInt(10)))

	restore := l.Snapshot()
	require.NoError(t, l.MoveVotingPower(common.Address{}, alice, uint256.NewInt(5)))
	clock.now = 2
	require.NoError(t, l.MoveVotingPower(alice, carol, uint256.NewInt(7)))
	restore()

	assert.Equal(t, uint64(10), l.Latest(alice).Uint64())
	assert.Equal(t, uint64(10), l.LatestTotal().Uint64())
	assert.Equal(t, 1, l.CheckpointCount(alice))
	assert.Equal(t, 0, l.CheckpointCount(carol))
	assert.NotContains(t, l.Accounts(), carol)
}

// TestLedger_Properties drives a random sequence of mints, burns and transfers and checks that
// traces stay strictly ordered, that history matches a replayed model and that account values
// always sum to the total.
func TestLedger_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	accounts := []common.Address{alice, bob, carol}
	clock := &fakeClock{now: 1}
	l := New(clock)

	// history[block][account] is the balance at the end of block
	history := map[uint64]map[common.Address]uint64{}
	balances := map[common.Address]uint64{}
	var total uint64

	for block := uint64(1); block <= 200; block++ {
		clock.now = block
		moves := rng.Intn(4)
		for i := 0; i < moves; i++ {
			from := accounts[rng.Intn(len(accounts))]
			to := accounts[rng.Intn(len(accounts))]
			switch rng.Intn(3) {
			case 0:
				amount := uint64(rng.Intn(50))
				require.NoError(t, l.MoveVotingPower(common.Address{}, to, uint256.NewInt(amount)))
				balances[to] += amount
				total += amount
			case 1:
				amount := uint64(rng.Intn(int(balances[from]) + 1))
				require.NoError(t, l.MoveVotingPower(from, common.Address{}, uint256.NewInt(amount)))
				balances[from] -= amount
				total -= amount
			default:
				amount := uint64(rng.Intn(int(balances[from]) + 1))
				require.NoError(t, l.MoveVotingPower(from, to, uint256.NewInt(amount)))
				if from != to {
					balances[from] -= amount
					balances[to] += amount
				}
			}
		}

		snapshot := make(map[common.Address]uint64, len(balances))
		var sum uint64
		for a, b := range balances {
			snapshot[a] = b
			sum += b
		}
		history[block] = snapshot

		require.Equal(t, total, sum)
		require.Equal(t, total, l.LatestTotal().Uint64(), "conservation at block %d", block)
	}

	clock.now = 201
	for _, a := range accounts {
		for pos := 1; pos < l.CheckpointCount(a); pos++ {
			prev, err := l.CheckpointAt(a, pos-1)
			require.NoError(t, err)
			cur, err := l.CheckpointAt(a, pos)
			require.NoError(t, err)
			require.Less(t, prev.Key, cur.Key, "monotonic keys for %s", a)
		}

		for block := uint64(0); block <= 200; block++ {
			got, err := l.Lookup(a, block)
			require.NoError(t, err)
			require.Equal(t, history[block][a], got.Uint64(), "lookup %s at %d", a, block)
		}
	}

	for block := uint64(1); block <= 200; block++ {
		var sum uint64
		for _, a := range accounts {
			v, err := l.Lookup(a, block)
			require.NoError(t, err)
			sum += v.Uint64()
		}
		got, err := l.LookupTotal(block)
		require.NoError(t, err)
		require.Equal(t, sum, got.Uint64(), "historical conservation at %d", block)
	}

	_, err := l.CheckpointAt(alice, -1)
	require.Error(t, err)
}
