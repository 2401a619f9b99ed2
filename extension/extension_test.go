package extension

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reached() bool    { return true }
func notReached() bool { return false }

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    Params
		wantErr error
	}{
		{name: "default", give: DefaultParams()},
		{name: "zero max is allowed", give: Params{DecayPeriod: 1}},
		{name: "full decay", give: Params{DecayPeriod: 1, PercentDecay: 100}},
		{name: "zero decay period", give: Params{PercentDecay: 10}, wantErr: ErrInvalidDecayPeriod},
		{name: "percent above 100", give: Params{DecayPeriod: 1, PercentDecay: 101}, wantErr: NewPercentDecayOutOfRangeError(101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.give.Validate()
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDecayedExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		base         uint64
		percentDecay uint64
		elapsed      uint64
		want         uint64
	}{
		{name: "before deadline", base: 7200, percentDecay: 50, elapsed: 0, want: 7200},
		{name: "within first period", base: 7200, percentDecay: 50, elapsed: 7199, want: 7200},
		{name: "one period", base: 7200, percentDecay: 50, elapsed: 7200, want: 3600},
		{name: "two periods", base: 7200, percentDecay: 50, elapsed: 14400, want: 1800},
		{name: "truncates every step", base: 7, percentDecay: 50, elapsed: 2 * 7200, want: 1},
		{name: "no decay", base: 7200, percentDecay: 0, elapsed: 1 << 40, want: 7200},
		{name: "full decay", base: 7200, percentDecay: 100, elapsed: 7200, want: 0},
		{name: "saturates to zero", base: 7200, percentDecay: 50, elapsed: 7200 * 1_000_000, want: 0},
		{name: "slow decay saturates", base: ^uint64(0), percentDecay: 1, elapsed: ^uint64(0) - 1000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			const deadline = 1000
			got := DecayedExtension(tt.base, tt.percentDecay, 7200, deadline, deadline+tt.elapsed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeightFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weight  *uint256.Int
		for_    *uint256.Int
		against *uint256.Int
		want    uint64
	}{
		{name: "small vote, wide margin", weight: u(1), for_: u(1000), against: u(1), want: 1},
		{name: "vote equal to margin", weight: u(99), for_: u(100), against: u(1), want: 990},
		{name: "against leading", weight: u(10), for_: u(0), against: u(19), want: 500},
		{name: "capped", weight: u(51), for_: u(51), against: u(50), want: FactorCap},
		{name: "tie", weight: u(1), for_: u(5), against: u(5), want: 1000},
		{name: "huge weight", weight: new(uint256.Int).SetAllOne(), for_: u(0), against: u(0), want: FactorCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, WeightFactor(tt.weight, tt.for_, tt.against))
		})
	}
}

// TestEngine_OnVoteAtOriginalDeadline casts a vote exactly at the original deadline whose weight
// exceeds the margin, so the full base extension applies.
func TestEngine_OnVoteAtOriginalDeadline(t *testing.T) {
	t.Parallel()

	e, err := New(Params{
		MaxDeadlineExtension:  7200,
		BaseDeadlineExtension: 7200,
		DecayPeriod:           7200,
		PercentDecay:          50,
	})
	require.NoError(t, err)

	state, extended := e.OnVote(Vote{
		ProposalID:      1,
		Now:             1000,
		CurrentDeadline: 1000,
		Weight:          u(51),
		For:             u(51),
		Against:         u(50),
	}, reached)
	require.True(t, extended)
	assert.Equal(t, State{OriginalDeadline: 1000, ExtendedBy: 7200, QuorumReached: true}, state)
	assert.Equal(t, uint64(8200), e.Deadline(1, 1000))

	// the cap is reached, later votes do nothing
	_, extended = e.OnVote(Vote{ProposalID: 1, Now: 8200, CurrentDeadline: 8200, Weight: u(100), For: u(151), Against: u(50)}, reached)
	assert.False(t, extended)
	assert.Equal(t, uint64(8200), e.Deadline(1, 1000))
}

// TestEngine_OnVoteFactorBoundedByExtendAmount runs the same vote with the default cap, which
// leaves room above the base extension. The 1.25 factor must not stretch the deadline past now + base.
func TestEngine_OnVoteFactorBoundedByExtendAmount(t *testing.T) {
	t.Parallel()

	e, err := New(DefaultParams())
	require.NoError(t, err)

	state, extended := e.OnVote(Vote{
		ProposalID:      1,
		Now:             1000,
		CurrentDeadline: 1000,
		Weight:          u(51),
		For:             u(51),
		Against:         u(50),
	}, reached)
	require.True(t, extended)
	assert.Equal(t, State{OriginalDeadline: 1000, ExtendedBy: 7200, QuorumReached: true}, state)
	assert.Equal(t, uint64(8200), e.Deadline(1, 1000))

	// before the deadline only the missing distance to now + base is added
	e, err = New(DefaultParams())
	require.NoError(t, err)
	state, extended = e.OnVote(Vote{
		ProposalID:      2,
		Now:             900,
		CurrentDeadline: 1000,
		Weight:          u(51),
		For:             u(51),
		Against:         u(50),
	}, reached)
	require.True(t, extended)
	assert.Equal(t, uint64(7100), state.ExtendedBy)
	assert.Equal(t, uint64(900+7200), e.Deadline(2, 1000))
}

func TestEngine_OnVote(t *testing.T) {
	t.Parallel()

	params := Params{MaxDeadlineExtension: 1000, BaseDeadlineExtension: 100, DecayPeriod: 50, PercentDecay: 50}

	tests := []struct {
		name       string
		params     Params
		vote       Vote
		quorum     func() bool
		wantOK     bool
		wantState  State
		wantStored bool
	}{
		{
			name:   "disabled",
			params: Params{BaseDeadlineExtension: 100, DecayPeriod: 50},
			vote:   Vote{ProposalID: 1, Now: 950, CurrentDeadline: 1000, Weight: u(10), For: u(10), Against: u(0)},
			quorum: reached,
		},
		{
			name:   "zero weight",
			params: params,
			vote:   Vote{ProposalID: 1, Now: 950, CurrentDeadline: 1000, Weight: u(0), For: u(10), Against: u(0)},
			quorum: reached,
		},
		{
			name:   "no quorum",
			params: params,
			vote:   Vote{ProposalID: 1, Now: 950, CurrentDeadline: 1000, Weight: u(10), For: u(10), Against: u(0)},
			quorum: notReached,
		},
		{
			name:       "deadline still far",
			params:     params,
			vote:       Vote{ProposalID: 1, Now: 800, CurrentDeadline: 1000, Weight: u(10), For: u(10), Against: u(0)},
			quorum:     reached,
			wantState:  State{OriginalDeadline: 1000, QuorumReached: true},
			wantStored: true,
		},
		{
			name:       "close to deadline, factor 1",
			params:     params,
			vote:       Vote{ProposalID: 1, Now: 950, CurrentDeadline: 1000, Weight: u(10), For: u(10), Against: u(1)},
			quorum:     reached,
			wantOK:     true,
			wantState:  State{OriginalDeadline: 1000, ExtendedBy: 50, QuorumReached: true},
			wantStored: true,
		},
		{
			// 50 * 10 / 1000 truncates to zero
			name:       "close to deadline, small vote",
			params:     params,
			vote:       Vote{ProposalID: 1, Now: 950, CurrentDeadline: 1000, Weight: u(1), For: u(100), Against: u(1)},
			quorum:     reached,
			wantState:  State{OriginalDeadline: 1000, ExtendedBy: 0, QuorumReached: true},
			wantStored: true,
		},
		{
			name:       "cap limits the extension",
			params:     Params{MaxDeadlineExtension: 30, BaseDeadlineExtension: 100, DecayPeriod: 50, PercentDecay: 50},
			vote:       Vote{ProposalID: 1, Now: 1000, CurrentDeadline: 1000, Weight: u(10), For: u(10), Against: u(1)},
			quorum:     reached,
			wantOK:     true,
			wantState:  State{OriginalDeadline: 1000, ExtendedBy: 30, QuorumReached: true},
			wantStored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := New(tt.params)
			require.NoError(t, err)

			state, ok := e.OnVote(tt.vote, tt.quorum)
			assert.Equal(t, tt.wantOK, ok)

			stored, found := e.State(tt.vote.ProposalID)
			assert.Equal(t, tt.wantStored, found)
			if tt.wantStored {
				assert.Equal(t, tt.wantState, stored)
				assert.Equal(t, tt.wantState, state)
			}
		})
	}
}

func TestEngine_QuorumIsCached(t *testing.T) {
	t.Parallel()

	e, err := New(DefaultParams())
	require.NoError(t, err)

	calls := 0
	quorum := func() bool {
		calls++
		return calls > 1
	}
	vote := Vote{ProposalID: 3, Now: 10, CurrentDeadline: 100000, Weight: u(1), For: u(1), Against: u(0)}

	e.OnVote(vote, quorum)
	e.OnVote(vote, quorum)
	e.OnVote(vote, quorum)
	e.OnVote(vote, quorum)
	assert.Equal(t, 2, calls)

	s, ok := e.State(3)
	require.True(t, ok)
	assert.True(t, s.QuorumReached)
	assert.Equal(t, uint64(100000), s.OriginalDeadline)
}

// TestEngine_Cap feeds random votes and checks the cumulative extension never passes the cap.
func TestEngine_Cap(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		params := Params{
			MaxDeadlineExtension:  uint64(rng.Intn(5000)) + 1,
			BaseDeadlineExtension: uint64(rng.Intn(10000)),
			DecayPeriod:           uint64(rng.Intn(500)) + 1,
			PercentDecay:          uint64(rng.Intn(101)),
		}
		e, err := New(params)
		require.NoError(t, err)

		const original = 1000
		deadline := uint64(original)
		now := uint64(900)
		forVotes, against := new(uint256.Int), new(uint256.Int)
		for now <= deadline {
			weight := u(uint64(rng.Intn(1000)))
			if rng.Intn(2) == 0 {
				forVotes.Add(forVotes, weight)
			} else {
				against.Add(against, weight)
			}

			state, _ := e.OnVote(Vote{
				ProposalID: 1, Now: now, CurrentDeadline: deadline, Weight: weight, For: forVotes, Against: against,
			}, reached)
			deadline = e.Deadline(1, original)

			require.LessOrEqual(t, state.ExtendedBy, params.MaxDeadlineExtension)
			require.LessOrEqual(t, deadline, max(now+params.BaseDeadlineExtension, uint64(original)))
			require.LessOrEqual(t, deadline, uint64(original)+params.MaxDeadlineExtension)
			now += uint64(rng.Intn(200)) + 1
		}
	}
}

func TestEngine_Setters(t *testing.T) {
	t.Parallel()

	e, err := New(DefaultParams())
	require.NoError(t, err)

	p := e.SetMaxDeadlineExtension(10)
	assert.Equal(t, uint64(10), p.MaxDeadlineExtension)
	assert.Equal(t, uint64(1), p.Version)

	p = e.SetBaseDeadlineExtension(20)
	assert.Equal(t, uint64(20), p.BaseDeadlineExtension)
	assert.Equal(t, uint64(2), p.Version)

	_, err = e.SetDecayPeriod(0)
	require.ErrorIs(t, err, ErrInvalidDecayPeriod)
	p, err = e.SetDecayPeriod(30)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), p.Version)

	_, err = e.SetPercentDecay(101)
	var outOfRange *PercentDecayOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	p, err = e.SetPercentDecay(100)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), p.Version)
	assert.Equal(t, p, e.Params())
}

func TestEngine_Snapshot(t *testing.T) {
	t.Parallel()

	e, err := New(DefaultParams())
	require.NoError(t, err)
	vote := Vote{ProposalID: 1, Now: 1000, CurrentDeadline: 1000, Weight: u(5), For: u(5), Against: u(0)}
	_, ok := e.OnVote(vote, reached)
	require.True(t, ok)
	before, _ := e.State(1)

	restore := e.Snapshot()
	e.SetMaxDeadlineExtension(1)
	vote.ProposalID = 2
	e.OnVote(vote, reached)
	vote.ProposalID = 1
	vote.CurrentDeadline = before.Deadline()
	vote.Now = before.Deadline()
	e.OnVote(vote, reached)
	restore()

	assert.Equal(t, DefaultParams(), e.Params())
	after, _ := e.State(1)
	assert.Equal(t, before, after)
	_, ok = e.State(2)
	assert.False(t, ok)
}

// TestEngine_LoweredCap checks that the cap bounds extensions when they are written. A proposal
// already extended past a lowered cap keeps its deadline and cannot extend further.
func TestEngine_LoweredCap(t *testing.T) {
	t.Parallel()

	e, err := New(DefaultParams())
	require.NoError(t, err)

	vote := Vote{ProposalID: 1, Now: 1000, CurrentDeadline: 1000, Weight: u(51), For: u(51), Against: u(50)}
	_, extended := e.OnVote(vote, reached)
	require.True(t, extended)
	require.Equal(t, uint64(8200), e.Deadline(1, 1000))

	e.SetMaxDeadlineExtension(100)

	vote.Now, vote.CurrentDeadline = 8200, 8200
	state, extended := e.OnVote(vote, reached)
	assert.False(t, extended)
	assert.Equal(t, uint64(7200), state.ExtendedBy)
	assert.Equal(t, uint64(8200), e.Deadline(1, 1000))

	// new proposals see the lowered cap
	vote.ProposalID = 2
	state, extended = e.OnVote(vote, reached)
	require.True(t, extended)
	assert.Equal(t, uint64(100), state.ExtendedBy)
}
