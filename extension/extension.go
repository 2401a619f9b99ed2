// Package extension computes how far a vote pushes out the voting deadline of a proposal.
//
// Once a proposal reaches quorum, a vote close to the deadline extends it so that other voters
// can react. The extension starts from a base amount that decays exponentially once the original
// deadline has passed, and is scaled by how large the vote is relative to the current margin.
// The cumulative extension of a proposal never exceeds MaxDeadlineExtension. All arithmetic
// truncates, so every replay of the same votes computes the same deadline.
package extension

import (
	"github.com/holiman/uint256"
)

const (
	// FactorScale is the fixed point scale of the weight factor.
	FactorScale = 1000
	// FactorCap caps the weight factor at 1.25.
	FactorCap = 1250
)

// State is the extension bookkeeping of one proposal.
type State struct {
	OriginalDeadline uint64 `json:"originalDeadline"`
	ExtendedBy       uint64 `json:"extendedBy"`
	QuorumReached    bool   `json:"quorumReached"`
}

// Deadline returns OriginalDeadline + ExtendedBy.
func (s State) Deadline() uint64 {
	return s.OriginalDeadline + s.ExtendedBy
}

// Vote is a cast vote as seen by the engine, with the tallies after it was counted.
type Vote struct {
	ProposalID      uint64
	Now             uint64
	CurrentDeadline uint64
	Weight          *uint256.Int
	For             *uint256.Int
	Against         *uint256.Int
}

// Engine holds the parameters and the per proposal state.
type Engine struct {
	params Params
	states map[uint64]*State
}

// New creates an engine with validated params.
func New(params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		params: params,
		states: make(map[uint64]*State),
	}, nil
}

// Params returns the current parameters.
func (e *Engine) Params() Params {
	return e.params
}

// State returns the extension state of a proposal, if a qualifying vote created it.
func (e *Engine) State(proposalID uint64) (State, bool) {
	s, ok := e.states[proposalID]
	if !ok {
		return State{}, false
	}

	return *s, true
}

// Deadline returns the extended deadline of a proposal, or unextended if it never extended.
func (e *Engine) Deadline(proposalID uint64, unextended uint64) uint64 {
	if s, ok := e.states[proposalID]; ok {
		return s.Deadline()
	}

	return unextended
}

// OnVote applies a vote and reports whether it extended the deadline, returning the new state.
// quorumReached is only consulted until it first returns true.
func (e *Engine) OnVote(v Vote, quorumReached func() bool) (State, bool) {
	p := e.params
	if p.MaxDeadlineExtension == 0 || v.Weight == nil || v.Weight.IsZero() {
		return State{}, false
	}

	s, ok := e.states[v.ProposalID]
	if ok && s.ExtendedBy >= p.MaxDeadlineExtension {
		return *s, false
	}
	if !ok {
		if !quorumReached() {
			return State{}, false
		}
		s = &State{OriginalDeadline: v.CurrentDeadline, QuorumReached: true}
		e.states[v.ProposalID] = s
	}

	decayed := DecayedExtension(p.BaseDeadlineExtension, p.PercentDecay, p.DecayPeriod, s.OriginalDeadline, v.Now)
	var distance uint64
	if v.CurrentDeadline > v.Now {
		distance = v.CurrentDeadline - v.Now
	}
	if decayed < distance {
		return *s, false
	}

	// The weight factor may shrink the extension but never push the deadline past now + decayed.
	extendAmount := decayed - distance
	extension := min(ScaleExtension(extendAmount, WeightFactor(v.Weight, v.For, v.Against)), extendAmount)
	if extension == 0 {
		return *s, false
	}

	s.ExtendedBy += min(extension, p.MaxDeadlineExtension-s.ExtendedBy)

	return *s, true
}

// DecayedExtension returns base while now <= originalDeadline, and afterwards base decayed by
// percentDecay once per whole decayPeriod elapsed, truncating after every period.
func DecayedExtension(base, percentDecay, decayPeriod, originalDeadline, now uint64) uint64 {
	if now <= originalDeadline || percentDecay == 0 {
		return base
	}
	if decayPeriod == 0 {
		return 0
	}

	periods := (now - originalDeadline) / decayPeriod
	e := uint256.NewInt(base)
	keep := uint256.NewInt(PercentScale - min(percentDecay, PercentScale))
	scale := uint256.NewInt(PercentScale)
	for i := uint64(0); i < periods && !e.IsZero(); i++ {
		e.Mul(e, keep)
		e.Div(e, scale)
	}

	return e.Uint64()
}

// WeightFactor returns min(FactorCap, weight * FactorScale / (|for - against| + 1)).
func WeightFactor(weight, forVotes, againstVotes *uint256.Int) uint64 {
	margin := new(uint256.Int)
	if forVotes.Gt(againstVotes) {
		margin.Sub(forVotes, againstVotes)
	} else {
		margin.Sub(againstVotes, forVotes)
	}
	margin.AddUint64(margin, 1)

	factor, overflow := new(uint256.Int).MulOverflow(weight, uint256.NewInt(FactorScale))
	if overflow {
		return FactorCap
	}
	factor.Div(factor, margin)
	if factor.GtUint64(FactorCap) {
		return FactorCap
	}

	return factor.Uint64()
}

// ScaleExtension returns amount * factor / FactorScale.
func ScaleExtension(amount, factor uint64) uint64 {
	scaled := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(factor))
	scaled.Div(scaled, uint256.NewInt(FactorScale))
	if !scaled.IsUint64() {
		return ^uint64(0)
	}

	return scaled.Uint64()
}

// SetMaxDeadlineExtension sets the cap on the cumulative extension. The cap is checked when an
// extension is written, so proposals already extended beyond a lowered cap keep their deadline.
func (e *Engine) SetMaxDeadlineExtension(v uint64) Params {
	e.params.MaxDeadlineExtension = v
	e.params.Version++

	return e.params
}

// SetBaseDeadlineExtension sets the undecayed extension.
func (e *Engine) SetBaseDeadlineExtension(v uint64) Params {
	e.params.BaseDeadlineExtension = v
	e.params.Version++

	return e.params
}

// SetDecayPeriod sets the decay period, which must be positive.
func (e *Engine) SetDecayPeriod(v uint64) (Params, error) {
	if v == 0 {
		return e.params, ErrInvalidDecayPeriod
	}
	e.params.DecayPeriod = v
	e.params.Version++

	return e.params, nil
}

// SetPercentDecay sets the percent lost per decay period, at most PercentScale.
func (e *Engine) SetPercentDecay(v uint64) (Params, error) {
	if v > PercentScale {
		return e.params, NewPercentDecayOutOfRangeError(v)
	}
	e.params.PercentDecay = v
	e.params.Version++

	return e.params, nil
}

// Snapshot captures the params and every proposal state.
func (e *Engine) Snapshot() func() {
	params := e.params
	states := make(map[uint64]State, len(e.states))
	for id, s := range e.states {
		states[id] = *s
	}

	return func() {
		e.params = params
		e.states = make(map[uint64]*State, len(states))
		for id, s := range states {
			e.states[id] = &s
		}
	}
}
