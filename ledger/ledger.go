// Package ledger keeps the checkpointed history of voting power.
//
// Every balance change writes a checkpoint at the current block for the account and for the
// aggregate total supply. History is append-only, so the voting power of an account at any past
// block can be read back without it ever having been rewritten.
package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/sdk"
)

// ClockMode describes the clock in the ERC-6372 format.
const ClockMode = "mode=blocknumber&from=default"

// Op is the arithmetic applied by WriteCheckpoint.
type Op int

const (
	Add Op = iota
	Subtract
)

func (o Op) String() string {
	switch o {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// VotesChanged is emitted whenever the voting power of an account changes.
type VotesChanged struct {
	Account  common.Address `json:"account"`
	Previous *uint256.Int   `json:"previous"`
	New      *uint256.Int   `json:"new"`
}

// EventName implements sdk.Event.
func (VotesChanged) EventName() string { return "VotesChanged" }

var _ sdk.Votes = (*Ledger)(nil)

// Ledger holds one checkpoint trace per account plus the aggregate trace. The latest values of
// all accounts always sum to the latest aggregate value.
type Ledger struct {
	clock     sdk.Clock
	maxSupply *uint256.Int
	accounts  map[common.Address]*Checkpoints
	total     Checkpoints

	emitter sdk.Emitter
	source  common.Address
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithMaxSupply caps the aggregate total. It is clamped to MaxValue.
func WithMaxSupply(maxSupply *uint256.Int) Option {
	return func(l *Ledger) {
		if maxSupply.Cmp(MaxValue) > 0 {
			maxSupply = MaxValue
		}
		l.maxSupply = maxSupply.Clone()
	}
}

// WithEmitter makes the ledger emit VotesChanged events as the contract at source.
func WithEmitter(emitter sdk.Emitter, source common.Address) Option {
	return func(l *Ledger) {
		l.emitter = emitter
		l.source = source
	}
}

// New creates an empty ledger reading time from clock.
func New(clock sdk.Clock, opts ...Option) *Ledger {
	l := &Ledger{
		clock:     clock,
		maxSupply: MaxValue.Clone(),
		accounts:  make(map[common.Address]*Checkpoints),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Clock returns the current timepoint.
func (l *Ledger) Clock() uint64 {
	return l.clock.Now()
}

// ClockMode implements sdk.Votes.
func (l *Ledger) ClockMode() string {
	return ClockMode
}

// MaxSupply returns the cap on the aggregate total.
func (l *Ledger) MaxSupply() *uint256.Int {
	return l.maxSupply.Clone()
}

// WriteCheckpoint applies op(current, delta) to subject at the current timepoint and mirrors the
// change on the aggregate total. Nothing is written if any bound check fails.
func (l *Ledger) WriteCheckpoint(subject common.Address, delta *uint256.Int, op Op) error {
	now := l.clock.Now()

	account := l.accounts[subject]
	if account == nil {
		account = &Checkpoints{}
	}

	balance, total, err := l.apply(account.Latest(), l.total.Latest(), delta, op)
	if err != nil {
		return err
	}

	// Both pushes are validated by apply, so only ordering can fail, and it fails for the
	// account before anything is written.
	if last, ok := account.LatestCheckpoint(); ok && last.Key > now {
		return ErrUnorderedInsertion
	}
	if last, ok := l.total.LatestCheckpoint(); ok && last.Key > now {
		return ErrUnorderedInsertion
	}

	prev, next, err := account.Push(now, balance)
	if err != nil {
		return err
	}
	if _, _, err := l.total.Push(now, total); err != nil {
		return err
	}
	l.accounts[subject] = account

	if l.emitter != nil {
		l.emitter.Emit(l.source, VotesChanged{Account: subject, Previous: prev, New: next})
	}

	return nil
}

func (l *Ledger) apply(balance, total, delta *uint256.Int, op Op) (*uint256.Int, *uint256.Int, error) {
	switch op {
	case Add:
		newTotal, overflow := new(uint256.Int).AddOverflow(total, delta)
		if overflow || newTotal.Cmp(l.maxSupply) > 0 {
			if overflow {
				newTotal = MaxValue.Clone()
			}
			return nil, nil, NewMaxSupplyOverflowError(newTotal, l.maxSupply.Clone())
		}

		return new(uint256.Int).Add(balance, delta), newTotal, nil
	case Subtract:
		if balance.Lt(delta) || total.Lt(delta) {
			return nil, nil, fmt.Errorf("%w: %s - %s", ErrSubtractUnderflow, balance.Dec(), delta.Dec())
		}

		return new(uint256.Int).Sub(balance, delta), new(uint256.Int).Sub(total, delta), nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidOp, op)
	}
}

// MoveVotingPower moves amount from one account to another. The zero address as from mints and
// as to burns.
func (l *Ledger) MoveVotingPower(from, to common.Address, amount *uint256.Int) error {
	if from == to || amount.IsZero() {
		return nil
	}

	restore := l.Snapshot()
	if from != (common.Address{}) {
		if err := l.WriteCheckpoint(from, amount, Subtract); err != nil {
			restore()
			return err
		}
	}
	if to != (common.Address{}) {
		if err := l.WriteCheckpoint(to, amount, Add); err != nil {
			restore()
			return err
		}
	}

	return nil
}

// Latest returns the current voting power of account.
func (l *Ledger) Latest(account common.Address) *uint256.Int {
	if c, ok := l.accounts[account]; ok {
		return c.Latest()
	}

	return new(uint256.Int)
}

// LatestTotal returns the current total supply.
func (l *Ledger) LatestTotal() *uint256.Int {
	return l.total.Latest()
}

// Lookup returns the voting power of account at timepoint, which must be in the past.
func (l *Ledger) Lookup(account common.Address, timepoint uint64) (*uint256.Int, error) {
	if now := l.clock.Now(); timepoint >= now {
		return nil, NewFutureLookupError(timepoint, now)
	}

	c, ok := l.accounts[account]
	if !ok {
		return new(uint256.Int), nil
	}

	return c.UpperLookupRecent(timepoint), nil
}

// LookupTotal returns the total supply at timepoint, which must be in the past.
func (l *Ledger) LookupTotal(timepoint uint64) (*uint256.Int, error) {
	if now := l.clock.Now(); timepoint >= now {
		return nil, NewFutureLookupError(timepoint, now)
	}

	return l.total.UpperLookupRecent(timepoint), nil
}

// CheckpointCount returns the number of checkpoints recorded for account.
func (l *Ledger) CheckpointCount(account common.Address) int {
	if c, ok := l.accounts[account]; ok {
		return c.Len()
	}

	return 0
}

// CheckpointAt returns the checkpoint of account at position pos.
func (l *Ledger) CheckpointAt(account common.Address, pos int) (Checkpoint, error) {
	c, ok := l.accounts[account]
	if !ok || pos < 0 || pos >= c.Len() {
		return Checkpoint{}, fmt.Errorf("checkpoint %d out of range for %s", pos, account)
	}

	return c.At(pos), nil
}

// Accounts returns every account that ever held a checkpoint.
func (l *Ledger) Accounts() []common.Address {
	accounts := make([]common.Address, 0, len(l.accounts))
	for a := range l.accounts {
		accounts = append(accounts, a)
	}

	return accounts
}

// Snapshot captures the ledger so the returned function can undo every write made after it.
func (l *Ledger) Snapshot() func() {
	marks := make(map[common.Address]mark, len(l.accounts))
	for a, c := range l.accounts {
		marks[a] = c.mark()
	}
	total := l.total.mark()

	return func() {
		for a, c := range l.accounts {
			m, ok := marks[a]
			if !ok {
				delete(l.accounts, a)
				continue
			}
			c.reset(m)
		}
		l.total.reset(total)
	}
}
