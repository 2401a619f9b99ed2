// Package chain is the sequential execution environment the governance contracts run in.
//
// A Chain owns the block clock, native value balances and the contract registry. Every state
// change happens inside Atomic: the outermost call is one transaction, serialized against every
// other transaction, and each nested call is a sub-call whose effects are rolled back on error
// while the enclosing transaction continues.
package chain

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/sdk"
)

// Message is a call from one account into another.
type Message struct {
	From  common.Address
	To    common.Address
	Value *uint256.Int
	Data  []byte
}

// Contract is code deployed at an address. A returned error reverts every effect of the call.
type Contract interface {
	Call(ctx context.Context, msg Message) ([]byte, error)
}

// Snapshotter is state that participates in rollback. Snapshot returns a function that restores
// the state as it was when Snapshot was called.
type Snapshotter interface {
	Snapshot() func()
}

// Committer is tracked state that keeps undo records. Commit is called once the outermost
// transaction succeeds, after which nothing can roll back to an earlier snapshot.
type Committer interface {
	Commit()
}

// Log is an event emitted by the contract at Address in block Block.
type Log struct {
	Block   uint64         `json:"block"`
	Address common.Address `json:"address"`
	Event   sdk.Event      `json:"event"`
}

// Sink receives the logs of every committed transaction, in order.
type Sink interface {
	Consume(logs []Log)
}

type txKey struct{}

var (
	_ sdk.Emitter = (*Chain)(nil)
	_ sdk.Clock   = (*Clock)(nil)
)

// Chain is a single authoritative ledger of contracts and balances.
type Chain struct {
	clock *Clock

	// mu serializes transactions.
	mu sync.Mutex

	contracts map[common.Address]Contract
	balances  map[common.Address]*uint256.Int
	tracked   []Snapshotter

	journal []Log
	logs    []Log
	sinks   []Sink
}

// New creates an empty chain on clock.
func New(clock *Clock) *Chain {
	return &Chain{
		clock:     clock,
		contracts: make(map[common.Address]Contract),
		balances:  make(map[common.Address]*uint256.Int),
	}
}

// Clock returns the chain clock.
func (c *Chain) Clock() *Clock {
	return c.clock
}

// Deploy registers contract at address. Contracts that are Snapshotters are tracked.
func (c *Chain) Deploy(address common.Address, contract Contract) error {
	if address == (common.Address{}) {
		return ErrZeroAddress
	}
	if _, ok := c.contracts[address]; ok {
		return NewAddressInUseError(address)
	}

	c.contracts[address] = contract
	if s, ok := contract.(Snapshotter); ok {
		c.Track(s)
	}

	return nil
}

// Track adds state that is not a contract, such as a voting power ledger, to rollback.
func (c *Chain) Track(s Snapshotter) {
	c.tracked = append(c.tracked, s)
}

// Contract returns the contract deployed at address.
func (c *Chain) Contract(address common.Address) (Contract, bool) {
	contract, ok := c.contracts[address]
	return contract, ok
}

// Subscribe registers a sink for committed logs.
func (c *Chain) Subscribe(sink Sink) {
	c.sinks = append(c.sinks, sink)
}

// Fund credits amount to account out of thin air.
func (c *Chain) Fund(account common.Address, amount *uint256.Int) {
	balance := c.BalanceOf(account)
	c.balances[account] = balance.Add(balance, amount)
}

// BalanceOf returns the native balance of account.
func (c *Chain) BalanceOf(account common.Address) *uint256.Int {
	if b, ok := c.balances[account]; ok {
		return b.Clone()
	}

	return new(uint256.Int)
}

// InTransaction reports whether ctx belongs to a running transaction.
func InTransaction(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// Atomic runs fn so that either all of its effects persist or none do. Called outside a
// transaction it starts one, waiting for any running transaction to finish, and delivers the
// emitted logs to the sinks once fn succeeds.
func (c *Chain) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		restore := c.snapshot()
		if err := fn(ctx); err != nil {
			restore()
			return err
		}

		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = context.WithValue(ctx, txKey{}, struct{}{})
	restore := c.snapshot()
	if err := fn(ctx); err != nil {
		restore()
		sdk.LoggerFrom(ctx).Debugf("transaction reverted at block %d: %v", c.clock.Now(), err)

		return err
	}

	for _, s := range c.tracked {
		if committer, ok := s.(Committer); ok {
			committer.Commit()
		}
	}

	committed := c.journal
	c.journal = nil
	c.logs = append(c.logs, committed...)
	for _, sink := range c.sinks {
		sink.Consume(committed)
	}

	return nil
}

// Call sends msg, moving its value and running the code at msg.To. Calls to accounts without
// code only move value.
func (c *Chain) Call(ctx context.Context, msg Message) ([]byte, error) {
	var ret []byte
	err := c.Atomic(ctx, func(ctx context.Context) error {
		if err := c.transfer(msg.From, msg.To, msg.Value); err != nil {
			return err
		}

		contract, ok := c.contracts[msg.To]
		if !ok {
			return nil
		}

		var err error
		ret, err = contract.Call(ctx, msg)

		return err
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// Emit journals event for the current transaction.
func (c *Chain) Emit(source common.Address, event sdk.Event) {
	c.journal = append(c.journal, Log{Block: c.clock.Now(), Address: source, Event: event})
}

// Logs returns the logs of every committed transaction.
func (c *Chain) Logs() []Log {
	logs := make([]Log, len(c.logs))
	copy(logs, c.logs)

	return logs
}

func (c *Chain) transfer(from, to common.Address, value *uint256.Int) error {
	if value == nil || value.IsZero() {
		return nil
	}

	balance := c.BalanceOf(from)
	if balance.Lt(value) {
		return NewInsufficientBalanceError(from, balance, value)
	}

	c.balances[from] = balance.Sub(balance, value)
	c.Fund(to, value)

	return nil
}

func (c *Chain) snapshot() func() {
	balances := make(map[common.Address]*uint256.Int, len(c.balances))
	for a, b := range c.balances {
		balances[a] = b.Clone()
	}
	journal := len(c.journal)
	restores := make([]func(), len(c.tracked))
	for i, s := range c.tracked {
		restores[i] = s.Snapshot()
	}

	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		c.balances = balances
		c.journal = c.journal[:journal]
	}
}
