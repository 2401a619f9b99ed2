// Package treasury records the deposits and withdrawals that governance approves.
//
// The treasury is notified by the executor: registerDeposit when funds arrive and
// processWithdrawal when they leave. It keeps per asset totals and refuses withdrawals beyond
// what was deposited. The zero address stands for the native asset.
package treasury

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/chain"
	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/internal/utils/safecast"
	"github.com/smartcontractkit/governor/sdk"
)

// Signatures understood by Call.
const (
	RegisterDepositSignature   = "registerDeposit(address,uint256)"
	ProcessWithdrawalSignature = "processWithdrawal(address,address,uint256)"
)

// ErrUnknownSelector is returned when the treasury is called with data it does not understand.
var ErrUnknownSelector = errors.New("unknown function selector")

// UnauthorizedError is returned when a notification does not come from the executor.
type UnauthorizedError struct {
	Caller common.Address
}

// NewUnauthorizedError creates a new UnauthorizedError.
func NewUnauthorizedError(caller common.Address) *UnauthorizedError {
	return &UnauthorizedError{Caller: caller}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("caller %s is not the executor", e.Caller)
}

// WithdrawalExceedsBalanceError is returned when a withdrawal exceeds the recorded balance.
type WithdrawalExceedsBalanceError struct {
	Asset     common.Address
	Available *uint256.Int
	Requested *uint256.Int
}

// NewWithdrawalExceedsBalanceError creates a new WithdrawalExceedsBalanceError.
func NewWithdrawalExceedsBalanceError(asset common.Address, available, requested *uint256.Int) *WithdrawalExceedsBalanceError {
	return &WithdrawalExceedsBalanceError{Asset: asset, Available: available, Requested: requested}
}

func (e *WithdrawalExceedsBalanceError) Error() string {
	return fmt.Sprintf("withdrawal of %s %s exceeds recorded balance %s", e.Requested.Dec(), e.Asset, e.Available.Dec())
}

type DepositRegistered struct {
	Asset  common.Address `json:"asset"`
	Amount *uint256.Int   `json:"amount"`
}

func (DepositRegistered) EventName() string { return "DepositRegistered" }

type WithdrawalProcessed struct {
	Asset     common.Address `json:"asset"`
	Recipient common.Address `json:"recipient"`
	Amount    *uint256.Int   `json:"amount"`
}

func (WithdrawalProcessed) EventName() string { return "WithdrawalProcessed" }

var (
	_ chain.Contract    = (*Treasury)(nil)
	_ chain.Snapshotter = (*Treasury)(nil)
)

// Treasury keeps deposit and withdrawal totals per asset.
type Treasury struct {
	chain    *chain.Chain
	address  common.Address
	executor common.Address

	deposits    map[common.Address]*uint256.Int
	withdrawals map[common.Address]*uint256.Int
}

// New creates a treasury at address that accepts notifications from executor.
func New(ch *chain.Chain, address, executor common.Address) *Treasury {
	return &Treasury{
		chain:       ch,
		address:     address,
		executor:    executor,
		deposits:    make(map[common.Address]*uint256.Int),
		withdrawals: make(map[common.Address]*uint256.Int),
	}
}

// Deploy registers the treasury on its chain.
func (t *Treasury) Deploy() error {
	return t.chain.Deploy(t.address, t)
}

func (t *Treasury) Address() common.Address { return t.address }

// Deposits returns the total deposited of asset.
func (t *Treasury) Deposits(asset common.Address) *uint256.Int {
	return valueOf(t.deposits, asset)
}

// Withdrawals returns the total withdrawn of asset.
func (t *Treasury) Withdrawals(asset common.Address) *uint256.Int {
	return valueOf(t.withdrawals, asset)
}

// Balance returns deposits minus withdrawals of asset.
func (t *Treasury) Balance(asset common.Address) *uint256.Int {
	b := t.Deposits(asset)
	return b.Sub(b, t.Withdrawals(asset))
}

func valueOf(m map[common.Address]*uint256.Int, asset common.Address) *uint256.Int {
	if v, ok := m[asset]; ok {
		return v.Clone()
	}

	return new(uint256.Int)
}

// Call handles the executor notifications.
func (t *Treasury) Call(ctx context.Context, msg chain.Message) ([]byte, error) {
	switch {
	case abiUtils.HasSelector(RegisterDepositSignature, msg.Data):
		if msg.From != t.executor {
			return nil, NewUnauthorizedError(msg.From)
		}
		args, err := abiUtils.DecodeCall(RegisterDepositSignature, msg.Data)
		if err != nil {
			return nil, err
		}
		amount, err := safecast.BigToUint256(args[1].(*big.Int))
		if err != nil {
			return nil, err
		}

		return nil, t.registerDeposit(ctx, args[0].(common.Address), amount)
	case abiUtils.HasSelector(ProcessWithdrawalSignature, msg.Data):
		if msg.From != t.executor {
			return nil, NewUnauthorizedError(msg.From)
		}
		args, err := abiUtils.DecodeCall(ProcessWithdrawalSignature, msg.Data)
		if err != nil {
			return nil, err
		}
		amount, err := safecast.BigToUint256(args[2].(*big.Int))
		if err != nil {
			return nil, err
		}

		return nil, t.processWithdrawal(ctx, args[0].(common.Address), args[1].(common.Address), amount)
	default:
		return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, msg.Data[:min(len(msg.Data), abiUtils.SelectorLength)])
	}
}

func (t *Treasury) registerDeposit(ctx context.Context, asset common.Address, amount *uint256.Int) error {
	total := t.Deposits(asset)
	if _, overflow := total.AddOverflow(total, amount); overflow {
		return fmt.Errorf("deposit total of %s overflows", asset)
	}
	t.deposits[asset] = total

	t.chain.Emit(t.address, DepositRegistered{Asset: asset, Amount: amount.Clone()})
	sdk.LoggerFrom(ctx).Debugf("treasury %s: deposit of %s %s", t.address, amount.Dec(), asset)

	return nil
}

func (t *Treasury) processWithdrawal(ctx context.Context, asset, recipient common.Address, amount *uint256.Int) error {
	if available := t.Balance(asset); available.Lt(amount) {
		return NewWithdrawalExceedsBalanceError(asset, available, amount.Clone())
	}

	total := t.Withdrawals(asset)
	t.withdrawals[asset] = total.Add(total, amount)

	t.chain.Emit(t.address, WithdrawalProcessed{Asset: asset, Recipient: recipient, Amount: amount.Clone()})
	sdk.LoggerFrom(ctx).Debugf("treasury %s: withdrawal of %s %s to %s", t.address, amount.Dec(), asset, recipient)

	return nil
}

// Snapshot implements chain.Snapshotter.
func (t *Treasury) Snapshot() func() {
	deposits := cloneTotals(t.deposits)
	withdrawals := cloneTotals(t.withdrawals)

	return func() {
		t.deposits = deposits
		t.withdrawals = withdrawals
	}
}

func cloneTotals(m map[common.Address]*uint256.Int) map[common.Address]*uint256.Int {
	c := make(map[common.Address]*uint256.Int, len(m))
	for k, v := range m {
		c[k] = v.Clone()
	}

	return c
}
