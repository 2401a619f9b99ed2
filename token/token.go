// Package token is an ERC20 style token whose balances are the voting power of the governor.
//
// Every mint, burn and transfer moves voting power in the token's ledger at the current block,
// so the ledger history is the balance history.
package token

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
	"github.com/smartcontractkit/governor/ledger"
	"github.com/smartcontractkit/governor/sdk"
)

// Signatures understood by Call.
const (
	MintSignature     = "mint(address,uint256)"
	BurnSignature     = "burn(uint256)"
	TransferSignature = "transfer(address,uint256)"
)

var (
	// ErrTransferToZero is returned when tokens are sent to the zero address.
	ErrTransferToZero = errors.New("transfer to the zero address")

	// ErrUnknownSelector is returned when the token is called with data it does not understand.
	ErrUnknownSelector = errors.New("unknown function selector")
)

// NotOwnerError is returned when a caller other than the owner mints.
type NotOwnerError struct {
	Caller common.Address
	Owner  common.Address
}

// NewNotOwnerError creates a new NotOwnerError.
func NewNotOwnerError(caller, owner common.Address) *NotOwnerError {
	return &NotOwnerError{Caller: caller, Owner: owner}
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("caller %s is not the owner %s", e.Caller, e.Owner)
}

// InsufficientBalanceError is returned when an account moves more tokens than it holds.
type InsufficientBalanceError struct {
	Account common.Address
	Balance *uint256.Int
	Needed  *uint256.Int
}

// NewInsufficientBalanceError creates a new InsufficientBalanceError.
func NewInsufficientBalanceError(account common.Address, balance, needed *uint256.Int) *InsufficientBalanceError {
	return &InsufficientBalanceError{Account: account, Balance: balance, Needed: needed}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient token balance for %s: have %s, need %s", e.Account, e.Balance.Dec(), e.Needed.Dec())
}

// Transfer is emitted for every balance change. Mints come from and burns go to the zero address.
type Transfer struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Value *uint256.Int   `json:"value"`
}

func (Transfer) EventName() string { return "Transfer" }

// OwnershipTransferred is emitted when the minting right moves.
type OwnershipTransferred struct {
	PreviousOwner common.Address `json:"previousOwner"`
	NewOwner      common.Address `json:"newOwner"`
}

func (OwnershipTransferred) EventName() string { return "OwnershipTransferred" }

var (
	_ chain.Contract    = (*Token)(nil)
	_ chain.Snapshotter = (*Token)(nil)
)

// Token is a mintable token deployed on a chain.Chain.
type Token struct {
	chain   *chain.Chain
	address common.Address
	owner   common.Address
	name    string
	symbol  string
	votes   *ledger.Ledger
}

// New creates a token at address whose owner may mint. opts configure its ledger.
func New(ch *chain.Chain, address, owner common.Address, name, symbol string, opts ...ledger.Option) *Token {
	opts = append([]ledger.Option{ledger.WithEmitter(ch, address)}, opts...)

	return &Token{
		chain:   ch,
		address: address,
		owner:   owner,
		name:    name,
		symbol:  symbol,
		votes:   ledger.New(ch.Clock(), opts...),
	}
}

// Deploy registers the token on its chain.
func (t *Token) Deploy() error {
	return t.chain.Deploy(t.address, t)
}

func (t *Token) Address() common.Address { return t.address }
func (t *Token) Owner() common.Address   { return t.owner }
func (t *Token) Name() string            { return t.name }
func (t *Token) Symbol() string          { return t.symbol }

// Votes returns the voting power ledger backing the balances.
func (t *Token) Votes() *ledger.Ledger {
	return t.votes
}

// BalanceOf returns the current balance of account.
func (t *Token) BalanceOf(account common.Address) *uint256.Int {
	return t.votes.Latest(account)
}

// TotalSupply returns the current supply.
func (t *Token) TotalSupply() *uint256.Int {
	return t.votes.LatestTotal()
}

// Mint creates amount tokens for to. Only the owner can mint.
func (t *Token) Mint(ctx context.Context, caller, to common.Address, amount *uint256.Int) error {
	return t.chain.Atomic(ctx, func(ctx context.Context) error {
		return t.mint(ctx, caller, to, amount)
	})
}

// Burn destroys amount tokens of caller.
func (t *Token) Burn(ctx context.Context, caller common.Address, amount *uint256.Int) error {
	return t.chain.Atomic(ctx, func(ctx context.Context) error {
		return t.move(ctx, caller, common.Address{}, amount)
	})
}

// Transfer moves amount tokens from caller to to.
func (t *Token) Transfer(ctx context.Context, caller, to common.Address, amount *uint256.Int) error {
	return t.chain.Atomic(ctx, func(ctx context.Context) error {
		if to == (common.Address{}) {
			return ErrTransferToZero
		}

		return t.move(ctx, caller, to, amount)
	})
}

// TransferOwnership hands the minting right to newOwner.
func (t *Token) TransferOwnership(ctx context.Context, caller, newOwner common.Address) error {
	return t.chain.Atomic(ctx, func(ctx context.Context) error {
		if caller != t.owner {
			return NewNotOwnerError(caller, t.owner)
		}

		t.chain.Emit(t.address, OwnershipTransferred{PreviousOwner: t.owner, NewOwner: newOwner})
		t.owner = newOwner

		return nil
	})
}

func (t *Token) mint(ctx context.Context, caller, to common.Address, amount *uint256.Int) error {
	if caller != t.owner {
		return NewNotOwnerError(caller, t.owner)
	}
	if to == (common.Address{}) {
		return ErrTransferToZero
	}

	return t.move(ctx, common.Address{}, to, amount)
}

func (t *Token) move(ctx context.Context, from, to common.Address, amount *uint256.Int) error {
	if from != (common.Address{}) {
		if balance := t.votes.Latest(from); balance.Lt(amount) {
			return NewInsufficientBalanceError(from, balance, amount.Clone())
		}
	}

	if err := t.votes.MoveVotingPower(from, to, amount); err != nil {
		return err
	}
	t.chain.Emit(t.address, Transfer{From: from, To: to, Value: amount.Clone()})
	sdk.LoggerFrom(ctx).Debugf("token %s: %s moved from %s to %s", t.symbol, amount.Dec(), from, to)

	return nil
}

// Call handles calls made to the token. The sender of the message acts as caller.
func (t *Token) Call(ctx context.Context, msg chain.Message) ([]byte, error) {
	switch {
	case abiUtils.HasSelector(MintSignature, msg.Data):
		args, err := abiUtils.DecodeCall(MintSignature, msg.Data)
		if err != nil {
			return nil, err
		}
		amount, err := safecast.BigToUint256(args[1].(*big.Int))
		if err != nil {
			return nil, err
		}

		return nil, t.mint(ctx, msg.From, args[0].(common.Address), amount)
	case abiUtils.HasSelector(TransferSignature, msg.Data):
		args, err := abiUtils.DecodeCall(TransferSignature, msg.Data)
		if err != nil {
			return nil, err
		}
		to := args[0].(common.Address)
		if to == (common.Address{}) {
			return nil, ErrTransferToZero
		}
		amount, err := safecast.BigToUint256(args[1].(*big.Int))
		if err != nil {
			return nil, err
		}

		return nil, t.move(ctx, msg.From, to, amount)
	case abiUtils.HasSelector(BurnSignature, msg.Data):
		args, err := abiUtils.DecodeCall(BurnSignature, msg.Data)
		if err != nil {
			return nil, err
		}
		amount, err := safecast.BigToUint256(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}

		return nil, t.move(ctx, msg.From, common.Address{}, amount)
	default:
		return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, msg.Data[:min(len(msg.Data), abiUtils.SelectorLength)])
	}
}

// Snapshot implements chain.Snapshotter.
func (t *Token) Snapshot() func() {
	owner := t.owner
	restoreVotes := t.votes.Snapshot()

	return func() {
		t.owner = owner
		restoreVotes()
	}
}
