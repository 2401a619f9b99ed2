package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	// ErrClockRewind is returned when the clock is asked to move to an earlier height.
	ErrClockRewind = errors.New("clock cannot move backwards")

	// ErrZeroAddress is returned when a contract is deployed at the zero address.
	ErrZeroAddress = errors.New("zero address")
)

// InsufficientBalanceError is returned when a call carries more value than its sender holds.
type InsufficientBalanceError struct {
	Account common.Address
	Balance *uint256.Int
	Needed  *uint256.Int
}

// NewInsufficientBalanceError creates a new InsufficientBalanceError.
func NewInsufficientBalanceError(account common.Address, balance, needed *uint256.Int) *InsufficientBalanceError {
	return &InsufficientBalanceError{Account: account, Balance: balance.Clone(), Needed: needed.Clone()}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for %s: have %s, need %s", e.Account, e.Balance.Dec(), e.Needed.Dec())
}

// AddressInUseError is returned when a contract is deployed at an occupied address.
type AddressInUseError struct {
	Address common.Address
}

// NewAddressInUseError creates a new AddressInUseError.
func NewAddressInUseError(address common.Address) *AddressInUseError {
	return &AddressInUseError{Address: address}
}

func (e *AddressInUseError) Error() string {
	return fmt.Sprintf("address %s already has a contract", e.Address)
}
