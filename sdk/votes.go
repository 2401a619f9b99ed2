package sdk

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Clock is the protocol-wide monotonic clock. Timepoints are block heights.
type Clock interface {
	Now() uint64
}

// Votes is the read side of the voting power ledger.
type Votes interface {
	Clock() uint64
	ClockMode() string
	// Lookup returns the voting power of account at a past timepoint.
	Lookup(account common.Address, timepoint uint64) (*uint256.Int, error)
	// LookupTotal returns the total supply at a past timepoint.
	LookupTotal(timepoint uint64) (*uint256.Int, error)
	Latest(account common.Address) *uint256.Int
}
