package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Transaction is an operation scheduled in the timelock. Its identity is the digest of all five
// fields, so the same call queued with two different etas is two different operations.
type Transaction struct {
	Target    common.Address `json:"target"`
	Value     *uint256.Int   `json:"value"`
	Signature string         `json:"signature"`
	Data      hexutil.Bytes  `json:"data"`
	Eta       uint64         `json:"eta"`
}

// ValueOrZero returns the transaction value, treating nil as zero.
func (t Transaction) ValueOrZero() *uint256.Int {
	if t.Value == nil {
		return new(uint256.Int)
	}

	return t.Value
}
