package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Action is a single call that a proposal asks the executor to make once it has passed.
type Action struct {
	Target common.Address `json:"target"`
	Value  *uint256.Int   `json:"value"`
	// Calldata is the full call payload, selector included.
	Calldata hexutil.Bytes `json:"calldata"`
	// Signature is the human readable function signature, e.g. "setVotingDelay(uint256)". When it
	// is set, its selector must match the first four bytes of Calldata.
	Signature string `json:"signature,omitempty"`
}

// NewAction builds an action with a copy of the calldata. A nil value is treated as zero.
func NewAction(target common.Address, value *uint256.Int, calldata []byte, signature string) Action {
	if value == nil {
		value = new(uint256.Int)
	}

	return Action{
		Target:    target,
		Value:     value.Clone(),
		Calldata:  append(hexutil.Bytes{}, calldata...),
		Signature: signature,
	}
}

// ValueOrZero returns the action value, treating nil as zero.
func (a Action) ValueOrZero() *uint256.Int {
	if a.Value == nil {
		return new(uint256.Int)
	}

	return a.Value
}

// SplitActions returns the parallel targets, values and calldatas arrays of the actions.
func SplitActions(actions []Action) ([]common.Address, []*uint256.Int, [][]byte) {
	targets := make([]common.Address, 0, len(actions))
	values := make([]*uint256.Int, 0, len(actions))
	calldatas := make([][]byte, 0, len(actions))
	for _, a := range actions {
		targets = append(targets, a.Target)
		values = append(values, a.ValueOrZero())
		calldatas = append(calldatas, a.Calldata)
	}

	return targets, values, calldatas
}
