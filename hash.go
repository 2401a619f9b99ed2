package governor

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/types"
)

const actionsABI = `[{"type":"address[]"},{"type":"uint256[]"},{"type":"bytes[]"}]`

// proposerMarker starts the optional description suffix naming the only account allowed to
// submit the proposal, e.g. "...#proposer=0x5B38Da6a701c568545dCfcB03FcB875f56beddC4".
const proposerMarker = "#proposer=0x"

// HashProposalActions returns keccak256(abi.encode(targets, values, calldatas)).
func HashProposalActions(targets []common.Address, values []*uint256.Int, calldatas [][]byte) (common.Hash, error) {
	if len(targets) != len(values) || len(targets) != len(calldatas) {
		return common.Hash{}, NewInvalidProposalLengthError(len(targets), len(values), len(calldatas))
	}

	bigValues := make([]*big.Int, len(values))
	for i, v := range values {
		if v == nil {
			bigValues[i] = new(big.Int)
			continue
		}
		bigValues[i] = v.ToBig()
	}

	encoded, err := abiUtils.Encode(actionsABI, targets, bigValues, calldatas)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

// HashActions is HashProposalActions over a list of actions.
func HashActions(actions []types.Action) (common.Hash, error) {
	return HashProposalActions(types.SplitActions(actions))
}

// HashProposalActions implements the view of the same name.
func (g *Governor) HashProposalActions(targets []common.Address, values []*uint256.Int, calldatas [][]byte) (common.Hash, error) {
	return HashProposalActions(targets, values, calldatas)
}

// isValidDescriptionForProposer reports whether proposer may submit description. Descriptions
// without a well formed proposer suffix are open to everyone.
func isValidDescriptionForProposer(proposer common.Address, description string) bool {
	i := strings.LastIndex(description, proposerMarker)
	if i < 0 {
		return true
	}

	suffix := description[i+len(proposerMarker):]
	if len(suffix) != 2*common.AddressLength || !isHex(suffix) {
		return true
	}

	return common.HexToAddress(suffix) == proposer
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}

	return true
}
