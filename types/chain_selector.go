package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainSelector is a unique identifier for a chain.
//
// These values are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainSelector uint64

var (
	// ErrChainFamilyNotFound is returned when the chain family is not found for a selector
	ErrChainFamilyNotFound = errors.New("chain family not found")

	// ErrUnsupportedChainFamily is returned when the selector is not an EVM chain. Ballot
	// signatures use an EIP-712 domain, which needs an EVM chain id.
	ErrUnsupportedChainFamily = errors.New("unsupported chain family")
)

// GetChainSelectorFamily returns the family of the chain selector.
func GetChainSelectorFamily(sel ChainSelector) (string, error) {
	family, err := chainsel.GetSelectorFamily(uint64(sel))
	if err != nil {
		return "", fmt.Errorf("%w for selector %d", ErrChainFamilyNotFound, sel)
	}

	return family, nil
}

// EVMChainID returns the EVM chain id of the selector, used as the chainId of the ballot
// signing domain.
func EVMChainID(sel ChainSelector) (uint64, error) {
	family, err := GetChainSelectorFamily(sel)
	if err != nil {
		return 0, err
	}

	if family != chainsel.FamilyEVM {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedChainFamily, family)
	}

	return chainsel.ChainIdFromSelector(uint64(sel))
}
