package simulation

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcontractkit/governor"
	"github.com/smartcontractkit/governor/chain"
	"github.com/smartcontractkit/governor/config"
	"github.com/smartcontractkit/governor/timelock"
	"github.com/smartcontractkit/governor/token"
	"github.com/smartcontractkit/governor/treasury"
)

// Deployer owns the token and deploys every contract.
var Deployer = common.HexToAddress("0x00000000000000000000000000000000000d0000")

// Contract addresses, derived from the deployer like CREATE addresses.
var (
	TokenAddress    = crypto.CreateAddress(Deployer, 0)
	TimelockAddress = crypto.CreateAddress(Deployer, 1)
	GovernorAddress = crypto.CreateAddress(Deployer, 2)
	TreasuryAddress = crypto.CreateAddress(Deployer, 3)
)

// Deployment is a token, timelock, governor and treasury wired together on one chain. The
// timelock is administered by the governor and is the treasury's executor.
type Deployment struct {
	Chain    *chain.Chain
	Clock    *chain.Clock
	Token    *token.Token
	Timelock *timelock.Timelock
	Governor *governor.Governor
	Treasury *treasury.Treasury
}

// Deploy deploys the contracts described by cfg at block start.
func Deploy(cfg *config.Deployment, start uint64) (*Deployment, error) {
	clock := chain.NewClock(start)
	ch := chain.New(clock)

	tok := token.New(ch, TokenAddress, Deployer, cfg.TokenName, cfg.TokenSymbol, cfg.LedgerOptions()...)
	if err := tok.Deploy(); err != nil {
		return nil, fmt.Errorf("deploy token: %w", err)
	}

	tl, err := timelock.New(ch, TimelockAddress, GovernorAddress, cfg.Timelock)
	if err != nil {
		return nil, fmt.Errorf("deploy timelock: %w", err)
	}
	if err := tl.Deploy(); err != nil {
		return nil, fmt.Errorf("deploy timelock: %w", err)
	}

	gov, err := governor.New(ch, GovernorAddress, tok.Votes(), tl, cfg.Governor)
	if err != nil {
		return nil, fmt.Errorf("deploy governor: %w", err)
	}
	if err := gov.Deploy(); err != nil {
		return nil, fmt.Errorf("deploy governor: %w", err)
	}

	tr := treasury.New(ch, TreasuryAddress, TimelockAddress)
	if err := tr.Deploy(); err != nil {
		return nil, fmt.Errorf("deploy treasury: %w", err)
	}

	return &Deployment{
		Chain:    ch,
		Clock:    clock,
		Token:    tok,
		Timelock: tl,
		Governor: gov,
		Treasury: tr,
	}, nil
}

// Contracts names the deployed contracts.
func (d *Deployment) Contracts() map[string]common.Address {
	return map[string]common.Address{
		"token":    d.Token.Address(),
		"timelock": d.Timelock.Address(),
		"governor": d.Governor.Address(),
		"treasury": d.Treasury.Address(),
	}
}

// Resolve maps a contract name to its address in every simulated deployment. Hex addresses
// resolve to themselves.
func Resolve(name string) (common.Address, error) {
	switch name {
	case "token":
		return TokenAddress, nil
	case "timelock":
		return TimelockAddress, nil
	case "governor":
		return GovernorAddress, nil
	case "treasury":
		return TreasuryAddress, nil
	}
	if common.IsHexAddress(name) {
		return common.HexToAddress(name), nil
	}

	return common.Address{}, fmt.Errorf("%w: %q", ErrUnknownAccount, name)
}
