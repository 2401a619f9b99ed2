// Package config loads the deployment configuration of a governor from a YAML or JSON document,
// with overrides taken from the environment.
//
// Periods are written as durations and converted to blocks with the configured block time.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/governor"
	"github.com/smartcontractkit/governor/extension"
	"github.com/smartcontractkit/governor/ledger"
	"github.com/smartcontractkit/governor/timelock"
	"github.com/smartcontractkit/governor/types"
)

// DefaultBlockTime is the block time of Ethereum mainnet.
const DefaultBlockTime = 12 * time.Second

// Config is the configuration document.
type Config struct {
	BlockTime types.Duration `json:"blockTime" yaml:"blockTime"`
	Token     Token          `json:"token" yaml:"token"`
	Governor  Governor       `json:"governor" yaml:"governor"`
	Timelock  Timelock       `json:"timelock" yaml:"timelock"`
	Extension Extension      `json:"extension" yaml:"extension"`
}

// Token configures the voting token. An empty MaxSupply leaves the ledger cap at its maximum.
type Token struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Symbol    string `json:"symbol" yaml:"symbol" validate:"required"`
	MaxSupply string `json:"maxSupply,omitempty" yaml:"maxSupply,omitempty" validate:"omitempty,numeric"`
}

// Governor configures the proposal state machine.
type Governor struct {
	Name              string              `json:"name" yaml:"name" validate:"required"`
	ChainSelector     types.ChainSelector `json:"chainSelector" yaml:"chainSelector" validate:"required"`
	VotingDelay       types.Duration      `json:"votingDelay" yaml:"votingDelay"`
	VotingPeriod      types.Duration      `json:"votingPeriod" yaml:"votingPeriod"`
	ProposalThreshold string              `json:"proposalThreshold" yaml:"proposalThreshold" validate:"omitempty,numeric"`
	QuorumNumerator   uint64              `json:"quorumNumerator" yaml:"quorumNumerator" validate:"lte=100"`
	Canceler          string              `json:"canceler,omitempty" yaml:"canceler,omitempty" validate:"omitempty,eth_addr"`
}

// Timelock configures the timelock delays.
type Timelock struct {
	Delay        types.Duration `json:"delay" yaml:"delay"`
	GracePeriod  types.Duration `json:"gracePeriod" yaml:"gracePeriod"`
	MinimumDelay types.Duration `json:"minimumDelay" yaml:"minimumDelay"`
	MaximumDelay types.Duration `json:"maximumDelay" yaml:"maximumDelay"`
}

// Extension configures deadline extension. A zero MaxDeadlineExtension turns it off.
type Extension struct {
	MaxDeadlineExtension  types.Duration `json:"maxDeadlineExtension" yaml:"maxDeadlineExtension"`
	BaseDeadlineExtension types.Duration `json:"baseDeadlineExtension" yaml:"baseDeadlineExtension"`
	DecayPeriod           types.Duration `json:"decayPeriod" yaml:"decayPeriod"`
	PercentDecay          uint64         `json:"percentDecay" yaml:"percentDecay" validate:"lte=100"`
}

// Default returns a mainnet configuration: a one day voting delay, a one week voting period, a
// 4% quorum and a two day timelock.
func Default() *Config {
	day := 24 * time.Hour

	return &Config{
		BlockTime: types.NewDuration(DefaultBlockTime),
		Token: Token{
			Name:   "Governance",
			Symbol: "GOV",
		},
		Governor: Governor{
			Name:              "Governor",
			ChainSelector:     types.ChainSelector(chainsel.ETHEREUM_MAINNET.Selector),
			VotingDelay:       types.NewDuration(day),
			VotingPeriod:      types.NewDuration(7 * day),
			ProposalThreshold: "0",
			QuorumNumerator:   4,
		},
		Timelock: Timelock{
			Delay:        types.NewDuration(2 * day),
			GracePeriod:  types.NewDuration(14 * day),
			MinimumDelay: types.NewDuration(2 * day),
			MaximumDelay: types.NewDuration(30 * day),
		},
		Extension: Extension{
			MaxDeadlineExtension:  types.NewDuration(2 * day),
			BaseDeadlineExtension: types.NewDuration(day),
			DecayPeriod:           types.NewDuration(day),
			PercentDecay:          50,
		},
	}
}

// Load reads the document at path over the defaults. JSON documents are accepted as YAML.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(b)
}

// Parse decodes a document over the defaults.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return c, nil
}

// Validate checks the document and every component config derived from it.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	_, err := c.Resolve()

	return err
}

// Deployment is the configuration with every period converted to blocks.
type Deployment struct {
	TokenName   string
	TokenSymbol string
	MaxSupply   *uint256.Int
	Governor    governor.Config
	Timelock    timelock.Config
}

// LedgerOptions returns the ledger options of the token.
func (d *Deployment) LedgerOptions() []ledger.Option {
	if d.MaxSupply == nil {
		return nil
	}

	return []ledger.Option{ledger.WithMaxSupply(d.MaxSupply)}
}

// Resolve converts the document into component configs and validates each of them.
func (c *Config) Resolve() (*Deployment, error) {
	blocks := func(field string, d types.Duration) (uint64, error) {
		n, err := d.Blocks(c.BlockTime.Duration)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", field, err)
		}

		return n, nil
	}

	var errs []error
	convert := func(field string, d types.Duration) uint64 {
		n, err := blocks(field, d)
		errs = append(errs, err)

		return n
	}

	g := governor.Config{
		Name:              c.Governor.Name,
		ChainSelector:     c.Governor.ChainSelector,
		VotingDelay:       convert("governor.votingDelay", c.Governor.VotingDelay),
		VotingPeriod:      convert("governor.votingPeriod", c.Governor.VotingPeriod),
		ProposalThreshold: new(uint256.Int),
		QuorumNumerator:   c.Governor.QuorumNumerator,
		Extension: extension.Params{
			MaxDeadlineExtension:  convert("extension.maxDeadlineExtension", c.Extension.MaxDeadlineExtension),
			BaseDeadlineExtension: convert("extension.baseDeadlineExtension", c.Extension.BaseDeadlineExtension),
			DecayPeriod:           convert("extension.decayPeriod", c.Extension.DecayPeriod),
			PercentDecay:          c.Extension.PercentDecay,
		},
	}
	tl := timelock.Config{
		Delay:        convert("timelock.delay", c.Timelock.Delay),
		GracePeriod:  convert("timelock.gracePeriod", c.Timelock.GracePeriod),
		MinimumDelay: convert("timelock.minimumDelay", c.Timelock.MinimumDelay),
		MaximumDelay: convert("timelock.maximumDelay", c.Timelock.MaximumDelay),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if c.Governor.ProposalThreshold != "" {
		threshold, err := uint256.FromDecimal(c.Governor.ProposalThreshold)
		if err != nil {
			return nil, fmt.Errorf("governor.proposalThreshold: %w", err)
		}
		g.ProposalThreshold = threshold
	}
	if c.Governor.Canceler != "" {
		if !common.IsHexAddress(c.Governor.Canceler) {
			return nil, fmt.Errorf("governor.canceler: invalid address %q", c.Governor.Canceler)
		}
		g.Canceler = common.HexToAddress(c.Governor.Canceler)
	}

	d := &Deployment{
		TokenName:   c.Token.Name,
		TokenSymbol: c.Token.Symbol,
		Governor:    g,
		Timelock:    tl,
	}
	if c.Token.MaxSupply != "" {
		maxSupply, err := uint256.FromDecimal(c.Token.MaxSupply)
		if err != nil {
			return nil, fmt.Errorf("token.maxSupply: %w", err)
		}
		if maxSupply.Cmp(ledger.MaxValue) > 0 {
			return nil, fmt.Errorf("token.maxSupply: %s exceeds %s", maxSupply.Dec(), ledger.MaxValue.Dec())
		}
		d.MaxSupply = maxSupply
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("governor: %w", err)
	}
	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("timelock: %w", err)
	}

	return d, nil
}

// Write encodes the document as YAML.
func (c *Config) Write(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, b, 0o600)
}
