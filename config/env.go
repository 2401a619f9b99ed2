package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/smartcontractkit/governor/types"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GOVERNOR_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func stringVar(dst *string) func(string) error {
	return func(v string) error {
		s, err := cast.ToStringE(v)
		*dst = s

		return err
	}
}

func uint64Var(dst *uint64) func(string) error {
	return func(v string) error {
		n, err := cast.ToUint64E(v)
		if err != nil {
			return err
		}
		*dst = n

		return nil
	}
}

// selectorVar parses the full uint64 range, selectors are mostly above math.MaxInt64.
func selectorVar(dst *types.ChainSelector) func(string) error {
	return func(v string) error {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		*dst = types.ChainSelector(n)

		return nil
	}
}

func durationVar(dst *types.Duration) func(string) error {
	return func(v string) error {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return err
		}
		*dst = types.NewDuration(d)

		return nil
	}
}

// overrides maps each variable name, without the prefix, to the field it sets.
func (c *Config) overrides() map[string]func(string) error {
	return map[string]func(string) error{
		"BLOCK_TIME":                        durationVar(&c.BlockTime),
		"TOKEN_NAME":                        stringVar(&c.Token.Name),
		"TOKEN_SYMBOL":                      stringVar(&c.Token.Symbol),
		"TOKEN_MAX_SUPPLY":                  stringVar(&c.Token.MaxSupply),
		"NAME":                              stringVar(&c.Governor.Name),
		"CHAIN_SELECTOR":                    selectorVar(&c.Governor.ChainSelector),
		"VOTING_DELAY":                      durationVar(&c.Governor.VotingDelay),
		"VOTING_PERIOD":                     durationVar(&c.Governor.VotingPeriod),
		"PROPOSAL_THRESHOLD":                stringVar(&c.Governor.ProposalThreshold),
		"QUORUM_NUMERATOR":                  uint64Var(&c.Governor.QuorumNumerator),
		"CANCELER":                          stringVar(&c.Governor.Canceler),
		"TIMELOCK_DELAY":                    durationVar(&c.Timelock.Delay),
		"TIMELOCK_GRACE_PERIOD":             durationVar(&c.Timelock.GracePeriod),
		"TIMELOCK_MINIMUM_DELAY":            durationVar(&c.Timelock.MinimumDelay),
		"TIMELOCK_MAXIMUM_DELAY":            durationVar(&c.Timelock.MaximumDelay),
		"EXTENSION_MAX_DEADLINE_EXTENSION":  durationVar(&c.Extension.MaxDeadlineExtension),
		"EXTENSION_BASE_DEADLINE_EXTENSION": durationVar(&c.Extension.BaseDeadlineExtension),
		"EXTENSION_DECAY_PERIOD":            durationVar(&c.Extension.DecayPeriod),
		"EXTENSION_PERCENT_DECAY":           uint64Var(&c.Extension.PercentDecay),
	}
}

// ApplyEnv overrides fields from GOVERNOR_ prefixed variables. Every malformed variable is
// reported.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var errs []error
	for name, set := range c.overrides() {
		key := EnvPrefix + name
		value, ok := lookup(key)
		if !ok {
			continue
		}
		if err := set(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

// LoadDotEnv loads variables from a .env file into the process environment without overriding
// variables already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}
