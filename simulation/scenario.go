// Package simulation replays governance scenarios against a freshly deployed token, timelock,
// governor and treasury.
//
// A scenario is a YAML document naming accounts, initial token holders and a list of steps. Each
// step optionally mines to a block and then performs one action, such as proposing, voting or
// executing, or checks the state of a proposal.
package simulation

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidStep is returned when a step sets zero or several actions.
var ErrInvalidStep = errors.New("step must set exactly one action")

// Scenario is a replayable list of steps.
type Scenario struct {
	// Start is the block the deployment happens at. Holders are minted at Start and the clock
	// then moves one block forward.
	Start uint64 `yaml:"start"`
	// Accounts names addresses so steps can refer to them. The deployed contracts are always
	// available as token, timelock, governor and treasury.
	Accounts map[string]string `yaml:"accounts" validate:"dive,keys,required,endkeys,eth_addr"`
	// Holders are minted tokens at Start, in decimal units.
	Holders map[string]string `yaml:"holders" validate:"dive,keys,required,endkeys,numeric"`
	// Funds are native balances credited at Start, in decimal units.
	Funds map[string]string `yaml:"funds" validate:"dive,keys,required,endkeys,numeric"`
	Steps []Step            `yaml:"steps" validate:"required,dive"`
}

// Step mines to Block when it is above the current block and then runs its action. When
// ExpectError is set the action must fail with an error containing it.
type Step struct {
	Block       uint64 `yaml:"block,omitempty"`
	ExpectError string `yaml:"expectError,omitempty"`

	Propose   *ProposeStep    `yaml:"propose,omitempty"`
	Vote      *VoteStep       `yaml:"vote,omitempty"`
	VoteBySig *SignedVoteStep `yaml:"voteBySig,omitempty"`
	Queue     *ProposalStep   `yaml:"queue,omitempty"`
	Execute   *ProposalStep   `yaml:"execute,omitempty"`
	Cancel    *CancelStep     `yaml:"cancel,omitempty"`
	Transfer  *TransferStep   `yaml:"transfer,omitempty"`
	Call      *CallStep       `yaml:"call,omitempty"`
	Expect    *ExpectStep     `yaml:"expect,omitempty"`
}

// ProposeStep creates a proposal.
type ProposeStep struct {
	From        string       `yaml:"from" validate:"required"`
	Description string       `yaml:"description"`
	Actions     []ActionStep `yaml:"actions" validate:"required,dive"`
}

// ActionStep is one proposal action. Args are given as strings and converted to the argument
// types of Signature.
type ActionStep struct {
	Target    string   `yaml:"target" validate:"required"`
	Value     string   `yaml:"value,omitempty" validate:"omitempty,numeric"`
	Signature string   `yaml:"signature" validate:"required"`
	Args      []string `yaml:"args,omitempty"`
}

// VoteStep casts a vote. Support is for, against or abstain.
type VoteStep struct {
	From     string `yaml:"from" validate:"required"`
	Proposal uint64 `yaml:"proposal" validate:"required"`
	Support  string `yaml:"support" validate:"oneof=for against abstain"`
	Reason   string `yaml:"reason,omitempty"`
}

// SignedVoteStep casts a vote signed off-chain with a hex private key. The voter is the address
// of the key, and votes with a reason are signed as extended ballots.
type SignedVoteStep struct {
	Key      string `yaml:"key" validate:"required"`
	Proposal uint64 `yaml:"proposal" validate:"required"`
	Support  string `yaml:"support" validate:"oneof=for against abstain"`
	Reason   string `yaml:"reason,omitempty"`
}

// ProposalStep refers to a proposal by id.
type ProposalStep struct {
	Proposal uint64 `yaml:"proposal" validate:"required"`
}

// CancelStep cancels a proposal on behalf of From.
type CancelStep struct {
	From     string `yaml:"from" validate:"required"`
	Proposal uint64 `yaml:"proposal" validate:"required"`
}

// TransferStep moves tokens, and with them voting power, between accounts.
type TransferStep struct {
	From   string `yaml:"from" validate:"required"`
	To     string `yaml:"to" validate:"required"`
	Amount string `yaml:"amount" validate:"required,numeric"`
}

// CallStep sends a call from an account to a contract outside of any proposal.
type CallStep struct {
	From   string     `yaml:"from" validate:"required"`
	Action ActionStep `yaml:",inline"`
}

// ExpectStep checks the state of a proposal and optionally the voting power of accounts.
type ExpectStep struct {
	Proposal uint64            `yaml:"proposal,omitempty"`
	State    string            `yaml:"state,omitempty"`
	Deadline uint64            `yaml:"deadline,omitempty"`
	Votes    map[string]string `yaml:"votes,omitempty" validate:"dive,keys,required,endkeys,numeric"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Propose != nil,
		s.Vote != nil,
		s.VoteBySig != nil,
		s.Queue != nil,
		s.Execute != nil,
		s.Cancel != nil,
		s.Transfer != nil,
		s.Call != nil,
		s.Expect != nil,
	} {
		if set {
			n++
		}
	}

	return n
}

// Validate checks the scenario structure. Account names are resolved when the scenario runs.
func (s *Scenario) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return err
	}

	for i, step := range s.Steps {
		// A step with only a block just mines.
		if n := step.actions(); n > 1 || (n == 0 && step.Block == 0) {
			return fmt.Errorf("step %d: %w", i, ErrInvalidStep)
		}
	}

	return nil
}

// LoadScenario reads and validates the scenario at path.
func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	return ParseScenario(b)
}

// ParseScenario decodes and validates a scenario.
func ParseScenario(b []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}
