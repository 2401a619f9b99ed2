package simulation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor"
	"github.com/smartcontractkit/governor/chain"
	"github.com/smartcontractkit/governor/config"
	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/types"
)

var (
	// ErrUnknownAccount is returned when a name is neither an account, a contract nor an address.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrExpectationFailed is returned when an expect step or an expected error does not hold.
	ErrExpectationFailed = errors.New("expectation failed")
)

// StepResult records what a step did.
type StepResult struct {
	Index  int    `json:"index"`
	Block  uint64 `json:"block"`
	Action string `json:"action"`
	Detail string `json:"detail"`
	// Error is the error the step failed with as expected.
	Error string `json:"error,omitempty"`
}

// Report is the outcome of a run.
type Report struct {
	Steps []StepResult `json:"steps"`
	Logs  []chain.Log  `json:"-"`
}

// Runner replays a scenario against a deployment.
type Runner struct {
	deployment *Deployment
	scenario   *Scenario
	names      map[string]common.Address
}

// NewRunner deploys cfg at the scenario start block and mints the initial holders. Sinks are
// subscribed before anything is minted so they see every log.
func NewRunner(ctx context.Context, cfg *config.Deployment, s *Scenario, sinks ...chain.Sink) (*Runner, error) {
	d, err := Deploy(cfg, s.Start)
	if err != nil {
		return nil, err
	}
	for _, sink := range sinks {
		d.Chain.Subscribe(sink)
	}

	r := &Runner{deployment: d, scenario: s, names: d.Contracts()}
	for name, hex := range s.Accounts {
		if _, ok := r.names[name]; ok {
			return nil, fmt.Errorf("account %q shadows a contract", name)
		}
		r.names[name] = common.HexToAddress(hex)
	}

	for _, name := range slices.Sorted(maps.Keys(s.Funds)) {
		amount := s.Funds[name]
		account, err := r.resolve(name)
		if err != nil {
			return nil, err
		}
		value, err := uint256.FromDecimal(amount)
		if err != nil {
			return nil, fmt.Errorf("fund %s: %w", name, err)
		}
		d.Chain.Fund(account, value)
	}

	for _, name := range slices.Sorted(maps.Keys(s.Holders)) {
		amount := s.Holders[name]
		account, err := r.resolve(name)
		if err != nil {
			return nil, err
		}
		value, err := uint256.FromDecimal(amount)
		if err != nil {
			return nil, fmt.Errorf("mint %s: %w", name, err)
		}
		if err := d.Token.Mint(ctx, Deployer, account, value); err != nil {
			return nil, fmt.Errorf("mint %s: %w", name, err)
		}
	}
	d.Clock.Mine(1)

	return r, nil
}

// Deployment returns the contracts the runner drives.
func (r *Runner) Deployment() *Deployment {
	return r.deployment
}

// Run replays every step. It stops at the first step that fails unexpectedly and returns the
// report of the steps run so far.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := sdk.LoggerFrom(ctx)
	report := &Report{}
	defer func() { report.Logs = r.deployment.Chain.Logs() }()

	for i, step := range r.scenario.Steps {
		if step.Block > r.deployment.Clock.Now() {
			if err := r.deployment.Clock.Set(step.Block); err != nil {
				return report, fmt.Errorf("step %d: %w", i, err)
			}
		}

		result := StepResult{Index: i, Block: r.deployment.Clock.Now()}
		action, detail, err := r.runStep(ctx, step)
		result.Action = action
		result.Detail = detail

		switch {
		case step.ExpectError == "" && err != nil:
			return report, fmt.Errorf("step %d (%s): %w", i, action, err)
		case step.ExpectError != "" && err == nil:
			return report, fmt.Errorf("step %d (%s): %w: no error, want %q", i, action, ErrExpectationFailed, step.ExpectError)
		case step.ExpectError != "" && !strings.Contains(err.Error(), step.ExpectError):
			return report, fmt.Errorf("step %d (%s): %w: error %q, want %q", i, action, ErrExpectationFailed, err, step.ExpectError)
		case err != nil:
			result.Error = err.Error()
		}

		logger.Debugf("step %d at block %d: %s %s", i, result.Block, action, detail)
		report.Steps = append(report.Steps, result)
	}

	return report, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) (string, string, error) {
	gov := r.deployment.Governor

	switch {
	case step.Propose != nil:
		proposer, err := r.resolve(step.Propose.From)
		if err != nil {
			return "propose", "", err
		}
		actions, err := BuildActions(step.Propose.Actions, r.resolve)
		if err != nil {
			return "propose", "", err
		}
		request, err := governor.NewProposalBuilder().
			SetDescription(step.Propose.Description).
			SetActions(actions).
			Build()
		if err != nil {
			return "propose", "", err
		}
		id, err := gov.ProposeRequest(ctx, proposer, request)
		if err != nil {
			return "propose", "", err
		}

		return "propose", fmt.Sprintf("proposal %d by %s", id, step.Propose.From), nil
	case step.Vote != nil:
		voter, err := r.resolve(step.Vote.From)
		if err != nil {
			return "vote", "", err
		}
		weight, err := gov.CastVoteWithReason(ctx, voter, step.Vote.Proposal, supportOf(step.Vote.Support), step.Vote.Reason)
		if err != nil {
			return "vote", "", err
		}

		return "vote", fmt.Sprintf("%s voted %s on proposal %d with %s", step.Vote.From, step.Vote.Support, step.Vote.Proposal, weight.Dec()), nil
	case step.VoteBySig != nil:
		detail, err := r.voteBySig(ctx, step.VoteBySig)
		return "vote", detail, err
	case step.Queue != nil:
		p, err := gov.Proposal(step.Queue.Proposal)
		if err != nil {
			return "queue", "", err
		}
		targets, values, calldatas := types.SplitActions(p.Actions)
		eta, err := gov.Queue(ctx, p.ID, targets, values, calldatas)
		if err != nil {
			return "queue", "", err
		}

		return "queue", fmt.Sprintf("proposal %d queued for block %d", p.ID, eta), nil
	case step.Execute != nil:
		p, err := gov.Proposal(step.Execute.Proposal)
		if err != nil {
			return "execute", "", err
		}
		targets, values, calldatas := types.SplitActions(p.Actions)
		if err := gov.Execute(ctx, p.ID, targets, values, calldatas); err != nil {
			return "execute", "", err
		}

		return "execute", fmt.Sprintf("proposal %d executed", p.ID), nil
	case step.Cancel != nil:
		caller, err := r.resolve(step.Cancel.From)
		if err != nil {
			return "cancel", "", err
		}
		if err := gov.Cancel(ctx, caller, step.Cancel.Proposal); err != nil {
			return "cancel", "", err
		}

		return "cancel", fmt.Sprintf("proposal %d canceled by %s", step.Cancel.Proposal, step.Cancel.From), nil
	case step.Transfer != nil:
		return "transfer", "", r.transfer(ctx, step.Transfer)
	case step.Call != nil:
		detail, err := r.call(ctx, step.Call)
		return "call", detail, err
	case step.Expect != nil:
		detail, err := r.expect(step.Expect)
		return "expect", detail, err
	default:
		return "mine", fmt.Sprintf("mined to block %d", r.deployment.Clock.Now()), nil
	}
}

func (r *Runner) voteBySig(ctx context.Context, step *SignedVoteStep) (string, error) {
	gov := r.deployment.Governor

	pk, err := crypto.HexToECDSA(strings.TrimPrefix(step.Key, "0x"))
	if err != nil {
		return "", fmt.Errorf("invalid key: %w", err)
	}
	signer := governor.NewPrivateKeySigner(pk)
	support := supportOf(step.Support)

	var weight *uint256.Int
	if step.Reason == "" {
		sig, err := gov.SignBallot(signer, step.Proposal, support)
		if err != nil {
			return "", err
		}
		weight, err = gov.CastVoteBySig(ctx, step.Proposal, support, signer.Address(), sig)
		if err != nil {
			return "", err
		}
	} else {
		sig, err := gov.SignExtendedBallot(signer, step.Proposal, support, step.Reason, nil)
		if err != nil {
			return "", err
		}
		weight, err = gov.CastVoteWithReasonAndParamsBySig(ctx, step.Proposal, support, signer.Address(), step.Reason, nil, sig)
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%s voted %s by signature on proposal %d with %s", signer.Address(), step.Support, step.Proposal, weight.Dec()), nil
}

func (r *Runner) transfer(ctx context.Context, step *TransferStep) error {
	from, err := r.resolve(step.From)
	if err != nil {
		return err
	}
	to, err := r.resolve(step.To)
	if err != nil {
		return err
	}
	amount, err := uint256.FromDecimal(step.Amount)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}

	return r.deployment.Token.Transfer(ctx, from, to, amount)
}

func (r *Runner) call(ctx context.Context, step *CallStep) (string, error) {
	from, err := r.resolve(step.From)
	if err != nil {
		return "", err
	}
	actions, err := BuildActions([]ActionStep{step.Action}, r.resolve)
	if err != nil {
		return "", err
	}
	a := actions[0]
	if _, err := r.deployment.Chain.Call(ctx, chain.Message{From: from, To: a.Target, Value: a.Value, Data: a.Calldata}); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s called %s on %s", step.From, step.Action.Signature, step.Action.Target), nil
}

func (r *Runner) expect(step *ExpectStep) (string, error) {
	gov := r.deployment.Governor
	var checks []string

	if step.State != "" {
		want, ok := types.StringToProposalState[step.State]
		if !ok {
			return "", fmt.Errorf("unknown proposal state %q", step.State)
		}
		state, err := gov.State(step.Proposal)
		if err != nil {
			return "", err
		}
		if state != want {
			return "", fmt.Errorf("%w: proposal %d is %s, want %s", ErrExpectationFailed, step.Proposal, state, want)
		}
		checks = append(checks, fmt.Sprintf("proposal %d is %s", step.Proposal, state))
	}

	if step.Deadline != 0 {
		deadline, err := gov.ProposalDeadline(step.Proposal)
		if err != nil {
			return "", err
		}
		if deadline != step.Deadline {
			return "", fmt.Errorf("%w: proposal %d deadline is %d, want %d", ErrExpectationFailed, step.Proposal, deadline, step.Deadline)
		}
		checks = append(checks, fmt.Sprintf("proposal %d deadline is %d", step.Proposal, deadline))
	}

	for _, name := range slices.Sorted(maps.Keys(step.Votes)) {
		amount := step.Votes[name]
		account, err := r.resolve(name)
		if err != nil {
			return "", err
		}
		want, err := uint256.FromDecimal(amount)
		if err != nil {
			return "", fmt.Errorf("votes of %s: %w", name, err)
		}
		got := r.deployment.Token.Votes().Latest(account)
		if !got.Eq(want) {
			return "", fmt.Errorf("%w: %s has %s votes, want %s", ErrExpectationFailed, name, got.Dec(), want.Dec())
		}
		checks = append(checks, fmt.Sprintf("%s has %s votes", name, got.Dec()))
	}

	return strings.Join(checks, ", "), nil
}

// resolve maps a name to an address. Hex addresses resolve to themselves.
func (r *Runner) resolve(name string) (common.Address, error) {
	if addr, ok := r.names[name]; ok {
		return addr, nil
	}
	if common.IsHexAddress(name) {
		return common.HexToAddress(name), nil
	}

	return common.Address{}, fmt.Errorf("%w: %q", ErrUnknownAccount, name)
}

func supportOf(support string) types.VoteType {
	switch support {
	case "for":
		return types.VoteFor
	case "abstain":
		return types.VoteAbstain
	default:
		return types.VoteAgainst
	}
}

// Run deploys cfg and replays s.
func Run(ctx context.Context, cfg *config.Deployment, s *Scenario, sinks ...chain.Sink) (*Report, error) {
	r, err := NewRunner(ctx, cfg, s, sinks...)
	if err != nil {
		return nil, err
	}

	return r.Run(ctx)
}
