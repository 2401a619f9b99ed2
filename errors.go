package governor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/types"
)

var (
	// ErrEmptyProposal is returned when a proposal has no actions.
	ErrEmptyProposal = errors.New("empty proposal")

	// ErrInvalidVoteType is returned for a support value other than against, for or abstain.
	ErrInvalidVoteType = errors.New("invalid vote type")

	// ErrGovernanceCallQueueEmpty is returned when a governance call arrives with no authorized
	// call left in the queue.
	ErrGovernanceCallQueueEmpty = errors.New("governance call queue is empty")

	// ErrGovernanceCallMismatch is returned when a governance call is not the next authorized call.
	ErrGovernanceCallMismatch = errors.New("governance call does not match the next authorized call")

	// ErrUnknownSelector is returned when the governor is called with data it does not understand.
	ErrUnknownSelector = errors.New("unknown function selector")

	// ErrInvalidExecutor is returned when the new executor is not an executor contract.
	ErrInvalidExecutor = errors.New("address is not an executor")
)

// NonexistentProposalError is returned when a proposal id was never assigned.
type NonexistentProposalError struct {
	ID uint64
}

// NewNonexistentProposalError creates a new NonexistentProposalError.
func NewNonexistentProposalError(id uint64) *NonexistentProposalError {
	return &NonexistentProposalError{ID: id}
}

func (e *NonexistentProposalError) Error() string {
	return fmt.Sprintf("proposal %d does not exist", e.ID)
}

// InvalidProposalLengthError is returned when targets, values and calldatas differ in length.
type InvalidProposalLengthError struct {
	Targets   int
	Values    int
	Calldatas int
}

// NewInvalidProposalLengthError creates a new InvalidProposalLengthError.
func NewInvalidProposalLengthError(targets, values, calldatas int) *InvalidProposalLengthError {
	return &InvalidProposalLengthError{Targets: targets, Values: values, Calldatas: calldatas}
}

func (e *InvalidProposalLengthError) Error() string {
	return fmt.Sprintf("invalid proposal length: %d targets, %d values, %d calldatas", e.Targets, e.Values, e.Calldatas)
}

// InvalidActionSignatureError is returned when the signature of an action does not match the
// selector of its calldata.
type InvalidActionSignatureError struct {
	Index     int
	Signature string
}

// NewInvalidActionSignatureError creates a new InvalidActionSignatureError.
func NewInvalidActionSignatureError(index int, signature string) *InvalidActionSignatureError {
	return &InvalidActionSignatureError{Index: index, Signature: signature}
}

func (e *InvalidActionSignatureError) Error() string {
	return fmt.Sprintf("action %d: signature %q does not match calldata selector", e.Index, e.Signature)
}

// RestrictedProposerError is returned when the description restricts who may submit it.
type RestrictedProposerError struct {
	Proposer common.Address
}

// NewRestrictedProposerError creates a new RestrictedProposerError.
func NewRestrictedProposerError(proposer common.Address) *RestrictedProposerError {
	return &RestrictedProposerError{Proposer: proposer}
}

func (e *RestrictedProposerError) Error() string {
	return fmt.Sprintf("proposer %s is not allowed to submit this proposal", e.Proposer)
}

// InsufficientProposerVotesError is returned when the proposer is below the proposal threshold.
type InsufficientProposerVotesError struct {
	Proposer  common.Address
	Votes     *uint256.Int
	Threshold *uint256.Int
}

// NewInsufficientProposerVotesError creates a new InsufficientProposerVotesError.
func NewInsufficientProposerVotesError(proposer common.Address, votes, threshold *uint256.Int) *InsufficientProposerVotesError {
	return &InsufficientProposerVotesError{Proposer: proposer, Votes: votes, Threshold: threshold}
}

func (e *InsufficientProposerVotesError) Error() string {
	return fmt.Sprintf("proposer %s has %s votes, threshold is %s", e.Proposer, e.Votes.Dec(), e.Threshold.Dec())
}

// UnexpectedProposalStateError is returned when an operation needs the proposal in another state.
type UnexpectedProposalStateError struct {
	ID       uint64
	Current  types.ProposalState
	Expected []types.ProposalState
}

// NewUnexpectedProposalStateError creates a new UnexpectedProposalStateError.
func NewUnexpectedProposalStateError(id uint64, current types.ProposalState, expected ...types.ProposalState) *UnexpectedProposalStateError {
	return &UnexpectedProposalStateError{ID: id, Current: current, Expected: expected}
}

func (e *UnexpectedProposalStateError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, s := range e.Expected {
		expected[i] = string(s)
	}

	return fmt.Sprintf("proposal %d is %s, expected %s", e.ID, e.Current, strings.Join(expected, " or "))
}

// AlreadyCastVoteError is returned when a voter votes twice on a proposal.
type AlreadyCastVoteError struct {
	ID    uint64
	Voter common.Address
}

// NewAlreadyCastVoteError creates a new AlreadyCastVoteError.
func NewAlreadyCastVoteError(id uint64, voter common.Address) *AlreadyCastVoteError {
	return &AlreadyCastVoteError{ID: id, Voter: voter}
}

func (e *AlreadyCastVoteError) Error() string {
	return fmt.Sprintf("%s already voted on proposal %d", e.Voter, e.ID)
}

// InvalidSignatureError is returned when a ballot signature was not made by the voter.
type InvalidSignatureError struct {
	Voter common.Address
}

// NewInvalidSignatureError creates a new InvalidSignatureError.
func NewInvalidSignatureError(voter common.Address) *InvalidSignatureError {
	return &InvalidSignatureError{Voter: voter}
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid ballot signature for voter %s", e.Voter)
}

// ActionsHashMismatchError is returned when queue or execute is called with actions other than
// the proposed ones.
type ActionsHashMismatchError struct {
	ID       uint64
	Expected common.Hash
	Actual   common.Hash
}

// NewActionsHashMismatchError creates a new ActionsHashMismatchError.
func NewActionsHashMismatchError(id uint64, expected, actual common.Hash) *ActionsHashMismatchError {
	return &ActionsHashMismatchError{ID: id, Expected: expected, Actual: actual}
}

func (e *ActionsHashMismatchError) Error() string {
	return fmt.Sprintf("proposal %d actions hash mismatch: expected %s, got %s", e.ID, e.Expected, e.Actual)
}

// AlreadyQueuedActionError is returned when an identical action is already queued in the timelock.
type AlreadyQueuedActionError struct {
	ID    uint64
	Index int
}

// NewAlreadyQueuedActionError creates a new AlreadyQueuedActionError.
func NewAlreadyQueuedActionError(id uint64, index int) *AlreadyQueuedActionError {
	return &AlreadyQueuedActionError{ID: id, Index: index}
}

func (e *AlreadyQueuedActionError) Error() string {
	return fmt.Sprintf("proposal %d action %d is already queued at the same eta", e.ID, e.Index)
}

// UnauthorizedCancelError is returned when caller may not cancel the proposal.
type UnauthorizedCancelError struct {
	ID     uint64
	Caller common.Address
}

// NewUnauthorizedCancelError creates a new UnauthorizedCancelError.
func NewUnauthorizedCancelError(id uint64, caller common.Address) *UnauthorizedCancelError {
	return &UnauthorizedCancelError{ID: id, Caller: caller}
}

func (e *UnauthorizedCancelError) Error() string {
	return fmt.Sprintf("%s is not allowed to cancel proposal %d", e.Caller, e.ID)
}

// OnlyGovernanceError is returned when a governance setter is not called by the executor.
type OnlyGovernanceError struct {
	Caller common.Address
}

// NewOnlyGovernanceError creates a new OnlyGovernanceError.
func NewOnlyGovernanceError(caller common.Address) *OnlyGovernanceError {
	return &OnlyGovernanceError{Caller: caller}
}

func (e *OnlyGovernanceError) Error() string {
	return fmt.Sprintf("only governance can call this function, got %s", e.Caller)
}

// InvalidVotingPeriodError is returned when the voting period is set to zero.
type InvalidVotingPeriodError struct {
	VotingPeriod uint64
}

// NewInvalidVotingPeriodError creates a new InvalidVotingPeriodError.
func NewInvalidVotingPeriodError(votingPeriod uint64) *InvalidVotingPeriodError {
	return &InvalidVotingPeriodError{VotingPeriod: votingPeriod}
}

func (e *InvalidVotingPeriodError) Error() string {
	return fmt.Sprintf("invalid voting period %d", e.VotingPeriod)
}

// InvalidQuorumFractionError is returned when the quorum numerator exceeds the denominator.
type InvalidQuorumFractionError struct {
	Numerator   uint64
	Denominator uint64
}

// NewInvalidQuorumFractionError creates a new InvalidQuorumFractionError.
func NewInvalidQuorumFractionError(numerator, denominator uint64) *InvalidQuorumFractionError {
	return &InvalidQuorumFractionError{Numerator: numerator, Denominator: denominator}
}

func (e *InvalidQuorumFractionError) Error() string {
	return fmt.Sprintf("invalid quorum fraction %d/%d", e.Numerator, e.Denominator)
}
