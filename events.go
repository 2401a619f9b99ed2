package governor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/types"
)

type ProposalCreated struct {
	ID          uint64           `json:"id"`
	Proposer    common.Address   `json:"proposer"`
	Targets     []common.Address `json:"targets"`
	Values      []*uint256.Int   `json:"values"`
	Signatures  []string         `json:"signatures"`
	Calldatas   []hexutil.Bytes  `json:"calldatas"`
	VoteStart   uint64           `json:"voteStart"`
	VoteEnd     uint64           `json:"voteEnd"`
	Description string           `json:"description"`
}

func (ProposalCreated) EventName() string { return "ProposalCreated" }

type VoteCast struct {
	Voter      common.Address `json:"voter"`
	ProposalID uint64         `json:"proposalId"`
	Support    types.VoteType `json:"support"`
	Weight     *uint256.Int   `json:"weight"`
	Reason     string         `json:"reason"`
}

func (VoteCast) EventName() string { return "VoteCast" }

type VoteCastWithParams struct {
	Voter      common.Address `json:"voter"`
	ProposalID uint64         `json:"proposalId"`
	Support    types.VoteType `json:"support"`
	Weight     *uint256.Int   `json:"weight"`
	Reason     string         `json:"reason"`
	Params     hexutil.Bytes  `json:"params"`
}

func (VoteCastWithParams) EventName() string { return "VoteCastWithParams" }

type ProposalQueued struct {
	ID  uint64 `json:"id"`
	Eta uint64 `json:"eta"`
}

func (ProposalQueued) EventName() string { return "ProposalQueued" }

type ProposalExecuted struct {
	ID uint64 `json:"id"`
}

func (ProposalExecuted) EventName() string { return "ProposalExecuted" }

type ProposalCanceled struct {
	ID uint64 `json:"id"`
}

func (ProposalCanceled) EventName() string { return "ProposalCanceled" }

// ProposalExtended is emitted when a vote pushes the voting deadline out.
type ProposalExtended struct {
	ID               uint64 `json:"id"`
	ExtendedDeadline uint64 `json:"extendedDeadline"`
	ExtendedBy       uint64 `json:"extendedBy"`
}

func (ProposalExtended) EventName() string { return "ProposalExtended" }

type VotingDelaySet struct {
	OldVotingDelay uint64 `json:"oldVotingDelay"`
	NewVotingDelay uint64 `json:"newVotingDelay"`
}

func (VotingDelaySet) EventName() string { return "VotingDelaySet" }

type VotingPeriodSet struct {
	OldVotingPeriod uint64 `json:"oldVotingPeriod"`
	NewVotingPeriod uint64 `json:"newVotingPeriod"`
}

func (VotingPeriodSet) EventName() string { return "VotingPeriodSet" }

type ProposalThresholdSet struct {
	OldProposalThreshold *uint256.Int `json:"oldProposalThreshold"`
	NewProposalThreshold *uint256.Int `json:"newProposalThreshold"`
}

func (ProposalThresholdSet) EventName() string { return "ProposalThresholdSet" }

type QuorumNumeratorUpdated struct {
	OldQuorumNumerator uint64 `json:"oldQuorumNumerator"`
	NewQuorumNumerator uint64 `json:"newQuorumNumerator"`
}

func (QuorumNumeratorUpdated) EventName() string { return "QuorumNumeratorUpdated" }

type MaxDeadlineExtensionSet struct {
	OldMaxDeadlineExtension uint64 `json:"oldMaxDeadlineExtension"`
	NewMaxDeadlineExtension uint64 `json:"newMaxDeadlineExtension"`
}

func (MaxDeadlineExtensionSet) EventName() string { return "MaxDeadlineExtensionSet" }

type BaseDeadlineExtensionSet struct {
	OldBaseDeadlineExtension uint64 `json:"oldBaseDeadlineExtension"`
	NewBaseDeadlineExtension uint64 `json:"newBaseDeadlineExtension"`
}

func (BaseDeadlineExtensionSet) EventName() string { return "BaseDeadlineExtensionSet" }

type DecayPeriodSet struct {
	OldDecayPeriod uint64 `json:"oldDecayPeriod"`
	NewDecayPeriod uint64 `json:"newDecayPeriod"`
}

func (DecayPeriodSet) EventName() string { return "DecayPeriodSet" }

type PercentDecaySet struct {
	OldPercentDecay uint64 `json:"oldPercentDecay"`
	NewPercentDecay uint64 `json:"newPercentDecay"`
}

func (PercentDecaySet) EventName() string { return "PercentDecaySet" }

type ExecutorUpdated struct {
	OldExecutor common.Address `json:"oldExecutor"`
	NewExecutor common.Address `json:"newExecutor"`
}

func (ExecutorUpdated) EventName() string { return "ExecutorUpdated" }

type CancelerSet struct {
	OldCanceler common.Address `json:"oldCanceler"`
	NewCanceler common.Address `json:"newCanceler"`
}

func (CancelerSet) EventName() string { return "CancelerSet" }
