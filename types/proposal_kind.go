package types //nolint:revive

// ProposalState is the lifecycle state of a governance proposal.
type ProposalState string

const (
	// ProposalStatePending means voting has not started yet.
	ProposalStatePending ProposalState = "Pending"
	// ProposalStateActive means votes are being accepted.
	ProposalStateActive ProposalState = "Active"
	// ProposalStateCanceled means the proposal was canceled by its proposer or the canceler.
	ProposalStateCanceled ProposalState = "Canceled"
	// ProposalStateDefeated means voting closed without quorum or with against >= for.
	ProposalStateDefeated ProposalState = "Defeated"
	// ProposalStateSucceeded means voting closed in favour and the proposal can be queued.
	ProposalStateSucceeded ProposalState = "Succeeded"
	// ProposalStateQueued means the actions are waiting in the timelock.
	ProposalStateQueued ProposalState = "Queued"
	// ProposalStateExpired means the grace period lapsed before execution.
	ProposalStateExpired ProposalState = "Expired"
	// ProposalStateExecuted means the actions ran.
	ProposalStateExecuted ProposalState = "Executed"
)

// StringToProposalState converts a string to a ProposalState.
var StringToProposalState = map[string]ProposalState{
	"Pending":   ProposalStatePending,
	"Active":    ProposalStateActive,
	"Canceled":  ProposalStateCanceled,
	"Defeated":  ProposalStateDefeated,
	"Succeeded": ProposalStateSucceeded,
	"Queued":    ProposalStateQueued,
	"Expired":   ProposalStateExpired,
	"Executed":  ProposalStateExecuted,
}

// VoteType is the support value of a ballot.
type VoteType uint8

const (
	VoteAgainst VoteType = iota
	VoteFor
	VoteAbstain
)

// Valid reports whether v is one of the three supported vote types.
func (v VoteType) Valid() bool {
	return v <= VoteAbstain
}

func (v VoteType) String() string {
	switch v {
	case VoteAgainst:
		return "against"
	case VoteFor:
		return "for"
	case VoteAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}
