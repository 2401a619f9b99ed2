// Package governor implements a token weighted governor that executes passed proposals through a
// timelock.
//
// Proposals move through the states Pending, Active, Canceled, Defeated, Succeeded, Queued,
// Expired and Executed. Only the canceled and executed flags and the eta are stored, every other
// state is derived from the clock, the tallies and the timelock grace period. Vote weight is read
// from the voting power ledger at the proposal snapshot, so tokens moved after the snapshot do not
// count. Votes cast close to the deadline can extend it, see the extension package.
//
// Governance settings can only be changed by the executor while it runs a passed proposal. The
// executor calls back into the governor, and each call must match the next entry of the
// CallQueue filled when the batch started.
package governor

import (
	"fmt"
	"maps"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"

	"github.com/smartcontractkit/governor/chain"
	"github.com/smartcontractkit/governor/extension"
	"github.com/smartcontractkit/governor/ledger"
	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/types"
)

// QuorumDenominator is the denominator of the quorum numerator.
const QuorumDenominator = 100

var (
	_ chain.Contract    = (*Governor)(nil)
	_ chain.Snapshotter = (*Governor)(nil)
)

// Config is the initial configuration of a Governor.
type Config struct {
	Name              string              `json:"name" validate:"required"`
	ChainSelector     types.ChainSelector `json:"chainSelector" validate:"required"`
	VotingDelay       uint64              `json:"votingDelay"`
	VotingPeriod      uint64              `json:"votingPeriod" validate:"gt=0"`
	ProposalThreshold *uint256.Int        `json:"proposalThreshold"`
	QuorumNumerator   uint64              `json:"quorumNumerator" validate:"lte=100"`
	Canceler          common.Address      `json:"canceler"`
	Extension         extension.Params    `json:"extension"`
}

// Validate checks the config.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	return c.Extension.Validate()
}

// Settings are the governor parameters changed through governance. Version grows by one on every
// change.
type Settings struct {
	Version           uint64       `json:"version"`
	VotingDelay       uint64       `json:"votingDelay"`
	VotingPeriod      uint64       `json:"votingPeriod"`
	ProposalThreshold *uint256.Int `json:"proposalThreshold"`
}

// Tally holds the votes counted for a proposal.
type Tally struct {
	Against *uint256.Int `json:"against"`
	For     *uint256.Int `json:"for"`
	Abstain *uint256.Int `json:"abstain"`
}

func newTally() Tally {
	return Tally{Against: new(uint256.Int), For: new(uint256.Int), Abstain: new(uint256.Int)}
}

func (t Tally) clone() Tally {
	return Tally{Against: t.Against.Clone(), For: t.For.Clone(), Abstain: t.Abstain.Clone()}
}

// Proposal is the stored record of a proposal. VoteEnd is the deadline before any extension.
type Proposal struct {
	ID          uint64         `json:"id"`
	Proposer    common.Address `json:"proposer"`
	Actions     []types.Action `json:"actions"`
	ActionsHash common.Hash    `json:"actionsHash"`
	Description string         `json:"description"`
	VoteStart   uint64         `json:"voteStart"`
	VoteEnd     uint64         `json:"voteEnd"`
	Eta         uint64         `json:"eta"`
	Canceled    bool           `json:"canceled"`
	Executed    bool           `json:"executed"`
	Votes       Tally          `json:"votes"`
}

// Receipt is the vote of one account on one proposal.
type Receipt struct {
	HasVoted bool           `json:"hasVoted"`
	Support  types.VoteType `json:"support"`
	Weight   *uint256.Int   `json:"weight"`
}

type proposalRecord struct {
	Proposal
	receipts map[common.Address]Receipt
}

// journal records how to revert a proposal mutation.
func (g *Governor) journal(undo func()) {
	g.undo = append(g.undo, undo)
}

// modify journals the mutable fields of p before they change.
func (g *Governor) modify(p *proposalRecord) {
	eta, executed, canceled, votes := p.Eta, p.Executed, p.Canceled, p.Votes.clone()
	g.journal(func() {
		p.Eta, p.Executed, p.Canceled, p.Votes = eta, executed, canceled, votes
	})
}

// Governor is the proposal state machine, deployed as a contract on a chain.Chain.
type Governor struct {
	chain   *chain.Chain
	address common.Address
	name    string
	chainID uint64

	votes    sdk.Votes
	executor sdk.Executor
	canceler common.Address

	settings        Settings
	quorumNumerator ledger.Checkpoints
	engine          *extension.Engine

	proposals     map[uint64]*proposalRecord
	proposalCount uint64
	nonces        map[common.Address]uint64
	calls         CallQueue

	// undo reverts proposal mutations made since the outermost transaction started.
	undo []func()
}

// New creates a governor at address reading voting power from votes and executing through
// executor. The executor must make the governor its admin before proposals can be queued.
func New(ch *chain.Chain, address common.Address, votes sdk.Votes, executor sdk.Executor, config Config) (*Governor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid governor config: %w", err)
	}

	chainID, err := types.EVMChainID(config.ChainSelector)
	if err != nil {
		return nil, err
	}

	engine, err := extension.New(config.Extension)
	if err != nil {
		return nil, err
	}

	threshold := new(uint256.Int)
	if config.ProposalThreshold != nil {
		threshold.Set(config.ProposalThreshold)
	}

	g := &Governor{
		chain:    ch,
		address:  address,
		name:     config.Name,
		chainID:  chainID,
		votes:    votes,
		executor: executor,
		canceler: config.Canceler,
		settings: Settings{
			VotingDelay:       config.VotingDelay,
			VotingPeriod:      config.VotingPeriod,
			ProposalThreshold: threshold,
		},
		engine:    engine,
		proposals: make(map[uint64]*proposalRecord),
		nonces:    make(map[common.Address]uint64),
	}
	if _, _, err := g.quorumNumerator.Push(ch.Clock().Now(), uint256.NewInt(config.QuorumNumerator)); err != nil {
		return nil, err
	}

	return g, nil
}

// Deploy registers the governor on its chain.
func (g *Governor) Deploy() error {
	return g.chain.Deploy(g.address, g)
}

func (g *Governor) Address() common.Address { return g.address }
func (g *Governor) Name() string            { return g.name }
func (g *Governor) ChainID() uint64         { return g.chainID }
func (g *Governor) Executor() sdk.Executor  { return g.executor }
func (g *Governor) Canceler() common.Address {
	return g.canceler
}

// Settings returns a copy of the current settings.
func (g *Governor) Settings() Settings {
	s := g.settings
	s.ProposalThreshold = s.ProposalThreshold.Clone()

	return s
}

// ExtensionParams returns the current deadline extension parameters.
func (g *Governor) ExtensionParams() extension.Params {
	return g.engine.Params()
}

func (g *Governor) VotingDelay() uint64  { return g.settings.VotingDelay }
func (g *Governor) VotingPeriod() uint64 { return g.settings.VotingPeriod }

// ProposalThreshold is the voting power needed to propose.
func (g *Governor) ProposalThreshold() *uint256.Int {
	return g.settings.ProposalThreshold.Clone()
}

// ProposalCount returns the number of proposals created. Ids run from 1 to ProposalCount.
func (g *Governor) ProposalCount() uint64 {
	return g.proposalCount
}

// Nonces returns the next ballot nonce of account.
func (g *Governor) Nonces(account common.Address) uint64 {
	return g.nonces[account]
}

// QuorumNumerator returns the current quorum numerator.
func (g *Governor) QuorumNumerator() uint64 {
	return g.quorumNumerator.Latest().Uint64()
}

// QuorumNumeratorAt returns the quorum numerator in effect at timepoint.
func (g *Governor) QuorumNumeratorAt(timepoint uint64) uint64 {
	return g.quorumNumerator.UpperLookupRecent(timepoint).Uint64()
}

// Quorum returns the votes needed at timepoint: total supply * numerator / QuorumDenominator.
func (g *Governor) Quorum(timepoint uint64) (*uint256.Int, error) {
	total, err := g.votes.LookupTotal(timepoint)
	if err != nil {
		return nil, err
	}

	q := new(uint256.Int).Mul(total, uint256.NewInt(g.QuorumNumeratorAt(timepoint)))

	return q.Div(q, uint256.NewInt(QuorumDenominator)), nil
}

// GetVotes returns the voting power of account at a past timepoint.
func (g *Governor) GetVotes(account common.Address, timepoint uint64) (*uint256.Int, error) {
	return g.votes.Lookup(account, timepoint)
}

// Proposal returns a copy of the proposal record.
func (g *Governor) Proposal(id uint64) (Proposal, error) {
	p, err := g.proposal(id)
	if err != nil {
		return Proposal{}, err
	}

	c := p.Proposal
	c.Votes = p.Votes.clone()
	c.Actions = make([]types.Action, len(p.Actions))
	for i, a := range p.Actions {
		c.Actions[i] = types.NewAction(a.Target, a.Value, a.Calldata, a.Signature)
	}

	return c, nil
}

func (g *Governor) proposal(id uint64) (*proposalRecord, error) {
	p, ok := g.proposals[id]
	if !ok {
		return nil, NewNonexistentProposalError(id)
	}

	return p, nil
}

// ProposalSnapshot returns the timepoint at which vote weight is read.
func (g *Governor) ProposalSnapshot(id uint64) (uint64, error) {
	p, err := g.proposal(id)
	if err != nil {
		return 0, err
	}

	return p.VoteStart, nil
}

// ProposalDeadline returns the last block of voting, extensions included.
func (g *Governor) ProposalDeadline(id uint64) (uint64, error) {
	p, err := g.proposal(id)
	if err != nil {
		return 0, err
	}

	return g.engine.Deadline(id, p.VoteEnd), nil
}

// ProposalEta returns the timelock eta of a queued proposal, or zero.
func (g *Governor) ProposalEta(id uint64) (uint64, error) {
	p, err := g.proposal(id)
	if err != nil {
		return 0, err
	}

	return p.Eta, nil
}

// ProposalProposer returns the account that created the proposal.
func (g *Governor) ProposalProposer(id uint64) (common.Address, error) {
	p, err := g.proposal(id)
	if err != nil {
		return common.Address{}, err
	}

	return p.Proposer, nil
}

// ProposalVotes returns the tallies of a proposal.
func (g *Governor) ProposalVotes(id uint64) (Tally, error) {
	p, err := g.proposal(id)
	if err != nil {
		return Tally{}, err
	}

	return p.Votes.clone(), nil
}

// HasVoted reports whether account voted on the proposal.
func (g *Governor) HasVoted(id uint64, account common.Address) (bool, error) {
	p, err := g.proposal(id)
	if err != nil {
		return false, err
	}

	return p.receipts[account].HasVoted, nil
}

// GetReceipt returns the vote of account on the proposal.
func (g *Governor) GetReceipt(id uint64, account common.Address) (Receipt, error) {
	p, err := g.proposal(id)
	if err != nil {
		return Receipt{}, err
	}

	r, ok := p.receipts[account]
	if !ok {
		return Receipt{Weight: new(uint256.Int)}, nil
	}
	r.Weight = r.Weight.Clone()

	return r, nil
}

// ExtensionState returns the deadline extension bookkeeping of a proposal.
func (g *Governor) ExtensionState(id uint64) (extension.State, bool) {
	return g.engine.State(id)
}

// Snapshot implements chain.Snapshotter.
func (g *Governor) Snapshot() func() {
	settings := g.Settings()
	executor, canceler := g.executor, g.canceler
	restoreNumerator := g.quorumNumerator.Snapshot()
	restoreEngine := g.engine.Snapshot()
	mark := len(g.undo)
	count := g.proposalCount
	nonces := maps.Clone(g.nonces)
	calls := g.calls.Digests()

	return func() {
		g.settings = settings
		g.executor, g.canceler = executor, canceler
		restoreNumerator()
		restoreEngine()
		for i := len(g.undo) - 1; i >= mark; i-- {
			g.undo[i]()
		}
		g.undo = g.undo[:mark]
		g.proposalCount = count
		g.nonces = nonces
		g.calls.restore(calls)
	}
}

// Commit implements chain.Committer.
func (g *Governor) Commit() {
	g.undo = nil
}
