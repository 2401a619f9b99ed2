package governor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/types"
)

// ProposalRequest is a set of actions and a description, ready to be proposed.
type ProposalRequest struct {
	Actions     []types.Action `json:"actions"`
	Description string         `json:"description"`
}

// Validate checks that the request has actions and that every action signature matches its
// calldata.
func (r *ProposalRequest) Validate() error {
	if len(r.Actions) == 0 {
		return ErrEmptyProposal
	}

	for i, a := range r.Actions {
		if a.Signature != "" && !abiUtils.HasSelector(a.Signature, a.Calldata) {
			return NewInvalidActionSignatureError(i, a.Signature)
		}
	}

	return nil
}

// Hash returns the actions hash the proposal will be identified by in Queue and Execute.
func (r *ProposalRequest) Hash() (common.Hash, error) {
	return HashActions(r.Actions)
}

// ProposalBuilder is a builder for a ProposalRequest.
type ProposalBuilder struct {
	request  ProposalRequest
	proposer *common.Address
	errs     []error
}

// NewProposalBuilder creates a new ProposalBuilder.
func NewProposalBuilder() *ProposalBuilder {
	return &ProposalBuilder{
		request: ProposalRequest{Actions: []types.Action{}},
	}
}

// SetDescription sets the description of the proposal.
func (b *ProposalBuilder) SetDescription(description string) *ProposalBuilder {
	b.request.Description = description
	return b
}

// RestrictTo appends a proposer suffix to the description so that only proposer can submit it.
func (b *ProposalBuilder) RestrictTo(proposer common.Address) *ProposalBuilder {
	b.proposer = &proposer
	return b
}

// AddAction adds an action to the proposal.
func (b *ProposalBuilder) AddAction(action types.Action) *ProposalBuilder {
	b.request.Actions = append(b.request.Actions, action)
	return b
}

// SetActions sets all the actions of the proposal.
func (b *ProposalBuilder) SetActions(actions []types.Action) *ProposalBuilder {
	b.request.Actions = actions
	return b
}

// AddCall encodes a call to signature on target and adds it as an action. Encoding errors are
// reported by Build.
func (b *ProposalBuilder) AddCall(target common.Address, value *uint256.Int, signature string, args ...any) *ProposalBuilder {
	calldata, err := abiUtils.EncodeCall(signature, args...)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("action %d: %w", len(b.request.Actions), err))
		return b
	}

	return b.AddAction(types.NewAction(target, value, calldata, signature))
}

// Build validates and returns the constructed ProposalRequest.
func (b *ProposalBuilder) Build() (*ProposalRequest, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	request := b.request
	request.Actions = append([]types.Action{}, b.request.Actions...)
	if b.proposer != nil {
		request.Description += proposerMarker + strings.ToLower(b.proposer.Hex()[2:])
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return &request, nil
}

// ProposeRequest proposes a built request on behalf of proposer.
func (g *Governor) ProposeRequest(ctx context.Context, proposer common.Address, r *ProposalRequest) (uint64, error) {
	return g.Propose(ctx, proposer, r.Actions, r.Description)
}
