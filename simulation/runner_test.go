package simulation

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/governor/config"
	"github.com/smartcontractkit/governor/eventlog"
	"github.com/smartcontractkit/governor/internal/testutils"
)

func loadTestDeployment(t *testing.T) *config.Deployment {
	t.Helper()

	c, err := config.Load("testdata/config.yaml")
	require.NoError(t, err)
	d, err := c.Resolve()
	require.NoError(t, err)

	return d
}

func Test_Run_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := testutils.Context(t)
	s, err := LoadScenario("testdata/lifecycle.yaml")
	require.NoError(t, err)

	recorder := eventlog.NewRecorder()
	r, err := NewRunner(ctx, loadTestDeployment(t), s, recorder)
	require.NoError(t, err)

	report, err := r.Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.Steps, len(s.Steps))

	assert.Equal(t, "proposal 1 by alice", report.Steps[0].Detail)
	assert.Equal(t, "proposal 1 is Pending, expected Active", report.Steps[2].Error)
	assert.Equal(t, "alice voted for on proposal 1 with 40", report.Steps[3].Detail)
	assert.Equal(t, "proposal 1 queued for block 123", report.Steps[8].Detail)
	assert.Contains(t, report.Steps[9].Error, "hasn't surpassed time lock")
	assert.Equal(t, uint64(123), report.Steps[10].Block)

	d := r.Deployment()
	assert.Equal(t, uint256.NewInt(50), d.Treasury.Balance(TokenAddress))
	assert.Equal(t, uint256.NewInt(50), d.Treasury.Withdrawals(TokenAddress))
	assert.Equal(t, uint64(5), d.Governor.VotingDelay())
	assert.Len(t, recorder.Named("ProposalExecuted"), 1)
	assert.Len(t, recorder.Named("VoteCast"), 3)
	assert.Equal(t, recorder.Logs(), report.Logs)
}

func Test_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scenario string
		wantErr  string
		assert   func(t *testing.T, r *Runner, report *Report)
	}{
		{
			name: "success: transfer moves voting power",
			scenario: `
holders:
  "0x00000000000000000000000000000000000b0001": "40"
steps:
  - transfer:
      from: "0x00000000000000000000000000000000000b0001"
      to: "0x00000000000000000000000000000000000b0002"
      amount: "15"
  - expect:
      votes:
        "0x00000000000000000000000000000000000b0001": "25"
        "0x00000000000000000000000000000000000b0002": "15"
`,
			assert: func(t *testing.T, r *Runner, report *Report) {
				t.Helper()

				assert.Equal(t, uint64(1), report.Steps[0].Block)
				assert.Equal(t, uint256.NewInt(15), r.Deployment().Token.BalanceOf(common.HexToAddress("0xb0002")))
			},
		},
		{
			name: "success: block only step mines",
			scenario: `
start: 5
steps:
  - block: 50
`,
			assert: func(t *testing.T, r *Runner, report *Report) {
				t.Helper()

				assert.Equal(t, "mine", report.Steps[0].Action)
				assert.Equal(t, uint64(50), r.Deployment().Clock.Now())
			},
		},
		{
			name: "success: canceler cancels an active proposal",
			scenario: `
accounts:
  alice: "0x00000000000000000000000000000000000b0001"
  guardian: "0x00000000000000000000000000000000000b0006"
holders:
  alice: "10"
steps:
  - propose:
      from: alice
      actions:
        - target: governor
          signature: setVotingPeriod(uint256)
          args: ["50"]
  - cancel:
      from: alice
      proposal: 1
    block: 20
    expectError: "proposal 1 is Active, expected Pending"
  - cancel:
      from: guardian
      proposal: 1
  - expect:
      proposal: 1
      state: Canceled
`,
			assert: func(t *testing.T, r *Runner, report *Report) {
				t.Helper()

				assert.Equal(t, "proposal 1 canceled by guardian", report.Steps[2].Detail)
			},
		},
		{
			name: "success: vote by signature",
			scenario: `
holders:
  "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf": "10"
steps:
  - propose:
      from: "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
      actions:
        - target: governor
          signature: setVotingDelay(uint256)
          args: ["1"]
  - block: 12
    voteBySig:
      key: "0x0000000000000000000000000000000000000000000000000000000000000001"
      proposal: 1
      support: for
  - voteBySig:
      key: "0x0000000000000000000000000000000000000000000000000000000000000001"
      proposal: 1
      support: against
      reason: "changed my mind"
    expectError: "already voted on proposal 1"
`,
			assert: func(t *testing.T, r *Runner, report *Report) {
				t.Helper()

				assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf voted for by signature on proposal 1 with 10", report.Steps[1].Detail)
				assert.Equal(t, uint64(1), r.Deployment().Governor.Nonces(common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")))
			},
		},
		{
			name: "success: direct call",
			scenario: `
steps:
  - call:
      from: timelock
      target: treasury
      signature: registerDeposit(address,uint256)
      args: [token, "0x10"]
`,
			assert: func(t *testing.T, r *Runner, _ *Report) {
				t.Helper()

				assert.Equal(t, uint256.NewInt(16), r.Deployment().Treasury.Deposits(TokenAddress))
			},
		},
		{
			name: "failure: direct governance call",
			scenario: `
steps:
  - call:
      from: "0x00000000000000000000000000000000000b0001"
      target: governor
      signature: setVotingDelay(uint256)
      args: ["1"]
`,
			wantErr: "only governance can call this function",
		},
		{
			name: "failure: expected state does not hold",
			scenario: `
holders:
  "0x00000000000000000000000000000000000b0001": "10"
steps:
  - propose:
      from: "0x00000000000000000000000000000000000b0001"
      actions:
        - target: governor
          signature: setVotingDelay(uint256)
          args: ["1"]
  - expect:
      proposal: 1
      state: Active
`,
			wantErr: "proposal 1 is Pending, want Active",
		},
		{
			name: "failure: expected error does not happen",
			scenario: `
steps:
  - transfer:
      from: token
      to: governor
      amount: "0"
    expectError: "insufficient"
`,
			wantErr: `no error, want "insufficient"`,
		},
		{
			name: "failure: unknown account",
			scenario: `
steps:
  - transfer:
      from: mallory
      to: governor
      amount: "1"
`,
			wantErr: `unknown account: "mallory"`,
		},
		{
			name: "failure: argument count",
			scenario: `
steps:
  - propose:
      from: governor
      actions:
        - target: governor
          signature: setVotingDelay(uint256)
`,
			wantErr: "setVotingDelay(uint256) takes 1 arguments, got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := testutils.Context(t)
			s, err := ParseScenario([]byte(tt.scenario))
			require.NoError(t, err)

			r, err := NewRunner(ctx, loadTestDeployment(t), s)
			require.NoError(t, err)

			report, err := r.Run(ctx)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.assert(t, r, report)
		})
	}
}

func Test_NewRunner(t *testing.T) {
	t.Parallel()

	ctx := testutils.Context(t)

	s, err := ParseScenario([]byte(`
accounts:
  governor: "0x00000000000000000000000000000000000b0001"
steps:
  - block: 2
`))
	require.NoError(t, err)
	_, err = NewRunner(ctx, loadTestDeployment(t), s)
	require.ErrorContains(t, err, `account "governor" shadows a contract`)

	s, err = ParseScenario([]byte(`
start: 7
holders:
  "0x00000000000000000000000000000000000b0001": "10"
funds:
  timelock: "1000"
steps:
  - block: 9
`))
	require.NoError(t, err)
	r, err := NewRunner(ctx, loadTestDeployment(t), s)
	require.NoError(t, err)

	d := r.Deployment()
	assert.Equal(t, uint64(8), d.Clock.Now())
	assert.Equal(t, uint256.NewInt(1000), d.Chain.BalanceOf(TimelockAddress))
	votes, err := d.Token.Votes().Lookup(common.HexToAddress("0xb0001"), 7)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(10), votes)
}

func Test_ParseScenario(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{
			name: "success",
			give: "steps:\n  - block: 3\n",
		},
		{
			name:    "failure: no steps",
			give:    "start: 1\n",
			wantErr: "Field validation for 'Steps' failed on the 'required' tag",
		},
		{
			name:    "failure: step without action",
			give:    "steps:\n  - expectError: boom\n",
			wantErr: "step 0: " + ErrInvalidStep.Error(),
		},
		{
			name:    "failure: step with two actions",
			give:    "steps:\n  - queue: {proposal: 1}\n    execute: {proposal: 1}\n",
			wantErr: "step 0: " + ErrInvalidStep.Error(),
		},
		{
			name:    "failure: invalid support",
			give:    "steps:\n  - vote: {from: alice, proposal: 1, support: maybe}\n",
			wantErr: "Field validation for 'Support' failed on the 'oneof' tag",
		},
		{
			name:    "failure: invalid account address",
			give:    "accounts:\n  alice: nope\nsteps:\n  - block: 3\n",
			wantErr: "failed on the 'eth_addr' tag",
		},
		{
			name:    "failure: malformed yaml",
			give:    "steps: [",
			wantErr: "failed to decode scenario",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseScenario([]byte(tt.give))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
