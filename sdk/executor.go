package sdk

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/governor/types"
)

// Executor is the timelock surface the governor consumes. The governor must be the executor's
// admin for queue, execute and cancel to succeed.
type Executor interface {
	// Address is the account the executor dispatches calls from.
	Address() common.Address
	Admin() common.Address
	// Delay is the minimum number of blocks between queueing and execution.
	Delay() uint64
	// GracePeriod is the number of blocks after eta during which execution is still allowed.
	GracePeriod() uint64

	IsQueued(txHash common.Hash) bool
	HashTransaction(tx types.Transaction) (common.Hash, error)

	QueueTransaction(ctx context.Context, caller common.Address, tx types.Transaction) (common.Hash, error)
	ExecuteTransaction(ctx context.Context, caller common.Address, tx types.Transaction) ([]byte, error)
	CancelTransaction(ctx context.Context, caller common.Address, tx types.Transaction) error
}
