// Package timelock implements the delayed executor that holds the treasury and runs the actions
// of passed proposals.
//
// A transaction is identified by the digest of its target, value, signature, data and eta. The
// admin queues it at least Delay blocks ahead and may execute it once during
// [eta, eta+GracePeriod]. Changes to the delay and to the admin are calls the timelock makes to
// itself, so they go through the same queue.
package timelock

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcontractkit/governor/chain"
	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/internal/utils/safecast"
	"github.com/smartcontractkit/governor/sdk"
	"github.com/smartcontractkit/governor/types"
)

const transactionABI = `[{"type":"address"},{"type":"uint256"},{"type":"string"},{"type":"bytes"},{"type":"uint256"}]`

// Self-call signatures understood by Call.
const (
	SetDelaySignature        = "setDelay(uint256)"
	SetPendingAdminSignature = "setPendingAdmin(address)"
	AcceptAdminSignature     = "acceptAdmin()"
)

var (
	_ sdk.Executor      = (*Timelock)(nil)
	_ chain.Contract    = (*Timelock)(nil)
	_ chain.Snapshotter = (*Timelock)(nil)
)

// Timelock is a Compound style timelock deployed on a chain.Chain.
type Timelock struct {
	chain   *chain.Chain
	address common.Address

	admin        common.Address
	pendingAdmin common.Address
	config       Config

	queued map[common.Hash]bool
}

// New creates a timelock at address administered by admin. It is not deployed until Deploy.
func New(ch *chain.Chain, address, admin common.Address, config Config) (*Timelock, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timelock config: %w", err)
	}

	return &Timelock{
		chain:   ch,
		address: address,
		admin:   admin,
		config:  config,
		queued:  make(map[common.Hash]bool),
	}, nil
}

// Deploy registers the timelock on its chain.
func (t *Timelock) Deploy() error {
	return t.chain.Deploy(t.address, t)
}

func (t *Timelock) Address() common.Address      { return t.address }
func (t *Timelock) Admin() common.Address        { return t.admin }
func (t *Timelock) PendingAdmin() common.Address { return t.pendingAdmin }
func (t *Timelock) Delay() uint64                { return t.config.Delay }
func (t *Timelock) GracePeriod() uint64          { return t.config.GracePeriod }
func (t *Timelock) MinimumDelay() uint64         { return t.config.MinimumDelay }
func (t *Timelock) MaximumDelay() uint64         { return t.config.MaximumDelay }

// IsQueued reports whether the transaction with digest txHash is waiting for execution.
func (t *Timelock) IsQueued(txHash common.Hash) bool {
	return t.queued[txHash]
}

// HashTransaction returns keccak256(abi.encode(target, value, signature, data, eta)).
func (t *Timelock) HashTransaction(tx types.Transaction) (common.Hash, error) {
	return HashTransaction(tx)
}

// HashTransaction returns keccak256(abi.encode(target, value, signature, data, eta)).
func HashTransaction(tx types.Transaction) (common.Hash, error) {
	encoded, err := abiUtils.Encode(
		transactionABI,
		tx.Target,
		tx.ValueOrZero().ToBig(),
		tx.Signature,
		[]byte(tx.Data),
		new(big.Int).SetUint64(tx.Eta),
	)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

// CallData returns the payload dispatched for tx: its data when the signature is empty,
// otherwise the selector of the signature followed by the data.
func CallData(tx types.Transaction) []byte {
	if tx.Signature == "" {
		return append([]byte{}, tx.Data...)
	}

	return append(abiUtils.Selector(tx.Signature), tx.Data...)
}

// QueueTransaction schedules tx. Its eta must be at least Delay blocks away.
func (t *Timelock) QueueTransaction(ctx context.Context, caller common.Address, tx types.Transaction) (common.Hash, error) {
	var txHash common.Hash
	err := t.chain.Atomic(ctx, func(ctx context.Context) error {
		if caller != t.admin {
			return NewUnauthorizedError(caller, "admin")
		}

		earliest := t.chain.Clock().Now() + t.config.Delay
		if tx.Eta < earliest {
			return NewEtaTooEarlyError(tx.Eta, earliest)
		}

		var err error
		txHash, err = t.HashTransaction(tx)
		if err != nil {
			return err
		}

		t.queued[txHash] = true
		t.chain.Emit(t.address, QueueTransaction{
			TxHash:    txHash,
			Target:    tx.Target,
			Value:     tx.ValueOrZero().Clone(),
			Signature: tx.Signature,
			Data:      tx.Data,
			Eta:       tx.Eta,
		})
		sdk.LoggerFrom(ctx).Debugf("timelock %s queued %s for block %d", t.address, txHash, tx.Eta)

		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}

	return txHash, nil
}

// CancelTransaction unqueues tx, whether or not it was queued.
func (t *Timelock) CancelTransaction(ctx context.Context, caller common.Address, tx types.Transaction) error {
	return t.chain.Atomic(ctx, func(ctx context.Context) error {
		if caller != t.admin {
			return NewUnauthorizedError(caller, "admin")
		}

		txHash, err := t.HashTransaction(tx)
		if err != nil {
			return err
		}

		delete(t.queued, txHash)
		t.chain.Emit(t.address, CancelTransaction{
			TxHash:    txHash,
			Target:    tx.Target,
			Value:     tx.ValueOrZero().Clone(),
			Signature: tx.Signature,
			Data:      tx.Data,
			Eta:       tx.Eta,
		})
		sdk.LoggerFrom(ctx).Debugf("timelock %s canceled %s", t.address, txHash)

		return nil
	})
}

// ExecuteTransaction runs a queued tx whose eta has been reached and whose grace period has not
// lapsed, sending its value from the timelock. The queued flag is cleared before the call, and a
// failed call restores it along with everything else.
func (t *Timelock) ExecuteTransaction(ctx context.Context, caller common.Address, tx types.Transaction) ([]byte, error) {
	var ret []byte
	err := t.chain.Atomic(ctx, func(ctx context.Context) error {
		if caller != t.admin {
			return NewUnauthorizedError(caller, "admin")
		}

		txHash, err := t.HashTransaction(tx)
		if err != nil {
			return err
		}
		if !t.queued[txHash] {
			return fmt.Errorf("%w: %s", ErrTransactionNotQueued, txHash)
		}

		now := t.chain.Clock().Now()
		if now < tx.Eta {
			return NewTransactionNotReadyError(txHash, tx.Eta, now)
		}
		if expiry := tx.Eta + t.config.GracePeriod; now > expiry {
			return NewTransactionStaleError(txHash, expiry, now)
		}

		delete(t.queued, txHash)

		ret, err = t.chain.Call(ctx, chain.Message{
			From:  t.address,
			To:    tx.Target,
			Value: tx.ValueOrZero(),
			Data:  CallData(tx),
		})
		if err != nil {
			return NewExecutionRevertedError(txHash, err)
		}

		t.chain.Emit(t.address, ExecuteTransaction{
			TxHash:    txHash,
			Target:    tx.Target,
			Value:     tx.ValueOrZero().Clone(),
			Signature: tx.Signature,
			Data:      tx.Data,
			Eta:       tx.Eta,
		})
		sdk.LoggerFrom(ctx).Infof("timelock %s executed %s", t.address, txHash)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// AcceptAdmin makes the pending admin the admin.
func (t *Timelock) AcceptAdmin(ctx context.Context, caller common.Address) error {
	return t.chain.Atomic(ctx, func(ctx context.Context) error {
		return t.acceptAdmin(caller)
	})
}

// Call handles calls made to the timelock. Plain transfers are accepted so it can hold funds.
func (t *Timelock) Call(ctx context.Context, msg chain.Message) ([]byte, error) {
	if len(msg.Data) == 0 {
		return nil, nil
	}

	switch {
	case abiUtils.HasSelector(SetDelaySignature, msg.Data):
		if msg.From != t.address {
			return nil, NewUnauthorizedError(msg.From, "timelock")
		}
		args, err := abiUtils.DecodeCall(SetDelaySignature, msg.Data)
		if err != nil {
			return nil, err
		}
		delay, err := safecast.BigToUint64(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}

		return nil, t.setDelay(ctx, delay)
	case abiUtils.HasSelector(SetPendingAdminSignature, msg.Data):
		if msg.From != t.address {
			return nil, NewUnauthorizedError(msg.From, "timelock")
		}
		args, err := abiUtils.DecodeCall(SetPendingAdminSignature, msg.Data)
		if err != nil {
			return nil, err
		}
		t.pendingAdmin = args[0].(common.Address)
		t.chain.Emit(t.address, NewPendingAdmin{PendingAdmin: t.pendingAdmin})

		return nil, nil
	case abiUtils.HasSelector(AcceptAdminSignature, msg.Data):
		return nil, t.acceptAdmin(msg.From)
	default:
		return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, msg.Data[:min(len(msg.Data), abiUtils.SelectorLength)])
	}
}

func (t *Timelock) setDelay(ctx context.Context, delay uint64) error {
	if delay < t.config.MinimumDelay || delay > t.config.MaximumDelay {
		return NewDelayOutOfRangeError(delay, t.config.MinimumDelay, t.config.MaximumDelay)
	}

	t.config.Delay = delay
	t.chain.Emit(t.address, NewDelay{Delay: delay})
	sdk.LoggerFrom(ctx).Infof("timelock %s delay set to %d", t.address, delay)

	return nil
}

func (t *Timelock) acceptAdmin(caller common.Address) error {
	if caller != t.pendingAdmin || caller == (common.Address{}) {
		return NewUnauthorizedError(caller, "pending admin")
	}

	t.admin = caller
	t.pendingAdmin = common.Address{}
	t.chain.Emit(t.address, NewAdmin{Admin: caller})

	return nil
}

// Snapshot implements chain.Snapshotter.
func (t *Timelock) Snapshot() func() {
	admin, pendingAdmin, config := t.admin, t.pendingAdmin, t.config
	queued := make(map[common.Hash]bool, len(t.queued))
	for h, q := range t.queued {
		queued[h] = q
	}

	return func() {
		t.admin, t.pendingAdmin, t.config = admin, pendingAdmin, config
		t.queued = queued
	}
}
