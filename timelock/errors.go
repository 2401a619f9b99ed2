package timelock

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrTransactionNotQueued is returned when executing a transaction that is not queued.
	ErrTransactionNotQueued = errors.New("transaction hasn't been queued")

	// ErrUnknownSelector is returned when the timelock is called with data it does not understand.
	ErrUnknownSelector = errors.New("unknown function selector")
)

// UnauthorizedError is returned when caller does not hold the role a function requires.
type UnauthorizedError struct {
	Caller common.Address
	Role   string
}

// NewUnauthorizedError creates a new UnauthorizedError.
func NewUnauthorizedError(caller common.Address, role string) *UnauthorizedError {
	return &UnauthorizedError{Caller: caller, Role: role}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("call must come from %s, got %s", e.Role, e.Caller)
}

// EtaTooEarlyError is returned when a transaction is queued with an eta before now + delay.
type EtaTooEarlyError struct {
	Eta      uint64
	Earliest uint64
}

// NewEtaTooEarlyError creates a new EtaTooEarlyError.
func NewEtaTooEarlyError(eta, earliest uint64) *EtaTooEarlyError {
	return &EtaTooEarlyError{Eta: eta, Earliest: earliest}
}

func (e *EtaTooEarlyError) Error() string {
	return fmt.Sprintf("estimated execution block %d must satisfy delay, earliest is %d", e.Eta, e.Earliest)
}

// TransactionNotReadyError is returned when a transaction is executed before its eta.
type TransactionNotReadyError struct {
	TxHash common.Hash
	Eta    uint64
	Now    uint64
}

// NewTransactionNotReadyError creates a new TransactionNotReadyError.
func NewTransactionNotReadyError(txHash common.Hash, eta, now uint64) *TransactionNotReadyError {
	return &TransactionNotReadyError{TxHash: txHash, Eta: eta, Now: now}
}

func (e *TransactionNotReadyError) Error() string {
	return fmt.Sprintf("transaction %s hasn't surpassed time lock: eta %d, now %d", e.TxHash, e.Eta, e.Now)
}

// TransactionStaleError is returned when a transaction is executed after its grace period.
type TransactionStaleError struct {
	TxHash    common.Hash
	ExpiredAt uint64
	Now       uint64
}

// NewTransactionStaleError creates a new TransactionStaleError.
func NewTransactionStaleError(txHash common.Hash, expiredAt, now uint64) *TransactionStaleError {
	return &TransactionStaleError{TxHash: txHash, ExpiredAt: expiredAt, Now: now}
}

func (e *TransactionStaleError) Error() string {
	return fmt.Sprintf("transaction %s is stale: expired at %d, now %d", e.TxHash, e.ExpiredAt, e.Now)
}

// ExecutionRevertedError wraps the failure of the call a transaction dispatched.
type ExecutionRevertedError struct {
	TxHash common.Hash
	Err    error
}

// NewExecutionRevertedError creates a new ExecutionRevertedError.
func NewExecutionRevertedError(txHash common.Hash, err error) *ExecutionRevertedError {
	return &ExecutionRevertedError{TxHash: txHash, Err: err}
}

func (e *ExecutionRevertedError) Error() string {
	return fmt.Sprintf("transaction %s execution reverted: %v", e.TxHash, e.Err)
}

func (e *ExecutionRevertedError) Unwrap() error {
	return e.Err
}

// DelayOutOfRangeError is returned when a delay falls outside [Minimum, Maximum].
type DelayOutOfRangeError struct {
	Delay   uint64
	Minimum uint64
	Maximum uint64
}

// NewDelayOutOfRangeError creates a new DelayOutOfRangeError.
func NewDelayOutOfRangeError(delay, minimum, maximum uint64) *DelayOutOfRangeError {
	return &DelayOutOfRangeError{Delay: delay, Minimum: minimum, Maximum: maximum}
}

func (e *DelayOutOfRangeError) Error() string {
	return fmt.Sprintf("delay %d out of range [%d, %d]", e.Delay, e.Minimum, e.Maximum)
}
