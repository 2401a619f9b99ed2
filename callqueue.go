package governor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gammazero/deque"
)

// CallQueue is the FIFO of governor self-calls authorized for the batch being executed. Each
// entry is the keccak256 of the full calldata of one call. The zero value is an empty queue.
type CallQueue struct {
	digests deque.Deque[common.Hash]
}

// Push authorizes one more call.
func (q *CallQueue) Push(digest common.Hash) {
	q.digests.PushBack(digest)
}

// Pop consumes the next authorized call, which must be digest.
func (q *CallQueue) Pop(digest common.Hash) error {
	if q.digests.Len() == 0 {
		return ErrGovernanceCallQueueEmpty
	}

	next := q.digests.PopFront()
	if next != digest {
		return fmt.Errorf("%w: expected %s, got %s", ErrGovernanceCallMismatch, next, digest)
	}

	return nil
}

// Len returns the number of authorized calls left.
func (q *CallQueue) Len() int {
	return q.digests.Len()
}

// Clear drops every remaining authorization.
func (q *CallQueue) Clear() {
	q.digests.Clear()
}

// Digests returns the queued digests in order.
func (q *CallQueue) Digests() []common.Hash {
	digests := make([]common.Hash, q.digests.Len())
	for i := range digests {
		digests[i] = q.digests.At(i)
	}

	return digests
}

func (q *CallQueue) restore(digests []common.Hash) {
	q.digests.Clear()
	for _, d := range digests {
		q.digests.PushBack(d)
	}
}
