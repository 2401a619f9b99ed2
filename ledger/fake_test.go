package ledger

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/governor/sdk"
)

// fakeClock is a manually advanced block clock.
type fakeClock struct {
	now uint64
}

func (c *fakeClock) Now() uint64 { return c.now }

// fakeEmitter collects emitted events.
type fakeEmitter struct {
	events []sdk.Event
}

func (e *fakeEmitter) Emit(_ common.Address, event sdk.Event) {
	e.events = append(e.events, event)
}
