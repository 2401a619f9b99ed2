package chain

import (
	"fmt"
	"sync/atomic"
)

// Clock is the block height shared by every contract on a Chain.
type Clock struct {
	height atomic.Uint64
}

// NewClock creates a clock starting at height.
func NewClock(height uint64) *Clock {
	c := &Clock{}
	c.height.Store(height)

	return c
}

// Now returns the current block height.
func (c *Clock) Now() uint64 {
	return c.height.Load()
}

// Mine advances the clock by n blocks and returns the new height.
func (c *Clock) Mine(n uint64) uint64 {
	return c.height.Add(n)
}

// Set moves the clock to height. The clock never goes backwards.
func (c *Clock) Set(height uint64) error {
	for {
		cur := c.height.Load()
		if height < cur {
			return fmt.Errorf("%w: %d < %d", ErrClockRewind, height, cur)
		}
		if c.height.CompareAndSwap(cur, height) {
			return nil
		}
	}
}
