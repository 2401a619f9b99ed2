package ledger

import (
	"math"
	"sort"

	"github.com/holiman/uint256"
)

// ValueBits is the width of a checkpoint value. Wider values are rejected on write.
const ValueBits = 224

// MaxValue is the largest value a checkpoint can hold.
var MaxValue = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), ValueBits), uint256.NewInt(1))

// Checkpoint is the value of a subject from Key (inclusive) until the next checkpoint.
type Checkpoint struct {
	Key   uint64
	Value uint256.Int
}

// Checkpoints is an ordered trace of values keyed by strictly increasing timepoints. The zero
// value is an empty trace.
type Checkpoints struct {
	items []Checkpoint
}

// Len returns the number of checkpoints.
func (c *Checkpoints) Len() int {
	return len(c.items)
}

// At returns the checkpoint at position pos. It panics when pos is out of range.
func (c *Checkpoints) At(pos int) Checkpoint {
	return c.items[pos]
}

// Latest returns the most recent value, or zero for an empty trace.
func (c *Checkpoints) Latest() *uint256.Int {
	if len(c.items) == 0 {
		return new(uint256.Int)
	}

	return c.items[len(c.items)-1].Value.Clone()
}

// LatestCheckpoint returns the most recent checkpoint and whether one exists.
func (c *Checkpoints) LatestCheckpoint() (Checkpoint, bool) {
	if len(c.items) == 0 {
		return Checkpoint{}, false
	}

	return c.items[len(c.items)-1], true
}

// Push records value at key. A key equal to the latest key updates that checkpoint in place, a
// greater key appends, a smaller key fails. It returns the previous and the new latest value.
func (c *Checkpoints) Push(key uint64, value *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if value.BitLen() > ValueBits {
		return nil, nil, NewValueOverflowError(value)
	}

	prev := c.Latest()
	if n := len(c.items); n > 0 {
		last := &c.items[n-1]
		if last.Key > key {
			return nil, nil, ErrUnorderedInsertion
		}
		if last.Key == key {
			last.Value.Set(value)
			return prev, value.Clone(), nil
		}
	}

	c.items = append(c.items, Checkpoint{Key: key, Value: *value.Clone()})

	return prev, value.Clone(), nil
}

// UpperLookup returns the value of the last checkpoint with a key lower or equal to key, or zero
// if there is none.
func (c *Checkpoints) UpperLookup(key uint64) *uint256.Int {
	pos := c.upperBinaryLookup(key, 0, len(c.items))
	if pos == 0 {
		return new(uint256.Int)
	}

	return c.items[pos-1].Value.Clone()
}

// UpperLookupRecent is UpperLookup optimised for keys close to the end of the trace, which is where
// most governance lookups land. It checks the latest checkpoint, then narrows the search to the
// last sqrt(n) checkpoints before falling back to a binary search.
func (c *Checkpoints) UpperLookupRecent(key uint64) *uint256.Int {
	n := len(c.items)
	if n == 0 {
		return new(uint256.Int)
	}
	if c.items[n-1].Key <= key {
		return c.items[n-1].Value.Clone()
	}

	low, high := 0, n
	if n > 5 {
		mid := n - int(math.Sqrt(float64(n)))
		if key < c.items[mid].Key {
			high = mid
		} else {
			low = mid + 1
		}
	}

	pos := c.upperBinaryLookup(key, low, high)
	if pos == 0 {
		return new(uint256.Int)
	}

	return c.items[pos-1].Value.Clone()
}

// upperBinaryLookup returns the index of the first checkpoint in [low, high) with a key strictly
// greater than key, or high if there is none.
func (c *Checkpoints) upperBinaryLookup(key uint64, low, high int) int {
	return low + sort.Search(high-low, func(i int) bool {
		return c.items[low+i].Key > key
	})
}

// Snapshot returns a function that undoes every Push made after it.
func (c *Checkpoints) Snapshot() func() {
	m := c.mark()
	return func() { c.reset(m) }
}

// mark captures what is needed to undo every Push made after it.
type mark struct {
	n    int
	last uint256.Int
}

func (c *Checkpoints) mark() mark {
	m := mark{n: len(c.items)}
	if m.n > 0 {
		m.last = c.items[m.n-1].Value
	}

	return m
}

func (c *Checkpoints) reset(m mark) {
	for i := m.n; i < len(c.items); i++ {
		c.items[i] = Checkpoint{}
	}
	c.items = c.items[:m.n]
	if m.n > 0 {
		c.items[m.n-1].Value = m.last
	}
}
