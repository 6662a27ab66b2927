package concurrency

import (
	"sync/atomic"

	"github.com/PeerDB-io/wormcell/shared/exceptions"
)

// SharedCell is a thread-safe value holder that can be set once and read many times.
// Once Set succeeds, every current and future Get returns the set value.
//
// None of its methods block. The zero value is an empty cell.
type SharedCell[T any] struct {
	// nil until the winning Set publishes its value; never changes afterwards
	value atomic.Pointer[T]
	opts  cellOptions[T]
}

func NewSharedCell[T any](opts ...CellOption[T]) *SharedCell[T] {
	return &SharedCell[T]{opts: newCellOptions(opts)}
}

// Set publishes v if no other Set has won yet. Concurrent callers race on a single
// compare-and-swap: exactly one succeeds, the others get exceptions.ErrDoubleSet and
// their values are never visible to readers.
func (c *SharedCell[T]) Set(v T) error {
	if c.value.Load() != nil || !c.value.CompareAndSwap(nil, &v) {
		c.opts.observeDoubleSet()
		return exceptions.ErrDoubleSet
	}
	registerCleanup(c, &c.opts, v)
	c.opts.observeSet()
	return nil
}

func (c *SharedCell[T]) MustSet(v T) {
	if err := c.Set(v); err != nil {
		panic(err)
	}
}

// Get returns the published value, or exceptions.ErrReadBeforeSet if Set has not won yet.
// The load synchronizes with the winning Set, so a value is never observed partially written.
func (c *SharedCell[T]) Get() (T, error) {
	p := c.value.Load()
	if p == nil {
		c.opts.observeReadBeforeSet()
		var zero T
		return zero, exceptions.ErrReadBeforeSet
	}
	return *p, nil
}

func (c *SharedCell[T]) MustGet() T {
	v, err := c.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// IsSet returns true if the value has been set. The answer may be stale by the time
// it is used; use Get to read the value.
func (c *SharedCell[T]) IsSet() bool {
	return c.value.Load() != nil
}

// Reader returns a handle observing this cell. It may be taken before Set, and it
// keeps the cell alive for as long as the handle is reachable.
func (c *SharedCell[T]) Reader() SharedReader[T] {
	return SharedReader[T]{cell: c}
}

// SharedReader is a read-only handle to a SharedCell, safe to copy and use from any goroutine.
type SharedReader[T any] struct {
	cell *SharedCell[T]
}

func (r SharedReader[T]) Get() (T, error) {
	if r.cell == nil {
		var zero T
		return zero, exceptions.ErrReadBeforeSet
	}
	return r.cell.Get()
}

func (r SharedReader[T]) MustGet() T {
	v, err := r.Get()
	if err != nil {
		panic(err)
	}
	return v
}

func (r SharedReader[T]) IsSet() bool {
	return r.cell != nil && r.cell.IsSet()
}
