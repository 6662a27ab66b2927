package concurrency

import (
	"github.com/PeerDB-io/wormcell/shared/exceptions"
)

// Cell holds a value that can be set exactly once and read any number of times.
// Set and Get return errors on misuse, MustSet and MustGet panic instead.
//
// Cell is not safe for concurrent use; callers sharing it between goroutines
// must synchronize externally or use SharedCell. The zero value is an empty cell.
// A Cell must not be copied after first use.
type Cell[T any] struct {
	value T
	set   bool
	opts  cellOptions[T]
}

func NewCell[T any](opts ...CellOption[T]) *Cell[T] {
	return &Cell[T]{opts: newCellOptions(opts)}
}

// Set stores v if the cell is empty. Otherwise the cell is left untouched and
// exceptions.ErrDoubleSet is returned.
func (c *Cell[T]) Set(v T) error {
	if c.set {
		c.opts.observeDoubleSet()
		return exceptions.ErrDoubleSet
	}
	c.value = v
	c.set = true
	registerCleanup(c, &c.opts, v)
	c.opts.observeSet()
	return nil
}

func (c *Cell[T]) MustSet(v T) {
	if err := c.Set(v); err != nil {
		panic(err)
	}
}

// Get returns the stored value, or exceptions.ErrReadBeforeSet if the cell is empty.
func (c *Cell[T]) Get() (T, error) {
	if !c.set {
		c.opts.observeReadBeforeSet()
		var zero T
		return zero, exceptions.ErrReadBeforeSet
	}
	return c.value, nil
}

func (c *Cell[T]) MustGet() T {
	v, err := c.Get()
	if err != nil {
		panic(err)
	}
	return v
}

func (c *Cell[T]) IsSet() bool {
	return c.set
}

// Reader returns a handle observing this cell. It may be taken before Set.
func (c *Cell[T]) Reader() CellReader[T] {
	return CellReader[T]{cell: c}
}

// CellReader is a read-only handle to a Cell. Copies are independent handles to the
// same cell and share its concurrency restrictions.
type CellReader[T any] struct {
	cell *Cell[T]
}

func (r CellReader[T]) Get() (T, error) {
	if r.cell == nil {
		var zero T
		return zero, exceptions.ErrReadBeforeSet
	}
	return r.cell.Get()
}

func (r CellReader[T]) MustGet() T {
	v, err := r.Get()
	if err != nil {
		panic(err)
	}
	return v
}

func (r CellReader[T]) IsSet() bool {
	return r.cell != nil && r.cell.IsSet()
}
