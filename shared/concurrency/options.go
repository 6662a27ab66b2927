package concurrency

import "runtime"

// Observer is notified about state transitions and misuse of a cell.
// Implementations must be safe for concurrent use when attached to a SharedCell.
type Observer interface {
	CellSet()
	DoubleSet()
	ReadBeforeSet()
}

type CellOption[T any] func(*cellOptions[T])

type cellOptions[T any] struct {
	cleanup  func(T)
	observer Observer
}

// WithCleanup registers fn to run with the stored value once the cell and every
// reader referencing it have become unreachable. fn never runs for a cell that was
// not set. Neither fn nor the value may reference the cell, or it is never collected.
func WithCleanup[T any](fn func(T)) CellOption[T] {
	return func(o *cellOptions[T]) {
		o.cleanup = fn
	}
}

func WithObserver[T any](observer Observer) CellOption[T] {
	return func(o *cellOptions[T]) {
		o.observer = observer
	}
}

func newCellOptions[T any](opts []CellOption[T]) cellOptions[T] {
	var o cellOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// REQUIRES: called once, by the caller that moved the cell from empty to set.
func registerCleanup[C any, T any](cell *C, o *cellOptions[T], v T) {
	if o.cleanup != nil {
		runtime.AddCleanup(cell, o.cleanup, v)
	}
}

func (o *cellOptions[T]) observeSet() {
	if o.observer != nil {
		o.observer.CellSet()
	}
}

func (o *cellOptions[T]) observeDoubleSet() {
	if o.observer != nil {
		o.observer.DoubleSet()
	}
}

func (o *cellOptions[T]) observeReadBeforeSet() {
	if o.observer != nil {
		o.observer.ReadBeforeSet()
	}
}

type multiObserver []Observer

// JoinObservers fans every notification out to all non-nil observers.
func JoinObservers(observers ...Observer) Observer {
	joined := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			joined = append(joined, o)
		}
	}
	return joined
}

func (m multiObserver) CellSet() {
	for _, o := range m {
		o.CellSet()
	}
}

func (m multiObserver) DoubleSet() {
	for _, o := range m {
		o.DoubleSet()
	}
}

func (m multiObserver) ReadBeforeSet() {
	for _, o := range m {
		o.ReadBeforeSet()
	}
}
