package concurrency

import (
	"slices"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/PeerDB-io/wormcell/shared/exceptions"
)

// CellMap is a registry of named SharedCells. Readers for a name can be handed out
// before anything has been set under it; the cell is created on first use.
type CellMap[V any] struct {
	// name -> cell, entries are never removed or replaced
	cells cmap.ConcurrentMap[string, *SharedCell[V]]
	opts  []CellOption[V]
	// reports reads of names that have no cell yet
	missing cellOptions[V]
}

// NewCellMap returns an empty registry. opts are applied to every cell it creates,
// and its observer also sees reads of names that were never registered.
func NewCellMap[V any](opts ...CellOption[V]) *CellMap[V] {
	return &CellMap[V]{
		cells:   cmap.New[*SharedCell[V]](),
		opts:    opts,
		missing: newCellOptions(opts),
	}
}

// Cell returns the cell registered under key, creating it if needed.
// Concurrent callers asking for the same key get the same cell.
func (m *CellMap[V]) Cell(key string) *SharedCell[V] {
	if cell, ok := m.cells.Get(key); ok {
		return cell
	}
	return m.cells.Upsert(key, nil, func(exist bool, valueInMap *SharedCell[V], _ *SharedCell[V]) *SharedCell[V] {
		if exist {
			return valueInMap
		}
		return NewSharedCell(m.opts...)
	})
}

func (m *CellMap[V]) Reader(key string) SharedReader[V] {
	return m.Cell(key).Reader()
}

func (m *CellMap[V]) Set(key string, v V) error {
	return m.Cell(key).Set(v)
}

// Get reads the value under key without registering a cell for it.
func (m *CellMap[V]) Get(key string) (V, error) {
	cell, ok := m.cells.Get(key)
	if !ok {
		m.missing.observeReadBeforeSet()
		var zero V
		return zero, exceptions.ErrReadBeforeSet
	}
	return cell.Get()
}

// Pending returns the sorted names whose cells have not been set yet.
func (m *CellMap[V]) Pending() []string {
	var pending []string
	m.cells.IterCb(func(key string, cell *SharedCell[V]) {
		if !cell.IsSet() {
			pending = append(pending, key)
		}
	})
	slices.Sort(pending)
	return pending
}

func (m *CellMap[V]) Keys() []string {
	keys := m.cells.Keys()
	slices.Sort(keys)
	return keys
}

func (m *CellMap[V]) Len() int {
	return m.cells.Count()
}
