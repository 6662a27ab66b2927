package concurrency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinObservers(t *testing.T) {
	first, second := &countingObserver{}, &countingObserver{}
	cell := NewCell(WithObserver[int](JoinObservers(first, nil, second)))

	_, _ = cell.Get()
	cell.MustSet(1)
	_ = cell.Set(2)

	for _, o := range []*countingObserver{first, second} {
		require.Equal(t, int64(1), o.sets.Load())
		require.Equal(t, int64(1), o.doubleSets.Load())
		require.Equal(t, int64(1), o.readsBeforeSet.Load())
	}
}
