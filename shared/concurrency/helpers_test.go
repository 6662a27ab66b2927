package concurrency

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	sets           atomic.Int64
	doubleSets     atomic.Int64
	readsBeforeSet atomic.Int64
}

func (o *countingObserver) CellSet()       { o.sets.Add(1) }
func (o *countingObserver) DoubleSet()     { o.doubleSets.Add(1) }
func (o *countingObserver) ReadBeforeSet() { o.readsBeforeSet.Add(1) }

// waitCollected runs the GC until collected reports true.
func waitCollected(t *testing.T, collected *atomic.Bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		runtime.GC()
		return collected.Load()
	}, 10*time.Second, 10*time.Millisecond, "cell was never collected")
}

// trackCollection flips collected once ptr is unreachable.
func trackCollection[C any](ptr *C, collected *atomic.Bool) {
	runtime.AddCleanup(ptr, func(flag *atomic.Bool) { flag.Store(true) }, collected)
}
