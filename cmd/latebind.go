package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PeerDB-io/wormcell/logger"
	"github.com/PeerDB-io/wormcell/shared/concurrency"
	"github.com/PeerDB-io/wormcell/shared/exceptions"
)

type LateBindOptions struct {
	Value   int
	Handles uint
	Strict  bool
}

// LateBindMain hands out reader handles of a single-owner cell before its value exists,
// sets it once, and returns what every handle reads afterwards.
func LateBindMain(ctx context.Context, opts *LateBindOptions) ([]int, error) {
	metrics, err := setupRunMetrics()
	if err != nil {
		return nil, err
	}
	defer metrics.close(ctx)

	cell := concurrency.NewCell(concurrency.WithObserver[int](concurrency.JoinObservers(
		metrics.om.NewCellObserver(ctx, "latebind"),
		logger.NewLogObserver(ctx, slog.Default(), "latebind"),
	)))

	handles := make([]concurrency.CellReader[int], opts.Handles)
	for i := range handles {
		handles[i] = cell.Reader()
		if _, err := handles[i].Get(); !errors.Is(err, exceptions.ErrReadBeforeSet) {
			return nil, fmt.Errorf("handle %d: expected read before set, got %v", i, err)
		}
	}

	if opts.Strict {
		cell.MustSet(opts.Value)
	} else if err := cell.Set(opts.Value); err != nil {
		return nil, err
	}
	if err := cell.Set(opts.Value + 1); !errors.Is(err, exceptions.ErrDoubleSet) {
		return nil, fmt.Errorf("expected second set to be rejected, got %v", err)
	}

	values := make([]int, 0, len(handles)+1)
	for _, h := range append(handles, cell.Reader()) {
		if opts.Strict {
			values = append(values, h.MustGet())
			continue
		}
		v, err := h.Get()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	slog.InfoContext(ctx, "late-bound value observed", slog.Int("handles", len(values)), slog.Int("value", opts.Value))

	if _, err := metrics.report(ctx); err != nil {
		return nil, err
	}
	return values, nil
}
