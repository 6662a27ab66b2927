package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/PeerDB-io/wormcell/shared/concurrency"
	"github.com/PeerDB-io/wormcell/shared/exceptions"
)

type RaceOptions struct {
	Writers uint
	Readers uint
	Strict  bool
}

type RaceResult struct {
	Winner     int
	DoubleSets int64
	Counters   map[string]map[string]int64
}

// setStrict uses the panicking entry point and turns a WORM cell panic back into its error.
func setStrict(cell *concurrency.SharedCell[int], v int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && exceptions.IsWormCellError(e) {
				err = e
				return
			}
			panic(r)
		}
	}()
	cell.MustSet(v)
	return nil
}

// RaceMain has Writers goroutines race to set one shared cell while Readers handles,
// all taken before the race starts, wait for the winner's value.
func RaceMain(ctx context.Context, opts *RaceOptions) (*RaceResult, error) {
	if opts.Writers == 0 {
		return nil, errors.New("race needs at least one writer")
	}

	metrics, err := setupRunMetrics()
	if err != nil {
		return nil, err
	}
	defer metrics.close(ctx)

	cell := concurrency.NewSharedCell(concurrency.WithObserver[int](metrics.om.NewCellObserver(ctx, "race")))
	readers := make([]concurrency.SharedReader[int], opts.Readers)
	for i := range readers {
		readers[i] = cell.Reader()
	}
	slog.InfoContext(ctx, "starting race",
		slog.Uint64("writers", uint64(opts.Writers)), slog.Uint64("readers", uint64(opts.Readers)), slog.Bool("strict", opts.Strict))

	var won, doubleSets atomic.Int64
	observed := make([]int, len(readers))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, reader := range readers {
		group.Go(func() error {
			for {
				v, err := reader.Get()
				if err == nil {
					observed[i] = v
					return nil
				}
				if !errors.Is(err, exceptions.ErrReadBeforeSet) {
					return err
				}
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				runtime.Gosched()
			}
		})
	}
	for i := range int(opts.Writers) {
		group.Go(func() error {
			var err error
			if opts.Strict {
				err = setStrict(cell, i)
			} else {
				err = cell.Set(i)
			}
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, exceptions.ErrDoubleSet):
				doubleSets.Add(1)
			default:
				return fmt.Errorf("writer %d: %w", i, err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if won.Load() != 1 {
		return nil, fmt.Errorf("expected exactly one winning writer, got %d", won.Load())
	}
	winner, err := cell.Get()
	if err != nil {
		return nil, fmt.Errorf("cell empty after race: %w", err)
	}
	for i, v := range observed {
		if v != winner {
			return nil, fmt.Errorf("reader %d observed %d, winner was %d", i, v, winner)
		}
	}
	slog.InfoContext(ctx, "race finished", slog.Int("winner", winner), slog.Int64("doubleSets", doubleSets.Load()))

	counters, err := metrics.report(ctx)
	if err != nil {
		return nil, err
	}
	return &RaceResult{
		Winner:     winner,
		DoubleSets: doubleSets.Load(),
		Counters:   counters,
	}, nil
}
