package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/PeerDB-io/wormcell/shared/concurrency"
)

type RegistryOptions struct {
	// "name=value" binds name, a bare "name" only registers a reader for it
	Entries []string
}

type RegistryResult struct {
	Values  map[string]string
	Pending []string
}

// Lines renders bound names as "name=value" followed by pending names, each group sorted.
func (r *RegistryResult) Lines() []string {
	lines := make([]string, 0, len(r.Values)+len(r.Pending))
	for _, name := range slices.Sorted(maps.Keys(r.Values)) {
		lines = append(lines, name+"="+r.Values[name])
	}
	for _, name := range r.Pending {
		lines = append(lines, name+" (pending)")
	}
	return lines
}

func RegistryMain(ctx context.Context, opts *RegistryOptions) (*RegistryResult, error) {
	registry := concurrency.NewCellMap[string]()

	readers := make(map[string]concurrency.SharedReader[string], len(opts.Entries))
	assignments := make(map[string]string)
	for _, entry := range opts.Entries {
		name, value, hasValue := strings.Cut(entry, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid registry entry %q", entry)
		}
		readers[name] = registry.Reader(name)
		if hasValue {
			if _, dup := assignments[name]; dup {
				return nil, fmt.Errorf("registry entry %q is bound twice", name)
			}
			assignments[name] = value
		}
	}
	slog.InfoContext(ctx, "registry handles created", slog.Any("pending", registry.Pending()))

	var group errgroup.Group
	for name, value := range assignments {
		group.Go(func() error {
			if err := registry.Set(name, value); err != nil {
				return fmt.Errorf("failed to bind %s: %w", name, err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &RegistryResult{
		Values:  make(map[string]string, len(assignments)),
		Pending: registry.Pending(),
	}
	for name, reader := range readers {
		if v, err := reader.Get(); err == nil {
			result.Values[name] = v
		}
	}
	slog.InfoContext(ctx, "registry bound",
		slog.Int("bound", len(result.Values)), slog.Any("pending", result.Pending))
	return result, nil
}
