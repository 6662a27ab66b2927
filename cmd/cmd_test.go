package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PeerDB-io/wormcell/otel_metrics"
	"github.com/PeerDB-io/wormcell/shared"
)

func TestRaceMain(t *testing.T) {
	t.Setenv("WORMCELL_OTEL_METRICS_NAMESPACE", "wormcell_")
	for _, strict := range []bool{false, true} {
		result, err := RaceMain(t.Context(), &RaceOptions{Writers: 16, Readers: 8, Strict: strict})
		require.NoError(t, err)
		require.GreaterOrEqual(t, result.Winner, 0)
		require.Less(t, result.Winner, 16)
		require.Equal(t, int64(15), result.DoubleSets)
		require.Equal(t, int64(1), result.Counters[otel_metrics.BuildMetricName(otel_metrics.CellSetsCounterName)]["race"])
		require.Equal(t, int64(15), result.Counters[otel_metrics.BuildMetricName(otel_metrics.DoubleSetsCounterName)]["race"])
		require.Contains(t, result.Counters, "wormcell_worm_cell_sets")
	}
}

func TestRaceMainWithoutReaders(t *testing.T) {
	result, err := RaceMain(t.Context(), &RaceOptions{Writers: 1})
	require.NoError(t, err)
	require.Equal(t, 0, result.Winner)
	require.Zero(t, result.DoubleSets)
}

func TestRaceMainNeedsWriters(t *testing.T) {
	_, err := RaceMain(t.Context(), &RaceOptions{Readers: 4})
	require.Error(t, err)
}

func TestLateBindMain(t *testing.T) {
	for _, strict := range []bool{false, true} {
		values, err := LateBindMain(t.Context(), &LateBindOptions{Value: 42, Handles: 3, Strict: strict})
		require.NoError(t, err)
		require.Equal(t, []int{42, 42, 42, 42}, values)
	}
}

func TestRegistryMain(t *testing.T) {
	result, err := RegistryMain(t.Context(), &RegistryOptions{
		Entries: []string{"dsn=postgres://localhost", "region=eu", "token"},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"dsn": "postgres://localhost", "region": "eu"}, result.Values)
	require.Equal(t, []string{"token"}, result.Pending)
}

func TestRegistryResultLinesSorted(t *testing.T) {
	for range 20 {
		result, err := RegistryMain(t.Context(), &RegistryOptions{
			Entries: []string{"zone=b", "token", "dsn=postgres://localhost", "apikey", "region=eu"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{
			"dsn=postgres://localhost",
			"region=eu",
			"zone=b",
			"apikey (pending)",
			"token (pending)",
		}, result.Lines())
	}
}

func TestRegistryMainRejectsBadEntries(t *testing.T) {
	_, err := RegistryMain(t.Context(), &RegistryOptions{Entries: []string{"=value"}})
	require.Error(t, err)

	_, err = RegistryMain(t.Context(), &RegistryOptions{Entries: []string{"a=1", "a=2"}})
	require.ErrorContains(t, err, "bound twice")
}

func TestWithRunID(t *testing.T) {
	first, ok := WithRunID(context.Background()).Value(shared.RunIDKey).(string)
	require.True(t, ok)
	second, _ := WithRunID(context.Background()).Value(shared.RunIDKey).(string)
	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
}
