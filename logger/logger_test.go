package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PeerDB-io/wormcell/shared"
	"github.com/PeerDB-io/wormcell/shared/concurrency"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestHandlerAddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := context.WithValue(context.Background(), shared.RunIDKey, "run-1")
	log.With(slog.String("component", "test")).InfoContext(ctx, "hello")

	records := decodeRecords(t, &buf)
	require.Len(t, records, 1)
	require.Equal(t, "run-1", records[0][string(shared.RunIDKey)])
	require.Equal(t, "test", records[0]["component"])
	require.NotContains(t, records[0], string(shared.CellNameKey))
}

func TestNewHandlerOptions(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"INFO", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			require.Equal(t, tc.expected, NewHandlerOptions(tc.level).Level.Level())
		})
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(slog.NewJSONHandler(&buf, NewHandlerOptions("DEBUG"))))
	ctx := context.WithValue(context.Background(), shared.RunIDKey, "run-2")

	cell := concurrency.NewSharedCell(concurrency.WithObserver[int](NewLogObserver(ctx, log, "config")))
	_, _ = cell.Get()
	require.NoError(t, cell.Set(1))
	require.Error(t, cell.Set(2))

	records := decodeRecords(t, &buf)
	require.Len(t, records, 3)
	require.Equal(t, "cell read before set", records[0]["msg"])
	require.Equal(t, "cell set", records[1]["msg"])
	require.Equal(t, "rejected write to cell", records[2]["msg"])
	require.Equal(t, "WARN", records[2]["level"])
	for _, record := range records {
		require.Equal(t, "config", record[string(shared.CellNameKey)])
		require.Equal(t, "run-2", record[string(shared.RunIDKey)])
	}
}
