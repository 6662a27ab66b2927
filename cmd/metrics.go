package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/PeerDB-io/wormcell/otel_metrics"
	"github.com/PeerDB-io/wormcell/shared"
)

// WithRunID tags ctx with a fresh run id picked up by the logger handler.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, shared.RunIDKey, uuid.NewString())
}

type runMetrics struct {
	reader *sdkmetric.ManualReader
	om     *otel_metrics.OtelManager
}

func setupRunMetrics() (*runMetrics, error) {
	reader := sdkmetric.NewManualReader()
	om, err := otel_metrics.NewOtelManager("wormcell-cli", reader)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}
	return &runMetrics{reader: reader, om: om}, nil
}

func (m *runMetrics) close(ctx context.Context) {
	if err := m.om.Close(ctx); err != nil {
		slog.WarnContext(ctx, "failed to shut down meter provider", slog.Any("error", err))
	}
}

// report logs every collected counter.
func (m *runMetrics) report(ctx context.Context) (map[string]map[string]int64, error) {
	counters, err := otel_metrics.CollectCounters(ctx, m.reader)
	if err != nil {
		return nil, err
	}
	for name, byCell := range counters {
		for cellName, value := range byCell {
			slog.InfoContext(ctx, "cell metric",
				slog.String("metric", name), slog.String(otel_metrics.CellNameKey, cellName), slog.Int64("value", value))
		}
	}
	return counters, nil
}
