package otel_metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/PeerDB-io/wormcell/wormenv"
)

const (
	CellSetsCounterName       = "worm_cell_sets"
	DoubleSetsCounterName     = "worm_cell_double_sets"
	ReadsBeforeSetCounterName = "worm_cell_reads_before_set"
)

const CellNameKey = "cellName"

type Metrics struct {
	CellSetsCounter       metric.Int64Counter
	DoubleSetsCounter     metric.Int64Counter
	ReadsBeforeSetCounter metric.Int64Counter
}

func BuildMetricName(baseName string) string {
	return wormenv.WormcellOtelMetricsNamespace() + baseName
}

type OtelManager struct {
	MetricsProvider    *sdkmetric.MeterProvider
	Meter              metric.Meter
	Int64CountersCache map[string]metric.Int64Counter
	Metrics            Metrics
}

// NewOtelManager builds a meter provider exporting through reader. Callers pick the
// reader: a ManualReader for one-shot summaries, a PeriodicReader for an exporter.
func NewOtelManager(serviceName string, reader sdkmetric.Reader) (*OtelManager, error) {
	otelResource, err := newOtelResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenTelemetry resource: %w", err)
	}
	metricsProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(otelResource),
	)

	otelManager := OtelManager{
		MetricsProvider:    metricsProvider,
		Meter:              metricsProvider.Meter("io.peerdb.wormcell"),
		Int64CountersCache: make(map[string]metric.Int64Counter),
	}
	if err := otelManager.setupMetrics(); err != nil {
		return nil, err
	}
	return &otelManager, nil
}

func (om *OtelManager) Close(ctx context.Context) error {
	return om.MetricsProvider.Shutdown(ctx)
}

func getOrInitMetric[M any, O any](
	cons func(metric.Meter, string, ...O) (M, error),
	meter metric.Meter,
	cache map[string]M,
	name string,
	opts ...O,
) (M, error) {
	instrument, ok := cache[name]
	if !ok {
		var err error
		instrument, err = cons(meter, name, opts...)
		if err != nil {
			var none M
			return none, err
		}
		cache[name] = instrument
	}
	return instrument, nil
}

func (om *OtelManager) GetOrInitInt64Counter(name string, opts ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return getOrInitMetric(metric.Meter.Int64Counter, om.Meter, om.Int64CountersCache, name, opts...)
}

func (om *OtelManager) setupMetrics() error {
	var err error
	om.Metrics.CellSetsCounter, err = om.GetOrInitInt64Counter(BuildMetricName(CellSetsCounterName),
		metric.WithDescription("Successful writes to WORM cells"),
	)
	if err != nil {
		return err
	}

	om.Metrics.DoubleSetsCounter, err = om.GetOrInitInt64Counter(BuildMetricName(DoubleSetsCounterName),
		metric.WithDescription("Writes rejected because the WORM cell was already set"),
	)
	if err != nil {
		return err
	}

	om.Metrics.ReadsBeforeSetCounter, err = om.GetOrInitInt64Counter(BuildMetricName(ReadsBeforeSetCounterName),
		metric.WithDescription("Reads of WORM cells that had not been set yet"),
	)
	if err != nil {
		return err
	}

	return nil
}

// newOtelResource returns a resource describing this application.
func newOtelResource(otelServiceName string, attrs ...attribute.KeyValue) (*resource.Resource, error) {
	allAttrs := append([]attribute.KeyValue{
		semconv.ServiceNameKey.String(otelServiceName),
	}, attrs...)
	// resource.Default carries its own schema URL
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(allAttrs...),
	)
}

// CollectCounters reads every int64 counter from reader, keyed by metric name and then cell name.
func CollectCounters(ctx context.Context, reader sdkmetric.Reader) (map[string]map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("failed to collect metrics: %w", err)
	}

	counters := make(map[string]map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			byCell, ok := counters[m.Name]
			if !ok {
				byCell = make(map[string]int64)
				counters[m.Name] = byCell
			}
			for _, dp := range sum.DataPoints {
				cellName, _ := dp.Attributes.Value(CellNameKey)
				byCell[cellName.AsString()] += dp.Value
			}
		}
	}
	return counters, nil
}
