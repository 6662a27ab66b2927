package otel_metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/PeerDB-io/wormcell/shared/concurrency"
)

var _ concurrency.Observer = (*CellObserver)(nil)

// CellObserver counts transitions and misuse of one named cell.
type CellObserver struct {
	ctx     context.Context
	metrics *Metrics
	attrs   metric.MeasurementOption
}

func (om *OtelManager) NewCellObserver(ctx context.Context, cellName string) *CellObserver {
	return &CellObserver{
		ctx:     ctx,
		metrics: &om.Metrics,
		attrs:   metric.WithAttributeSet(attribute.NewSet(attribute.String(CellNameKey, cellName))),
	}
}

func (o *CellObserver) CellSet() {
	o.metrics.CellSetsCounter.Add(o.ctx, 1, o.attrs)
}

func (o *CellObserver) DoubleSet() {
	o.metrics.DoubleSetsCounter.Add(o.ctx, 1, o.attrs)
}

func (o *CellObserver) ReadBeforeSet() {
	o.metrics.ReadsBeforeSetCounter.Add(o.ctx, 1, o.attrs)
}
