package logger

import (
	"context"
	"log/slog"

	"github.com/PeerDB-io/wormcell/shared"
	"github.com/PeerDB-io/wormcell/shared/concurrency"
	"github.com/PeerDB-io/wormcell/shared/exceptions"
)

var _ concurrency.Observer = (*LogObserver)(nil)

// LogObserver reports cell misuse as warnings, tagged with the cell name.
type LogObserver struct {
	ctx    context.Context
	logger *slog.Logger
}

func NewLogObserver(ctx context.Context, logger *slog.Logger, cellName string) *LogObserver {
	return &LogObserver{
		ctx:    context.WithValue(ctx, shared.CellNameKey, cellName),
		logger: logger,
	}
}

func (o *LogObserver) CellSet() {
	o.logger.DebugContext(o.ctx, "cell set")
}

func (o *LogObserver) DoubleSet() {
	o.logger.WarnContext(o.ctx, "rejected write to cell", slog.Any("error", exceptions.ErrDoubleSet))
}

func (o *LogObserver) ReadBeforeSet() {
	o.logger.WarnContext(o.ctx, "cell read before set", slog.Any("error", exceptions.ErrReadBeforeSet))
}
