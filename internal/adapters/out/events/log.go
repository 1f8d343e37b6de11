package events

import (
	"context"

	"workshop/internal/core/ports"

	"go.uber.org/zap"
)

// LogNotifier logs events. Used when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With(zap.String("component", "events"))}
}

func (n *LogNotifier) Notify(_ context.Context, e ports.Event) error {
	fields := []zap.Field{
		zap.String("event", e.Type),
		zap.Stringer("aggregate_id", e.AggregateID),
		zap.Stringer("actor_id", e.ActorID),
		zap.Time("at", e.At),
	}
	for k, v := range e.Attributes {
		fields = append(fields, zap.String(k, v))
	}
	n.logger.Info("event", fields...)
	return nil
}
