package commands

import (
	"context"
	"strconv"

	"workshop/internal/core/ports"

	"go.uber.org/zap"
)

// notify publishes an event after commit. Delivery problems are logged only.
func notify(ctx context.Context, notifier ports.Notifier, logger *zap.Logger, e ports.Event) {
	if err := notifier.Notify(context.WithoutCancel(ctx), e); err != nil {
		logger.Warn("notify",
			zap.String("event", e.Type),
			zap.Stringer("aggregate_id", e.AggregateID),
			zap.Error(err),
		)
	}
}

func boolString(b bool) string {
	return strconv.FormatBool(b)
}
