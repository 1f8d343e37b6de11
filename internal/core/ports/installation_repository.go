package ports

import (
	"context"

	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
)

// InstallationRepository gives the status propagator access to the
// installation schedules of an order.
type InstallationRepository interface {
	Add(ctx context.Context, s *installation.Schedule) error
	Update(ctx context.Context, s *installation.Schedule) error
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*installation.Schedule, error)
}
