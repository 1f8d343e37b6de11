package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
)

// ManufacturingOrderRepository persists manufacturing orders with their
// rejection logs and status change history.
type ManufacturingOrderRepository interface {
	Add(ctx context.Context, mo *manufacturing.ManufacturingOrder) error
	Update(ctx context.Context, mo *manufacturing.ManufacturingOrder) error
	Get(ctx context.Context, id kernel.UUID) (*manufacturing.ManufacturingOrder, error)

	// GetForUpdate is Get with the row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*manufacturing.ManufacturingOrder, error)

	// GetByOrder returns the manufacturing order of an order or errs.ObjectNotFoundError.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*manufacturing.ManufacturingOrder, error)
}

type ProductionLineRepository interface {
	Add(ctx context.Context, l *manufacturing.ProductionLine) error
	// ListActive returns active lines ordered by priority, highest first.
	ListActive(ctx context.Context) ([]*manufacturing.ProductionLine, error)
}
