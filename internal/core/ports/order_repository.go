package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates with their items.
type OrderRepository interface {
	// Add persists a new order and inserts its items.
	Add(ctx context.Context, o *order.Order) error

	// Update overwrites the order scalars and replaces its items.
	Update(ctx context.Context, o *order.Order) error

	// UpdateStatus writes only the order, tracking and installation status.
	UpdateStatus(ctx context.Context, o *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// PaymentRepository persists payments recorded against orders.
type PaymentRepository interface {
	Add(ctx context.Context, p *order.Payment) error
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Payment, error)
	DeleteByOrder(ctx context.Context, orderID kernel.UUID) error
}
