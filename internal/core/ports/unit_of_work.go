package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin are bound to the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit returns an error when no transaction is active.
	Commit(ctx context.Context) error
	// Rollback returns an error when no transaction is active.
	Rollback(ctx context.Context) error

	DraftRepository() DraftRepository
	CurtainRepository() CurtainRepository
	OrderRepository() OrderRepository
	PaymentRepository() PaymentRepository
	ManufacturingOrderRepository() ManufacturingOrderRepository
	ProductionLineRepository() ProductionLineRepository
	InstallationRepository() InstallationRepository
	DocumentJobRepository() DocumentJobRepository
}
