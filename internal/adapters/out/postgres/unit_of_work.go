// Package postgres provides the GORM implementation of the Unit of Work pattern
// for the order wizard. A unit of work spans one business transaction: every
// repository it hands out after Begin runs on the same *gorm.DB transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	d, err := uow.DraftRepository().GetForUpdate(ctx, draftID)
//	if err != nil {
//	    return err
//	}
//	// ... change the draft, its curtains, the order
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction,
// which the deferred call ignores.
//
// Concurrency:
//   - each UnitOfWork instance owns its transaction; goroutines use separate instances
//   - GetForUpdate and DraftRepository().LockItem take row locks that hold
//     until Commit or Rollback
package postgres

import (
	"context"

	"workshop/internal/adapters/out/postgres/curtainrepo"
	"workshop/internal/adapters/out/postgres/documentjobrepo"
	"workshop/internal/adapters/out/postgres/draftrepo"
	"workshop/internal/adapters/out/postgres/installationrepo"
	"workshop/internal/adapters/out/postgres/manufacturingrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances on one database connection.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) DraftRepository() ports.DraftRepository {
	return draftrepo.NewGormDraftRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CurtainRepository() ports.CurtainRepository {
	return curtainrepo.NewGormCurtainRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return orderrepo.NewGormPaymentRepository(uow.conn())
}

func (uow *GormUnitOfWork) ManufacturingOrderRepository() ports.ManufacturingOrderRepository {
	return manufacturingrepo.NewGormManufacturingOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductionLineRepository() ports.ProductionLineRepository {
	return manufacturingrepo.NewGormProductionLineRepository(uow.conn())
}

func (uow *GormUnitOfWork) InstallationRepository() ports.InstallationRepository {
	return installationrepo.NewGormInstallationRepository(uow.conn())
}

func (uow *GormUnitOfWork) DocumentJobRepository() ports.DocumentJobRepository {
	return documentjobrepo.NewGormDocumentJobRepository(uow.conn())
}

// TrackAggregate is called by repositories after an aggregate is written.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the ids of the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}
