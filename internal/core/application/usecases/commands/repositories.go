// Package commands contains the operations that change the order wizard state.
// Every handler validates its command, opens a unit of work, loads and locks
// what it changes, calls the domain and commits once.
package commands

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
)

// Unit of work interfaces, narrowed to what each group of handlers touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DraftRepoFactory interface {
		DraftRepository() ports.DraftRepository
	}

	CurtainRepoFactory interface {
		CurtainRepository() ports.CurtainRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	ManufacturingRepoFactory interface {
		ManufacturingOrderRepository() ports.ManufacturingOrderRepository
	}

	ProductionLineRepoFactory interface {
		ProductionLineRepository() ports.ProductionLineRepository
	}

	InstallationRepoFactory interface {
		InstallationRepository() ports.InstallationRepository
	}

	DocumentJobRepoFactory interface {
		DocumentJobRepository() ports.DocumentJobRepository
	}

	// DraftUoW serves the wizard steps that only touch the draft.
	DraftUoW interface {
		TxManager
		DraftRepoFactory
	}

	DraftUoWFactory interface {
		Create() DraftUoW
	}

	// CurtainUoW serves item and curtain editing, where reservations are checked.
	CurtainUoW interface {
		TxManager
		DraftRepoFactory
		CurtainRepoFactory
	}

	CurtainUoWFactory interface {
		Create() CurtainUoW
	}

	// ManufacturingUoW serves status changes and their propagation.
	ManufacturingUoW interface {
		TxManager
		OrderRepoFactory
		ManufacturingRepoFactory
		InstallationRepoFactory
	}

	ManufacturingUoWFactory interface {
		Create() ManufacturingUoW
	}

	DocumentUoW interface {
		TxManager
		DocumentJobRepoFactory
	}

	DocumentUoWFactory interface {
		Create() DocumentUoW
	}

	// UoW spans every repository. Finalization and order editing use it.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	// ... repositories
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		DraftRepoFactory
		CurtainRepoFactory
		OrderRepoFactory
		PaymentRepoFactory
		ManufacturingRepoFactory
		ProductionLineRepoFactory
		InstallationRepoFactory
		DocumentJobRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// DocumentQueue hands contract document generation to the background after
// finalization has committed.
type DocumentQueue interface {
	Enqueue(orderID, actorID kernel.UUID)
}
