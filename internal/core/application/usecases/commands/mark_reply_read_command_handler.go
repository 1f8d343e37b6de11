package commands

import (
	"context"

	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/ports"
)

type MarkReplyReadCommandHandler struct {
	uowFactory ManufacturingUoWFactory
	identity   ports.IdentityProvider
}

func NewMarkReplyReadCommandHandler(uowFactory ManufacturingUoWFactory, identity ports.IdentityProvider) MarkReplyReadCommandHandler {
	return MarkReplyReadCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h MarkReplyReadCommandHandler) Handle(ctx context.Context, cmd MarkReplyReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ManufacturingOrderRepository()
	mo, err := repo.GetForUpdate(ctx, cmd.ManufacturingOrderID())
	if err != nil {
		return err
	}
	if err = requireAnyCapability(ctx, h.identity, cmd.ActorID(), "read replies of "+mo.String(),
		manufacturing.CapabilityApprove, manufacturing.CapabilityOverride); err != nil {
		return err
	}
	if err = mo.MarkReplyRead(cmd.RejectionID()); err != nil {
		return err
	}
	if err = repo.Update(ctx, mo); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
