package commands

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// UpdateDraftItemCommandHandler changes an item. The item row is locked before
// its reservations are summed, so the quantity can never drop below what
// curtain lines already consume.
type UpdateDraftItemCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
	validator  services.ReservationValidator
}

func NewUpdateDraftItemCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) UpdateDraftItemCommandHandler {
	return UpdateDraftItemCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		validator:  services.NewReservationValidator(),
	}
}

func (h UpdateDraftItemCommandHandler) Handle(ctx context.Context, cmd UpdateDraftItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Quantity().Validate(); err != nil {
		return asValidation(err)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drafts := uow.DraftRepository()
	d, err := loadOpenDraft(ctx, drafts, h.identity, cmd.DraftID(), cmd.ActorID())
	if err != nil {
		return err
	}
	item, err := d.Item(cmd.ItemID())
	if err != nil {
		return err
	}
	if err = drafts.LockItem(ctx, item.ID()); err != nil {
		return err
	}

	reserved, err := uow.CurtainRepository().ReservedQuantity(ctx, curtain.DraftItemRef(item.ID()), nil)
	if err != nil {
		return err
	}
	if err = h.validator.CheckCapacity(item, cmd.Quantity(), reserved); err != nil {
		return err
	}

	if err = d.UpdateItem(cmd.ActorID(), item.ID(), cmd.Quantity(), cmd.UnitPrice(), cmd.DiscountPct()); err != nil {
		return asValidation(err)
	}
	if err = drafts.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
