package commands

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// AddCurtainLineCommandHandler adds a fabric or accessory line.
//
// The parent item row is locked and the existing reservations are summed in
// the same transaction that inserts the line, so two concurrent writers on the
// same item cannot both pass the check.
type AddCurtainLineCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
	validator  services.ReservationValidator
}

func NewAddCurtainLineCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) AddCurtainLineCommandHandler {
	return AddCurtainLineCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		validator:  services.NewReservationValidator(),
	}
}

func (h AddCurtainLineCommandHandler) Handle(ctx context.Context, cmd AddCurtainLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	line, err := curtain.NewLine(cmd.LineID(), cmd.Kind(), curtain.DraftItemRef(cmd.ItemID()), cmd.Quantity(), cmd.Name())
	if err != nil {
		return asValidation(err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drafts := uow.DraftRepository()
	curtains := uow.CurtainRepository()
	d, err := loadOpenDraft(ctx, drafts, h.identity, cmd.DraftID(), cmd.ActorID())
	if err != nil {
		return err
	}
	c, err := loadDraftCurtain(ctx, curtains, d.ID(), cmd.CurtainID())
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
	reserved, err := curtains.ReservedQuantity(ctx, line.ItemRef(), nil)
	if err != nil {
		return err
	}
	if err = h.validator.CheckLine(item, line.Kind(), reserved, line.Quantity()); err != nil {
		return asValidation(err)
	}

	if err = c.AddLine(line); err != nil {
		return asValidation(err)
	}
	if err = curtains.Update(ctx, c); err != nil {
		return err
	}
	if err = d.Touch(cmd.ActorID(), draft.ActionLineSaved, map[string]string{
		"curtain_id": c.ID().String(),
		"line_id":    line.ID().String(),
		"quantity":   line.Quantity().String(),
	}); err != nil {
		return err
	}
	if err = drafts.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
