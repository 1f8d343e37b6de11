package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// UpdateCurtainLineCommandHandler changes the reserved quantity of a line. The
// line's own current quantity is left out of the reservation sum.
type UpdateCurtainLineCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
	validator  services.ReservationValidator
}

func NewUpdateCurtainLineCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) UpdateCurtainLineCommandHandler {
	return UpdateCurtainLineCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		validator:  services.NewReservationValidator(),
	}
}

func (h UpdateCurtainLineCommandHandler) Handle(ctx context.Context, cmd UpdateCurtainLineCommand) error {
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
	curtains := uow.CurtainRepository()
	d, err := loadOpenDraft(ctx, drafts, h.identity, cmd.DraftID(), cmd.ActorID())
	if err != nil {
		return err
	}
	c, err := loadDraftCurtain(ctx, curtains, d.ID(), cmd.CurtainID())
	if err != nil {
		return err
	}
	line, err := c.Line(cmd.LineID())
	if err != nil {
		return err
	}
	item, err := d.Item(line.ItemRef().ID())
	if err != nil {
		return err
	}

	if err = drafts.LockItem(ctx, item.ID()); err != nil {
		return err
	}
	lineID := line.ID()
	reserved, err := curtains.ReservedQuantity(ctx, line.ItemRef(), &lineID)
	if err != nil {
		return err
	}
	if err = h.validator.CheckLine(item, line.Kind(), reserved, cmd.Quantity()); err != nil {
		return asValidation(err)
	}

	if err = c.UpdateLine(lineID, cmd.Quantity(), cmd.Name()); err != nil {
		return asValidation(err)
	}
	if err = curtains.Update(ctx, c); err != nil {
		return err
	}
	if err = d.Touch(cmd.ActorID(), draft.ActionLineSaved, map[string]string{
		"curtain_id": c.ID().String(),
		"line_id":    lineID.String(),
		"quantity":   cmd.Quantity().String(),
	}); err != nil {
		return err
	}
	if err = drafts.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
