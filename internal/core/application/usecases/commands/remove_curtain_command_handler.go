package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

// RemoveCurtainCommandHandler deletes a curtain with its lines, releasing
// their reservations.
type RemoveCurtainCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
}

func NewRemoveCurtainCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) RemoveCurtainCommandHandler {
	return RemoveCurtainCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h RemoveCurtainCommandHandler) Handle(ctx context.Context, cmd RemoveCurtainCommand) error {
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
	if err = curtains.Delete(ctx, c.ID()); err != nil {
		return err
	}
	if err = d.Touch(cmd.ActorID(), draft.ActionCurtainRemoved, map[string]string{"curtain_id": c.ID().String()}); err != nil {
		return err
	}
	if err = drafts.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
