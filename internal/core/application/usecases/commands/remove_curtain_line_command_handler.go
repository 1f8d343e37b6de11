package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

type RemoveCurtainLineCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
}

func NewRemoveCurtainLineCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) RemoveCurtainLineCommandHandler {
	return RemoveCurtainLineCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h RemoveCurtainLineCommandHandler) Handle(ctx context.Context, cmd RemoveCurtainLineCommand) error {
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
	if err = c.RemoveLine(cmd.LineID()); err != nil {
		return err
	}
	if err = curtains.Update(ctx, c); err != nil {
		return err
	}
	if err = d.Touch(cmd.ActorID(), draft.ActionLineRemoved, map[string]string{
		"curtain_id": c.ID().String(),
		"line_id":    cmd.LineID().String(),
	}); err != nil {
		return err
	}
	if err = drafts.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
