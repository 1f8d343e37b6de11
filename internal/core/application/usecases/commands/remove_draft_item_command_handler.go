package commands

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/ports"
)

// RemoveDraftItemCommandHandler removes an item together with the curtain
// lines that consume it.
type RemoveDraftItemCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
}

func NewRemoveDraftItemCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) RemoveDraftItemCommandHandler {
	return RemoveDraftItemCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h RemoveDraftItemCommandHandler) Handle(ctx context.Context, cmd RemoveDraftItemCommand) error {
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
	d, err := loadOpenDraft(ctx, drafts, h.identity, cmd.DraftID(), cmd.ActorID())
	if err != nil {
		return err
	}
	if err = d.RemoveItem(cmd.ActorID(), cmd.ItemID()); err != nil {
		return err
	}

	if err = uow.CurtainRepository().DeleteLinesByItem(ctx, curtain.DraftItemRef(cmd.ItemID())); err != nil {
		return err
	}
	if err = drafts.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
