package commands

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/ports"
)

// DeleteDraftCommandHandler removes a draft with its items, curtains and lines.
// Completed drafts are kept as the link to their order.
type DeleteDraftCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
}

func NewDeleteDraftCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) DeleteDraftCommandHandler {
	return DeleteDraftCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h DeleteDraftCommandHandler) Handle(ctx context.Context, cmd DeleteDraftCommand) error {
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

	if err = uow.CurtainRepository().DeleteByOwner(ctx, curtain.DraftOwner(d.ID())); err != nil {
		return err
	}
	if err = drafts.Delete(ctx, d.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
