package commands

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

type AddCurtainCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
}

func NewAddCurtainCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) AddCurtainCommandHandler {
	return AddCurtainCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h AddCurtainCommandHandler) Handle(ctx context.Context, cmd AddCurtainCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := curtain.NewCurtain(cmd.CurtainID(), curtain.DraftOwner(cmd.DraftID()), cmd.Measurements())
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
	d, err := loadOpenDraft(ctx, drafts, h.identity, cmd.DraftID(), cmd.ActorID())
	if err != nil {
		return err
	}
	if err = uow.CurtainRepository().Add(ctx, c); err != nil {
		return err
	}
	if err = d.Touch(cmd.ActorID(), draft.ActionCurtainAdded, map[string]string{"curtain_id": c.ID().String()}); err != nil {
		return err
	}
	if err = drafts.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
