package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

type SubmitItemsStepCommandHandler struct {
	uowFactory DraftUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitItemsStepCommandHandler(uowFactory DraftUoWFactory, identity ports.IdentityProvider) SubmitItemsStepCommandHandler {
	return SubmitItemsStepCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h SubmitItemsStepCommandHandler) Handle(ctx context.Context, cmd SubmitItemsStepCommand) (StepResult, error) {
	if err := cmd.Validate(); err != nil {
		return StepResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StepResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	result, err := submitStep(ctx, uow.DraftRepository(), h.identity, cmd.DraftID(), cmd.ActorID(), draft.ScreenItems,
		func(d *draft.Draft) error {
			return d.ValidateItems()
		})
	if err != nil {
		return StepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}

	return result, nil
}
