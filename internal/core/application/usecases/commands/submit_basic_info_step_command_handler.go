package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

type SubmitBasicInfoStepCommandHandler struct {
	uowFactory DraftUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitBasicInfoStepCommandHandler(uowFactory DraftUoWFactory, identity ports.IdentityProvider) SubmitBasicInfoStepCommandHandler {
	return SubmitBasicInfoStepCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h SubmitBasicInfoStepCommandHandler) Handle(ctx context.Context, cmd SubmitBasicInfoStepCommand) (StepResult, error) {
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

	result, err := submitStep(ctx, uow.DraftRepository(), h.identity, cmd.DraftID(), cmd.ActorID(), draft.ScreenBasicInfo,
		func(d *draft.Draft) error {
			return d.SetBasicInfo(cmd.ActorID(), cmd.Info())
		})
	if err != nil {
		return StepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}

	return result, nil
}
