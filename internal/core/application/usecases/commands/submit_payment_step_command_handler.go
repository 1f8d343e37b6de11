package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

type SubmitPaymentStepCommandHandler struct {
	uowFactory DraftUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitPaymentStepCommandHandler(uowFactory DraftUoWFactory, identity ports.IdentityProvider) SubmitPaymentStepCommandHandler {
	return SubmitPaymentStepCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h SubmitPaymentStepCommandHandler) Handle(ctx context.Context, cmd SubmitPaymentStepCommand) (StepResult, error) {
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

	result, err := submitStep(ctx, uow.DraftRepository(), h.identity, cmd.DraftID(), cmd.ActorID(), draft.ScreenPayment,
		func(d *draft.Draft) error {
			return d.SetPayment(cmd.ActorID(), cmd.Payment())
		})
	if err != nil {
		return StepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}

	return result, nil
}
