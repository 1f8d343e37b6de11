package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

// SubmitOrderTypeStepCommandHandler saves the order type. Switching between a
// type with and without a contract renumbers the later steps, so they have to
// be completed again.
type SubmitOrderTypeStepCommandHandler struct {
	uowFactory DraftUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitOrderTypeStepCommandHandler(uowFactory DraftUoWFactory, identity ports.IdentityProvider) SubmitOrderTypeStepCommandHandler {
	return SubmitOrderTypeStepCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h SubmitOrderTypeStepCommandHandler) Handle(ctx context.Context, cmd SubmitOrderTypeStepCommand) (StepResult, error) {
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

	result, err := submitStep(ctx, uow.DraftRepository(), h.identity, cmd.DraftID(), cmd.ActorID(), draft.ScreenOrderType,
		func(d *draft.Draft) error {
			return d.SetOrderType(cmd.ActorID(), cmd.OrderType(), cmd.InvoiceNumber(), cmd.ContractNumber())
		})
	if err != nil {
		return StepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}

	return result, nil
}
