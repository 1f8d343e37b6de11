package commands

import (
	"context"
	"fmt"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// SubmitContractStepCommandHandler requires at least one measured curtain.
// The step only exists for order types that need a contract.
type SubmitContractStepCommandHandler struct {
	uowFactory CurtainUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitContractStepCommandHandler(uowFactory CurtainUoWFactory, identity ports.IdentityProvider) SubmitContractStepCommandHandler {
	return SubmitContractStepCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h SubmitContractStepCommandHandler) Handle(ctx context.Context, cmd SubmitContractStepCommand) (StepResult, error) {
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

	curtains := uow.CurtainRepository()
	result, err := submitStep(ctx, uow.DraftRepository(), h.identity, cmd.DraftID(), cmd.ActorID(), draft.ScreenContract,
		func(d *draft.Draft) error {
			list, err := curtains.ListByOwner(ctx, curtain.DraftOwner(d.ID()))
			if err != nil {
				return err
			}
			fields := errs.FieldErrors{}
			if len(list) == 0 {
				fields.Add("curtains", "at least one curtain is required")
			}
			for _, c := range list {
				m := c.Measurements()
				if !m.Width.IsPositive() || !m.Height.IsPositive() {
					fields.Add(fmt.Sprintf("curtains[%d]", m.Sequence), "width and height must be greater than 0")
				}
			}
			return fields.Err()
		})
	if err != nil {
		return StepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}

	return result, nil
}
