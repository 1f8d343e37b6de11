package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

// SubmitReviewStepCommandHandler completes the last step. Review has no
// fields; its physical number depends on the order type.
type SubmitReviewStepCommandHandler struct {
	uowFactory DraftUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitReviewStepCommandHandler(uowFactory DraftUoWFactory, identity ports.IdentityProvider) SubmitReviewStepCommandHandler {
	return SubmitReviewStepCommandHandler{uowFactory: uowFactory, identity: identity}
}

func (h SubmitReviewStepCommandHandler) Handle(ctx context.Context, cmd SubmitReviewStepCommand) (StepResult, error) {
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

	result, err := submitStep(ctx, uow.DraftRepository(), h.identity, cmd.DraftID(), cmd.ActorID(), draft.ScreenReview,
		func(*draft.Draft) error { return nil })
	if err != nil {
		return StepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}

	return result, nil
}
