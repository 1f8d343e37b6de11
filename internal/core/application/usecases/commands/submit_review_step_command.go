package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrSubmitReviewStepCommandIsNotConstructed = errors.New(
	"SubmitReviewStepCommand must be created via NewSubmitReviewStepCommand constructor",
)

type SubmitReviewStepCommand struct {
	draftID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSubmitReviewStepCommand(draftID, actorID kernel.UUID) (SubmitReviewStepCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return SubmitReviewStepCommand{}, err
	}
	return SubmitReviewStepCommand{draftID: draftID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitReviewStepCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewStepCommandIsNotConstructed)
}

func (c SubmitReviewStepCommand) DraftID() kernel.UUID { return c.draftID }
func (c SubmitReviewStepCommand) ActorID() kernel.UUID { return c.actorID }
