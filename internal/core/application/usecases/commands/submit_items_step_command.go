package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrSubmitItemsStepCommandIsNotConstructed = errors.New(
	"SubmitItemsStepCommand must be created via NewSubmitItemsStepCommand constructor",
)

// SubmitItemsStepCommand confirms the items screen. Items themselves are
// edited with the item commands before.
type SubmitItemsStepCommand struct {
	draftID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSubmitItemsStepCommand(draftID, actorID kernel.UUID) (SubmitItemsStepCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return SubmitItemsStepCommand{}, err
	}
	return SubmitItemsStepCommand{draftID: draftID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitItemsStepCommand) Validate() error {
	return c.guard.Validate(ErrSubmitItemsStepCommandIsNotConstructed)
}

func (c SubmitItemsStepCommand) DraftID() kernel.UUID { return c.draftID }
func (c SubmitItemsStepCommand) ActorID() kernel.UUID { return c.actorID }
