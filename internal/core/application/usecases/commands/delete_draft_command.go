package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrDeleteDraftCommandIsNotConstructed = errors.New(
	"DeleteDraftCommand must be created via NewDeleteDraftCommand constructor",
)

// DeleteDraftCommand cancels a draft that has not been finalized.
type DeleteDraftCommand struct {
	draftID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteDraftCommand(draftID, actorID kernel.UUID) (DeleteDraftCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return DeleteDraftCommand{}, err
	}
	return DeleteDraftCommand{draftID: draftID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteDraftCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDraftCommandIsNotConstructed)
}

func (c DeleteDraftCommand) DraftID() kernel.UUID { return c.draftID }
func (c DeleteDraftCommand) ActorID() kernel.UUID { return c.actorID }
