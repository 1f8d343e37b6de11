package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrRemoveDraftItemCommandIsNotConstructed = errors.New(
	"RemoveDraftItemCommand must be created via NewRemoveDraftItemCommand constructor",
)

type RemoveDraftItemCommand struct {
	draftID kernel.UUID
	itemID  kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveDraftItemCommand(draftID, itemID, actorID kernel.UUID) (RemoveDraftItemCommand, error) {
	if err := errors.Join(draftID.Validate(), itemID.Validate(), actorID.Validate()); err != nil {
		return RemoveDraftItemCommand{}, err
	}
	return RemoveDraftItemCommand{draftID: draftID, itemID: itemID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveDraftItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveDraftItemCommandIsNotConstructed)
}

func (c RemoveDraftItemCommand) DraftID() kernel.UUID { return c.draftID }
func (c RemoveDraftItemCommand) ItemID() kernel.UUID  { return c.itemID }
func (c RemoveDraftItemCommand) ActorID() kernel.UUID { return c.actorID }
