package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrRemoveCurtainCommandIsNotConstructed = errors.New(
	"RemoveCurtainCommand must be created via NewRemoveCurtainCommand constructor",
)

type RemoveCurtainCommand struct {
	draftID   kernel.UUID
	curtainID kernel.UUID
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCurtainCommand(draftID, curtainID, actorID kernel.UUID) (RemoveCurtainCommand, error) {
	if err := errors.Join(draftID.Validate(), curtainID.Validate(), actorID.Validate()); err != nil {
		return RemoveCurtainCommand{}, err
	}
	return RemoveCurtainCommand{draftID: draftID, curtainID: curtainID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveCurtainCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCurtainCommandIsNotConstructed)
}

func (c RemoveCurtainCommand) DraftID() kernel.UUID   { return c.draftID }
func (c RemoveCurtainCommand) CurtainID() kernel.UUID { return c.curtainID }
func (c RemoveCurtainCommand) ActorID() kernel.UUID   { return c.actorID }
