package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrRemoveCurtainLineCommandIsNotConstructed = errors.New(
	"RemoveCurtainLineCommand must be created via NewRemoveCurtainLineCommand constructor",
)

type RemoveCurtainLineCommand struct {
	draftID   kernel.UUID
	curtainID kernel.UUID
	lineID    kernel.UUID
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCurtainLineCommand(draftID, curtainID, lineID, actorID kernel.UUID) (RemoveCurtainLineCommand, error) {
	if err := errors.Join(draftID.Validate(), curtainID.Validate(), lineID.Validate(), actorID.Validate()); err != nil {
		return RemoveCurtainLineCommand{}, err
	}
	return RemoveCurtainLineCommand{
		draftID:   draftID,
		curtainID: curtainID,
		lineID:    lineID,
		actorID:   actorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveCurtainLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCurtainLineCommandIsNotConstructed)
}

func (c RemoveCurtainLineCommand) DraftID() kernel.UUID   { return c.draftID }
func (c RemoveCurtainLineCommand) CurtainID() kernel.UUID { return c.curtainID }
func (c RemoveCurtainLineCommand) LineID() kernel.UUID    { return c.lineID }
func (c RemoveCurtainLineCommand) ActorID() kernel.UUID   { return c.actorID }
