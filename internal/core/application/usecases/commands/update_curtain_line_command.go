package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrUpdateCurtainLineCommandIsNotConstructed = errors.New(
	"UpdateCurtainLineCommand must be created via NewUpdateCurtainLineCommand constructor",
)

type UpdateCurtainLineCommand struct {
	draftID   kernel.UUID
	curtainID kernel.UUID
	lineID    kernel.UUID
	actorID   kernel.UUID
	quantity  kernel.Quantity
	name      string

	guard guard.ConstructorGuard
}

func NewUpdateCurtainLineCommand(
	draftID, curtainID, lineID, actorID kernel.UUID,
	quantity kernel.Quantity,
	name string,
) (UpdateCurtainLineCommand, error) {
	if err := errors.Join(draftID.Validate(), curtainID.Validate(), lineID.Validate(), actorID.Validate()); err != nil {
		return UpdateCurtainLineCommand{}, err
	}
	return UpdateCurtainLineCommand{
		draftID:   draftID,
		curtainID: curtainID,
		lineID:    lineID,
		actorID:   actorID,
		quantity:  quantity,
		name:      name,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCurtainLineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCurtainLineCommandIsNotConstructed)
}

func (c UpdateCurtainLineCommand) DraftID() kernel.UUID      { return c.draftID }
func (c UpdateCurtainLineCommand) CurtainID() kernel.UUID    { return c.curtainID }
func (c UpdateCurtainLineCommand) LineID() kernel.UUID       { return c.lineID }
func (c UpdateCurtainLineCommand) ActorID() kernel.UUID      { return c.actorID }
func (c UpdateCurtainLineCommand) Quantity() kernel.Quantity { return c.quantity }
func (c UpdateCurtainLineCommand) Name() string              { return c.name }
