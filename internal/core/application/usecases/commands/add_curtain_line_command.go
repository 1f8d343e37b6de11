package commands

import (
	"errors"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrAddCurtainLineCommandIsNotConstructed = errors.New(
	"AddCurtainLineCommand must be created via NewAddCurtainLineCommand constructor",
)

// AddCurtainLineCommand reserves quantity of a draft item for a curtain.
type AddCurtainLineCommand struct {
	draftID   kernel.UUID
	curtainID kernel.UUID
	lineID    kernel.UUID
	actorID   kernel.UUID
	kind      curtain.LineKind
	itemID    kernel.UUID
	quantity  kernel.Quantity
	name      string

	guard guard.ConstructorGuard
}

func NewAddCurtainLineCommand(
	draftID, curtainID, lineID, actorID kernel.UUID,
	kind curtain.LineKind,
	itemID kernel.UUID,
	quantity kernel.Quantity,
	name string,
) (AddCurtainLineCommand, error) {
	if err := errors.Join(draftID.Validate(), curtainID.Validate(), lineID.Validate(), actorID.Validate()); err != nil {
		return AddCurtainLineCommand{}, err
	}
	return AddCurtainLineCommand{
		draftID:   draftID,
		curtainID: curtainID,
		lineID:    lineID,
		actorID:   actorID,
		kind:      kind,
		itemID:    itemID,
		quantity:  quantity,
		name:      name,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddCurtainLineCommand) Validate() error {
	return c.guard.Validate(ErrAddCurtainLineCommandIsNotConstructed)
}

func (c AddCurtainLineCommand) DraftID() kernel.UUID      { return c.draftID }
func (c AddCurtainLineCommand) CurtainID() kernel.UUID    { return c.curtainID }
func (c AddCurtainLineCommand) LineID() kernel.UUID       { return c.lineID }
func (c AddCurtainLineCommand) ActorID() kernel.UUID      { return c.actorID }
func (c AddCurtainLineCommand) Kind() curtain.LineKind    { return c.kind }
func (c AddCurtainLineCommand) ItemID() kernel.UUID       { return c.itemID }
func (c AddCurtainLineCommand) Quantity() kernel.Quantity { return c.quantity }
func (c AddCurtainLineCommand) Name() string              { return c.name }
