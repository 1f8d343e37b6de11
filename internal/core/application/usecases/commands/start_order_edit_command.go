package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrStartOrderEditCommandIsNotConstructed = errors.New(
	"StartOrderEditCommand must be created via NewStartOrderEditCommand constructor",
)

// StartOrderEditCommand opens an edit-mode draft for an existing order.
type StartOrderEditCommand struct {
	draftID kernel.UUID
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartOrderEditCommand(draftID, orderID, actorID kernel.UUID) (StartOrderEditCommand, error) {
	if err := errors.Join(draftID.Validate(), orderID.Validate(), actorID.Validate()); err != nil {
		return StartOrderEditCommand{}, err
	}
	return StartOrderEditCommand{
		draftID: draftID,
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartOrderEditCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderEditCommandIsNotConstructed)
}

func (c StartOrderEditCommand) DraftID() kernel.UUID { return c.draftID }
func (c StartOrderEditCommand) OrderID() kernel.UUID { return c.orderID }
func (c StartOrderEditCommand) ActorID() kernel.UUID { return c.actorID }
