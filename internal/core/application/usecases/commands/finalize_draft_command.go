package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrFinalizeDraftCommandIsNotConstructed = errors.New(
	"FinalizeDraftCommand must be created via NewFinalizeDraftCommand constructor",
)

// FinalizeDraftCommand turns a draft into an order. OrderID is the id a new
// order gets in create mode; an edit-mode draft keeps the id of the order it edits.
type FinalizeDraftCommand struct {
	draftID kernel.UUID
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewFinalizeDraftCommand(draftID, orderID, actorID kernel.UUID) (FinalizeDraftCommand, error) {
	if err := errors.Join(draftID.Validate(), orderID.Validate(), actorID.Validate()); err != nil {
		return FinalizeDraftCommand{}, err
	}
	return FinalizeDraftCommand{draftID: draftID, orderID: orderID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c FinalizeDraftCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeDraftCommandIsNotConstructed)
}

func (c FinalizeDraftCommand) DraftID() kernel.UUID { return c.draftID }
func (c FinalizeDraftCommand) OrderID() kernel.UUID { return c.orderID }
func (c FinalizeDraftCommand) ActorID() kernel.UUID { return c.actorID }
