package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/pkg/guard"
)

var ErrTransitionManufacturingOrderCommandIsNotConstructed = errors.New(
	"TransitionManufacturingOrderCommand must be created via NewTransitionManufacturingOrderCommand constructor",
)

// TransitionManufacturingOrderCommand moves a manufacturing order to another
// status. Override asks for the superuser path.
type TransitionManufacturingOrderCommand struct {
	manufacturingOrderID kernel.UUID
	actorID              kernel.UUID
	to                   manufacturing.Status
	override             bool
	note                 string

	guard guard.ConstructorGuard
}

func NewTransitionManufacturingOrderCommand(
	manufacturingOrderID, actorID kernel.UUID,
	to manufacturing.Status,
	override bool,
	note string,
) (TransitionManufacturingOrderCommand, error) {
	if err := errors.Join(manufacturingOrderID.Validate(), actorID.Validate(), to.Validate()); err != nil {
		return TransitionManufacturingOrderCommand{}, err
	}
	return TransitionManufacturingOrderCommand{
		manufacturingOrderID: manufacturingOrderID,
		actorID:              actorID,
		to:                   to,
		override:             override,
		note:                 strings.TrimSpace(note),
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionManufacturingOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionManufacturingOrderCommandIsNotConstructed)
}

func (c TransitionManufacturingOrderCommand) ManufacturingOrderID() kernel.UUID {
	return c.manufacturingOrderID
}
func (c TransitionManufacturingOrderCommand) ActorID() kernel.UUID     { return c.actorID }
func (c TransitionManufacturingOrderCommand) To() manufacturing.Status { return c.to }
func (c TransitionManufacturingOrderCommand) Override() bool           { return c.override }
func (c TransitionManufacturingOrderCommand) Note() string             { return c.note }
