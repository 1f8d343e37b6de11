package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrApproveManufacturingOrderCommandIsNotConstructed = errors.New(
	"ApproveManufacturingOrderCommand must be created via NewApproveManufacturingOrderCommand constructor",
)

// ApproveManufacturingOrderCommand approves a pending_approval order or
// re-approves a rejected one.
type ApproveManufacturingOrderCommand struct {
	manufacturingOrderID kernel.UUID
	actorID              kernel.UUID
	note                 string

	guard guard.ConstructorGuard
}

func NewApproveManufacturingOrderCommand(manufacturingOrderID, actorID kernel.UUID, note string) (ApproveManufacturingOrderCommand, error) {
	if err := errors.Join(manufacturingOrderID.Validate(), actorID.Validate()); err != nil {
		return ApproveManufacturingOrderCommand{}, err
	}
	return ApproveManufacturingOrderCommand{
		manufacturingOrderID: manufacturingOrderID,
		actorID:              actorID,
		note:                 strings.TrimSpace(note),
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveManufacturingOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveManufacturingOrderCommandIsNotConstructed)
}

func (c ApproveManufacturingOrderCommand) ManufacturingOrderID() kernel.UUID {
	return c.manufacturingOrderID
}
func (c ApproveManufacturingOrderCommand) ActorID() kernel.UUID { return c.actorID }
func (c ApproveManufacturingOrderCommand) Note() string         { return c.note }
