package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrRejectManufacturingOrderCommandIsNotConstructed = errors.New(
	"RejectManufacturingOrderCommand must be created via NewRejectManufacturingOrderCommand constructor",
)

type RejectManufacturingOrderCommand struct {
	manufacturingOrderID kernel.UUID
	rejectionID          kernel.UUID
	actorID              kernel.UUID
	reason               string

	guard guard.ConstructorGuard
}

func NewRejectManufacturingOrderCommand(
	manufacturingOrderID, rejectionID, actorID kernel.UUID,
	reason string,
) (RejectManufacturingOrderCommand, error) {
	if err := errors.Join(manufacturingOrderID.Validate(), rejectionID.Validate(), actorID.Validate()); err != nil {
		return RejectManufacturingOrderCommand{}, err
	}
	return RejectManufacturingOrderCommand{
		manufacturingOrderID: manufacturingOrderID,
		rejectionID:          rejectionID,
		actorID:              actorID,
		reason:               reason,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c RejectManufacturingOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectManufacturingOrderCommandIsNotConstructed)
}

func (c RejectManufacturingOrderCommand) ManufacturingOrderID() kernel.UUID {
	return c.manufacturingOrderID
}
func (c RejectManufacturingOrderCommand) RejectionID() kernel.UUID { return c.rejectionID }
func (c RejectManufacturingOrderCommand) ActorID() kernel.UUID     { return c.actorID }
func (c RejectManufacturingOrderCommand) Reason() string           { return c.reason }
