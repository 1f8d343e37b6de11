package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrMarkReplyReadCommandIsNotConstructed = errors.New(
	"MarkReplyReadCommand must be created via NewMarkReplyReadCommand constructor",
)

type MarkReplyReadCommand struct {
	manufacturingOrderID kernel.UUID
	rejectionID          kernel.UUID
	actorID              kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkReplyReadCommand(manufacturingOrderID, rejectionID, actorID kernel.UUID) (MarkReplyReadCommand, error) {
	if err := errors.Join(manufacturingOrderID.Validate(), rejectionID.Validate(), actorID.Validate()); err != nil {
		return MarkReplyReadCommand{}, err
	}
	return MarkReplyReadCommand{
		manufacturingOrderID: manufacturingOrderID,
		rejectionID:          rejectionID,
		actorID:              actorID,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c MarkReplyReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkReplyReadCommandIsNotConstructed)
}

func (c MarkReplyReadCommand) ManufacturingOrderID() kernel.UUID { return c.manufacturingOrderID }
func (c MarkReplyReadCommand) RejectionID() kernel.UUID          { return c.rejectionID }
func (c MarkReplyReadCommand) ActorID() kernel.UUID              { return c.actorID }
