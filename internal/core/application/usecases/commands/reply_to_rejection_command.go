package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrReplyToRejectionCommandIsNotConstructed = errors.New(
	"ReplyToRejectionCommand must be created via NewReplyToRejectionCommand constructor",
)

type ReplyToRejectionCommand struct {
	manufacturingOrderID kernel.UUID
	rejectionID          kernel.UUID
	actorID              kernel.UUID
	reply                string

	guard guard.ConstructorGuard
}

func NewReplyToRejectionCommand(manufacturingOrderID, rejectionID, actorID kernel.UUID, reply string) (ReplyToRejectionCommand, error) {
	if err := errors.Join(manufacturingOrderID.Validate(), rejectionID.Validate(), actorID.Validate()); err != nil {
		return ReplyToRejectionCommand{}, err
	}
	return ReplyToRejectionCommand{
		manufacturingOrderID: manufacturingOrderID,
		rejectionID:          rejectionID,
		actorID:              actorID,
		reply:                reply,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c ReplyToRejectionCommand) Validate() error {
	return c.guard.Validate(ErrReplyToRejectionCommandIsNotConstructed)
}

func (c ReplyToRejectionCommand) ManufacturingOrderID() kernel.UUID { return c.manufacturingOrderID }
func (c ReplyToRejectionCommand) RejectionID() kernel.UUID          { return c.rejectionID }
func (c ReplyToRejectionCommand) ActorID() kernel.UUID              { return c.actorID }
func (c ReplyToRejectionCommand) Reply() string                     { return c.reply }
