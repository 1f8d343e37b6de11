package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrCreateDraftCommandIsNotConstructed = errors.New(
	"CreateDraftCommand must be created via NewCreateDraftCommand constructor",
)

// CreateDraftCommand starts a new wizard session for an actor. Customer and
// branch may be preselected.
//
// Example:
//
//	cmd, err := NewCreateDraftCommand(kernel.NewUUID(), actorID, nil, &branchID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateDraftCommand struct {
	draftID    kernel.UUID
	actorID    kernel.UUID
	customerID *kernel.UUID
	branchID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateDraftCommand(draftID, actorID kernel.UUID, customerID, branchID *kernel.UUID) (CreateDraftCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return CreateDraftCommand{}, err
	}
	return CreateDraftCommand{
		draftID:    draftID,
		actorID:    actorID,
		customerID: customerID,
		branchID:   branchID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDraftCommand) Validate() error {
	return c.guard.Validate(ErrCreateDraftCommandIsNotConstructed)
}

func (c CreateDraftCommand) DraftID() kernel.UUID     { return c.draftID }
func (c CreateDraftCommand) ActorID() kernel.UUID     { return c.actorID }
func (c CreateDraftCommand) CustomerID() *kernel.UUID { return c.customerID }
func (c CreateDraftCommand) BranchID() *kernel.UUID   { return c.branchID }
