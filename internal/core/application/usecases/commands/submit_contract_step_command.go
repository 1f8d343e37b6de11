package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrSubmitContractStepCommandIsNotConstructed = errors.New(
	"SubmitContractStepCommand must be created via NewSubmitContractStepCommand constructor",
)

// SubmitContractStepCommand confirms the contract screen, where curtains are
// measured. Curtains are edited with the curtain commands before.
type SubmitContractStepCommand struct {
	draftID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSubmitContractStepCommand(draftID, actorID kernel.UUID) (SubmitContractStepCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return SubmitContractStepCommand{}, err
	}
	return SubmitContractStepCommand{draftID: draftID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitContractStepCommand) Validate() error {
	return c.guard.Validate(ErrSubmitContractStepCommandIsNotConstructed)
}

func (c SubmitContractStepCommand) DraftID() kernel.UUID { return c.draftID }
func (c SubmitContractStepCommand) ActorID() kernel.UUID { return c.actorID }
