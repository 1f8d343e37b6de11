package commands

import (
	"errors"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrSubmitPaymentStepCommandIsNotConstructed = errors.New(
	"SubmitPaymentStepCommand must be created via NewSubmitPaymentStepCommand constructor",
)

type SubmitPaymentStepCommand struct {
	draftID kernel.UUID
	actorID kernel.UUID
	payment draft.Payment

	guard guard.ConstructorGuard
}

func NewSubmitPaymentStepCommand(draftID, actorID kernel.UUID, payment draft.Payment) (SubmitPaymentStepCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return SubmitPaymentStepCommand{}, err
	}
	return SubmitPaymentStepCommand{draftID: draftID, actorID: actorID, payment: payment, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitPaymentStepCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPaymentStepCommandIsNotConstructed)
}

func (c SubmitPaymentStepCommand) DraftID() kernel.UUID   { return c.draftID }
func (c SubmitPaymentStepCommand) ActorID() kernel.UUID   { return c.actorID }
func (c SubmitPaymentStepCommand) Payment() draft.Payment { return c.payment }
