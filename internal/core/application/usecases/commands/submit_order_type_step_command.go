package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrSubmitOrderTypeStepCommandIsNotConstructed = errors.New(
	"SubmitOrderTypeStepCommand must be created via NewSubmitOrderTypeStepCommand constructor",
)

// SubmitOrderTypeStepCommand carries the order type screen. The contract
// number is required only for types that need a contract.
type SubmitOrderTypeStepCommand struct {
	draftID        kernel.UUID
	actorID        kernel.UUID
	orderType      kernel.OrderType
	invoiceNumber  string
	contractNumber string

	guard guard.ConstructorGuard
}

func NewSubmitOrderTypeStepCommand(
	draftID, actorID kernel.UUID,
	orderType kernel.OrderType,
	invoiceNumber, contractNumber string,
) (SubmitOrderTypeStepCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return SubmitOrderTypeStepCommand{}, err
	}
	return SubmitOrderTypeStepCommand{
		draftID:        draftID,
		actorID:        actorID,
		orderType:      orderType,
		invoiceNumber:  invoiceNumber,
		contractNumber: contractNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitOrderTypeStepCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderTypeStepCommandIsNotConstructed)
}

func (c SubmitOrderTypeStepCommand) DraftID() kernel.UUID        { return c.draftID }
func (c SubmitOrderTypeStepCommand) ActorID() kernel.UUID        { return c.actorID }
func (c SubmitOrderTypeStepCommand) OrderType() kernel.OrderType { return c.orderType }
func (c SubmitOrderTypeStepCommand) InvoiceNumber() string       { return c.invoiceNumber }
func (c SubmitOrderTypeStepCommand) ContractNumber() string      { return c.contractNumber }
