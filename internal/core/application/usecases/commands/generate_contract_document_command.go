package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrGenerateContractDocumentCommandIsNotConstructed = errors.New(
	"GenerateContractDocumentCommand must be created via NewGenerateContractDocumentCommand constructor",
)

type GenerateContractDocumentCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateContractDocumentCommand(orderID kernel.UUID) (GenerateContractDocumentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateContractDocumentCommand{}, err
	}
	return GenerateContractDocumentCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c GenerateContractDocumentCommand) Validate() error {
	return c.guard.Validate(ErrGenerateContractDocumentCommandIsNotConstructed)
}

func (c GenerateContractDocumentCommand) OrderID() kernel.UUID { return c.orderID }
