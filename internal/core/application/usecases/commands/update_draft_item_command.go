package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateDraftItemCommandIsNotConstructed = errors.New(
	"UpdateDraftItemCommand must be created via NewUpdateDraftItemCommand constructor",
)

type UpdateDraftItemCommand struct {
	draftID     kernel.UUID
	itemID      kernel.UUID
	actorID     kernel.UUID
	quantity    kernel.Quantity
	unitPrice   decimal.Decimal
	discountPct decimal.Decimal

	guard guard.ConstructorGuard
}

func NewUpdateDraftItemCommand(
	draftID, itemID, actorID kernel.UUID,
	quantity kernel.Quantity,
	unitPrice, discountPct decimal.Decimal,
) (UpdateDraftItemCommand, error) {
	if err := errors.Join(draftID.Validate(), itemID.Validate(), actorID.Validate()); err != nil {
		return UpdateDraftItemCommand{}, err
	}
	return UpdateDraftItemCommand{
		draftID:     draftID,
		itemID:      itemID,
		actorID:     actorID,
		quantity:    quantity,
		unitPrice:   unitPrice,
		discountPct: discountPct,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDraftItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDraftItemCommandIsNotConstructed)
}

func (c UpdateDraftItemCommand) DraftID() kernel.UUID         { return c.draftID }
func (c UpdateDraftItemCommand) ItemID() kernel.UUID          { return c.itemID }
func (c UpdateDraftItemCommand) ActorID() kernel.UUID         { return c.actorID }
func (c UpdateDraftItemCommand) Quantity() kernel.Quantity    { return c.quantity }
func (c UpdateDraftItemCommand) UnitPrice() decimal.Decimal   { return c.unitPrice }
func (c UpdateDraftItemCommand) DiscountPct() decimal.Decimal { return c.discountPct }
