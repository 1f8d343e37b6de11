package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddDraftItemCommandIsNotConstructed = errors.New(
	"AddDraftItemCommand must be created via NewAddDraftItemCommand constructor",
)

// AddDraftItemCommand adds a catalog product to a draft. A nil unit price
// takes the catalog price.
type AddDraftItemCommand struct {
	draftID     kernel.UUID
	itemID      kernel.UUID
	actorID     kernel.UUID
	productID   kernel.UUID
	quantity    kernel.Quantity
	unitPrice   *decimal.Decimal
	discountPct decimal.Decimal

	guard guard.ConstructorGuard
}

func NewAddDraftItemCommand(
	draftID, itemID, actorID, productID kernel.UUID,
	quantity kernel.Quantity,
	unitPrice *decimal.Decimal,
	discountPct decimal.Decimal,
) (AddDraftItemCommand, error) {
	if err := errors.Join(draftID.Validate(), itemID.Validate(), actorID.Validate()); err != nil {
		return AddDraftItemCommand{}, err
	}
	return AddDraftItemCommand{
		draftID:     draftID,
		itemID:      itemID,
		actorID:     actorID,
		productID:   productID,
		quantity:    quantity,
		unitPrice:   unitPrice,
		discountPct: discountPct,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddDraftItemCommand) Validate() error {
	return c.guard.Validate(ErrAddDraftItemCommandIsNotConstructed)
}

func (c AddDraftItemCommand) DraftID() kernel.UUID         { return c.draftID }
func (c AddDraftItemCommand) ItemID() kernel.UUID          { return c.itemID }
func (c AddDraftItemCommand) ActorID() kernel.UUID         { return c.actorID }
func (c AddDraftItemCommand) ProductID() kernel.UUID       { return c.productID }
func (c AddDraftItemCommand) Quantity() kernel.Quantity    { return c.quantity }
func (c AddDraftItemCommand) UnitPrice() *decimal.Decimal  { return c.unitPrice }
func (c AddDraftItemCommand) DiscountPct() decimal.Decimal { return c.discountPct }
