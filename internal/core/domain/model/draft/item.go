package draft

import (
	"errors"
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

var hundred = decimal.NewFromInt(100)

// Classification tells plain products apart from fabrics and accessories that curtain lines can reserve.
type Classification string

const (
	ClassificationProduct   Classification = "product"
	ClassificationFabric    Classification = "fabric"
	ClassificationAccessory Classification = "accessory"
)

func (c Classification) Validate() error {
	switch c {
	case ClassificationProduct, ClassificationFabric, ClassificationAccessory:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("classification", fmt.Errorf("%q is not a classification", string(c)))
	}
}

// Item is one line of a draft. Its id is kept when the draft is finalized so the
// resulting order item and every curtain line reference stay stable.
type Item struct {
	id             kernel.UUID
	productID      kernel.UUID
	quantity       kernel.Quantity
	unitPrice      decimal.Decimal
	discountPct    decimal.Decimal
	classification Classification
	addedBy        kernel.UUID
	modifiedBy     kernel.UUID
	isConstructed  bool
}

func NewItem(
	id, productID kernel.UUID,
	quantity kernel.Quantity,
	unitPrice, discountPct decimal.Decimal,
	classification Classification,
	actor kernel.UUID,
) (*Item, error) {
	item := &Item{isConstructed: true}
	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setDiscountPct(discountPct),
		item.setClassification(classification),
		item.setActor(actor),
	); err != nil {
		return nil, err
	}
	item.addedBy = actor
	return item, nil
}

// RestoreItem rebuilds an item loaded from storage.
func RestoreItem(
	id, productID kernel.UUID,
	quantity kernel.Quantity,
	unitPrice, discountPct decimal.Decimal,
	classification Classification,
	addedBy, modifiedBy kernel.UUID,
) (*Item, error) {
	item, err := NewItem(id, productID, quantity, unitPrice, discountPct, classification, modifiedBy)
	if err != nil {
		return nil, err
	}
	item.addedBy = addedBy
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID                { return i.id }
func (i *Item) ProductID() kernel.UUID         { return i.productID }
func (i *Item) Quantity() kernel.Quantity      { return i.quantity }
func (i *Item) UnitPrice() decimal.Decimal     { return i.unitPrice }
func (i *Item) DiscountPct() decimal.Decimal   { return i.discountPct }
func (i *Item) Classification() Classification { return i.classification }
func (i *Item) AddedBy() kernel.UUID           { return i.addedBy }
func (i *Item) ModifiedBy() kernel.UUID        { return i.modifiedBy }

// Reservable reports whether curtain lines may consume this item.
func (i *Item) Reservable() bool {
	return i.classification == ClassificationFabric || i.classification == ClassificationAccessory
}

// Subtotal is quantity times unit price before discount.
func (i *Item) Subtotal() decimal.Decimal {
	return i.quantity.Decimal().Mul(i.unitPrice)
}

func (i *Item) Discount() decimal.Decimal {
	return i.Subtotal().Mul(i.discountPct).Div(hundred)
}

func (i *Item) change(quantity kernel.Quantity, unitPrice, discountPct decimal.Decimal, actor kernel.UUID) error {
	next := *i
	if err := errors.Join(
		next.setQuantity(quantity),
		next.setUnitPrice(unitPrice),
		next.setDiscountPct(discountPct),
		next.setActor(actor),
	); err != nil {
		return err
	}
	*i = next
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("product_id")
	}
	i.productID = id
	return nil
}

func (i *Item) setQuantity(q kernel.Quantity) error {
	if err := q.Validate(); err != nil {
		return err
	}
	i.quantity = q
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit_price", fmt.Errorf("%s is negative", price))
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setDiscountPct(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return errs.NewValueIsOutOfRangeError("discount_pct", pct.String(), 0, 100)
	}
	i.discountPct = pct
	return nil
}

func (i *Item) setClassification(c Classification) error {
	if err := c.Validate(); err != nil {
		return err
	}
	i.classification = c
	return nil
}

func (i *Item) setActor(actor kernel.UUID) error {
	if actor.IsZero() {
		return errs.NewValueIsRequiredError("actor_id")
	}
	i.modifiedBy = actor
	return nil
}
