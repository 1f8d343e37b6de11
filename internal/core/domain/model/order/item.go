package order

import (
	"errors"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItemFromDraft")

// Item is an order line materialized from a draft item with the same id.
type Item struct {
	id             kernel.UUID
	productID      kernel.UUID
	quantity       kernel.Quantity
	unitPrice      decimal.Decimal
	discountPct    decimal.Decimal
	classification draft.Classification
	addedBy        kernel.UUID
	modifiedBy     kernel.UUID
	isConstructed  bool
}

func NewItemFromDraft(src *draft.Item) (*Item, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return &Item{
		id:             src.ID(),
		productID:      src.ProductID(),
		quantity:       src.Quantity(),
		unitPrice:      src.UnitPrice(),
		discountPct:    src.DiscountPct(),
		classification: src.Classification(),
		addedBy:        src.AddedBy(),
		modifiedBy:     src.ModifiedBy(),
		isConstructed:  true,
	}, nil
}

// RestoreItem rebuilds an order item through the draft item rules so both share one validation.
func RestoreItem(
	id, productID kernel.UUID,
	quantity kernel.Quantity,
	unitPrice, discountPct decimal.Decimal,
	classification draft.Classification,
	addedBy, modifiedBy kernel.UUID,
) (*Item, error) {
	src, err := draft.RestoreItem(id, productID, quantity, unitPrice, discountPct, classification, addedBy, modifiedBy)
	if err != nil {
		return nil, err
	}
	return NewItemFromDraft(src)
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID                      { return i.id }
func (i *Item) ProductID() kernel.UUID               { return i.productID }
func (i *Item) Quantity() kernel.Quantity            { return i.quantity }
func (i *Item) UnitPrice() decimal.Decimal           { return i.unitPrice }
func (i *Item) DiscountPct() decimal.Decimal         { return i.discountPct }
func (i *Item) Classification() draft.Classification { return i.classification }
func (i *Item) AddedBy() kernel.UUID                 { return i.addedBy }
func (i *Item) ModifiedBy() kernel.UUID              { return i.modifiedBy }

// ToDraftItem copies the order item into a new draft item for edit mode.
func (i *Item) ToDraftItem(id, actor kernel.UUID) (*draft.Item, error) {
	return draft.NewItem(id, i.productID, i.quantity, i.unitPrice, i.discountPct, i.classification, actor)
}
