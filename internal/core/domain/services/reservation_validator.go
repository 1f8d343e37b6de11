package services

import (
	"fmt"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ReservationValidator checks that curtain lines never consume more of a draft
// item than the item's quantity.
//
// The reserved amount passed in must come from the same transaction that
// writes the line, after the item row has been locked; the validator itself
// only does the arithmetic.
type ReservationValidator struct{}

func NewReservationValidator() ReservationValidator {
	return ReservationValidator{}
}

// CheckLine validates a line of the given kind asking for requested units of
// item while reserved units are already held by the item's other lines.
//
// Returns:
//   - errs.ValueIsInvalidError when the item classification does not match the line kind
//   - errs.OverAllocationError when reserved + requested exceeds the item quantity
func (ReservationValidator) CheckLine(item *draft.Item, kind curtain.LineKind, reserved decimal.Decimal, requested kernel.Quantity) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := requested.Validate(); err != nil {
		return err
	}
	if !matches(item.Classification(), kind) {
		return errs.NewValueIsInvalidErrorWithCause("item_id",
			fmt.Errorf("a %s line cannot consume %s item %s", kind, item.Classification(), item.ID()))
	}
	available := item.Quantity().Decimal().Sub(reserved)
	if reserved.Add(requested.Decimal()).GreaterThan(item.Quantity().Decimal()) {
		return errs.NewOverAllocationError(item.ID().String(), requested.String(), available.String())
	}
	return nil
}

// CheckCapacity validates lowering or raising the quantity of item to
// quantity while reserved units are held by its lines.
func (ReservationValidator) CheckCapacity(item *draft.Item, quantity kernel.Quantity, reserved decimal.Decimal) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := quantity.Validate(); err != nil {
		return err
	}
	if reserved.GreaterThan(quantity.Decimal()) {
		return errs.NewOverAllocationError(item.ID().String(), reserved.String(), quantity.String())
	}
	return nil
}

func matches(c draft.Classification, kind curtain.LineKind) bool {
	switch kind {
	case curtain.LineFabric:
		return c == draft.ClassificationFabric
	case curtain.LineAccessory:
		return c == draft.ClassificationAccessory
	default:
		return false
	}
}
