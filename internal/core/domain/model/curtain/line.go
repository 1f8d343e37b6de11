package curtain

import (
	"errors"
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

type LineKind string

const (
	LineFabric    LineKind = "fabric"
	LineAccessory LineKind = "accessory"
)

func (k LineKind) Validate() error {
	switch k {
	case LineFabric, LineAccessory:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a line kind", string(k)))
	}
}

// Line is a fabric or accessory line consuming part of an item's quantity.
type Line struct {
	id            kernel.UUID
	kind          LineKind
	itemRef       ItemRef
	quantity      kernel.Quantity
	name          string
	isConstructed bool
}

func NewLine(id kernel.UUID, kind LineKind, itemRef ItemRef, quantity kernel.Quantity, name string) (*Line, error) {
	if err := errors.Join(id.Validate(), kind.Validate(), itemRef.Validate(), quantity.Validate()); err != nil {
		return nil, err
	}
	return &Line{
		id:            id,
		kind:          kind,
		itemRef:       itemRef,
		quantity:      quantity,
		name:          name,
		isConstructed: true,
	}, nil
}

func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.UUID           { return l.id }
func (l *Line) Kind() LineKind            { return l.kind }
func (l *Line) ItemRef() ItemRef          { return l.itemRef }
func (l *Line) Quantity() kernel.Quantity { return l.quantity }
func (l *Line) Name() string              { return l.name }
