package curtain

import (
	"errors"
	"fmt"
	"slices"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrCurtainIsNotConstructed = errors.New("Curtain must be created via NewCurtain constructor")

type MountType string

const (
	MountWall    MountType = "wall"
	MountCeiling MountType = "ceiling"
)

func (m MountType) Validate() error {
	switch m {
	case MountWall, MountCeiling:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("mount_type", fmt.Errorf("%q is not a mount type", string(m)))
	}
}

// Measurements describe one curtain as entered on the contract step.
type Measurements struct {
	Sequence  int
	Room      string
	Width     decimal.Decimal
	Height    decimal.Decimal
	MountType MountType
	BoxWidth  *decimal.Decimal
	BoxDepth  *decimal.Decimal
}

func (m Measurements) validate() error {
	var problems []error
	if m.Sequence < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("sequence", m.Sequence, 1, "unbounded"))
	}
	if !m.Width.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("width", fmt.Errorf("%s is not greater than 0", m.Width)))
	}
	if !m.Height.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("height", fmt.Errorf("%s is not greater than 0", m.Height)))
	}
	if err := m.MountType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if m.BoxWidth != nil && m.BoxWidth.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidError("box_width"))
	}
	if m.BoxDepth != nil && m.BoxDepth.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidError("box_depth"))
	}
	return errors.Join(problems...)
}

// Curtain is an aggregate owned by a draft or an order.
//
// Invariants:
//   - every line references an item of the owner's stage
//   - width and height are positive
type Curtain struct {
	id            kernel.UUID
	owner         Owner
	measurements  Measurements
	lines         []*Line
	isConstructed bool
}

func NewCurtain(id kernel.UUID, owner Owner, m Measurements) (*Curtain, error) {
	if err := errors.Join(id.Validate(), owner.Validate(), m.validate()); err != nil {
		return nil, err
	}
	return &Curtain{id: id, owner: owner, measurements: m, isConstructed: true}, nil
}

// RestoreCurtain rebuilds a curtain and its lines loaded from storage.
func RestoreCurtain(id kernel.UUID, owner Owner, m Measurements, lines []*Line) (*Curtain, error) {
	c, err := NewCurtain(id, owner, m)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if err = c.AddLine(line); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Curtain) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCurtainIsNotConstructed
	}
	return nil
}

func (c *Curtain) ID() kernel.UUID            { return c.id }
func (c *Curtain) Owner() Owner               { return c.owner }
func (c *Curtain) Measurements() Measurements { return c.measurements }
func (c *Curtain) Lines() []*Line             { return slices.Clone(c.lines) }

func (c *Curtain) Line(id kernel.UUID) (*Line, error) {
	for _, line := range c.lines {
		if line.ID().IsEqual(id) {
			return line, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("line", id.String())
}

// AddLine attaches a line; its item reference must be of the owner's stage.
func (c *Curtain) AddLine(line *Line) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if line.ItemRef().Stage() != c.owner.Stage() {
		return errs.NewValueIsInvalidErrorWithCause("item_id",
			fmt.Errorf("a %s curtain cannot reference a %s item", c.owner.Stage(), line.ItemRef().Stage()))
	}
	if _, err := c.Line(line.ID()); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("line_id", fmt.Errorf("line %s already exists", line.ID()))
	}
	c.lines = append(c.lines, line)
	return nil
}

// UpdateLine replaces the quantity and name of a line. Reservations are checked by the caller.
func (c *Curtain) UpdateLine(id kernel.UUID, quantity kernel.Quantity, name string) error {
	line, err := c.Line(id)
	if err != nil {
		return err
	}
	if err = quantity.Validate(); err != nil {
		return err
	}
	line.quantity = quantity
	line.name = name
	return nil
}

func (c *Curtain) RemoveLine(id kernel.UUID) error {
	if _, err := c.Line(id); err != nil {
		return err
	}
	c.lines = slices.DeleteFunc(c.lines, func(l *Line) bool { return l.ID().IsEqual(id) })
	return nil
}

// TransferToOrder flips a draft-owned curtain to the order and every line's item
// reference to the order item of the same id.
func (c *Curtain) TransferToOrder(orderID kernel.UUID) error {
	if !c.owner.IsDraft() {
		return errs.NewStateConflictError("curtain", string(c.owner.Stage()), string(StageOrder))
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.owner = OrderOwner(orderID)
	for _, line := range c.lines {
		line.itemRef = OrderItemRef(line.itemRef.ID())
	}
	return nil
}

// CopyToDraft copies an order-owned curtain into an edit-mode draft. itemIDs maps
// each order item id to the draft item created from it; lines get fresh ids.
func (c *Curtain) CopyToDraft(newID, draftID kernel.UUID, itemIDs map[kernel.UUID]kernel.UUID) (*Curtain, error) {
	cp, err := NewCurtain(newID, DraftOwner(draftID), c.measurements)
	if err != nil {
		return nil, err
	}
	for _, line := range c.lines {
		itemID, ok := itemIDs[line.ItemRef().ID()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("item", line.ItemRef().ID().String())
		}
		copied, lineErr := NewLine(kernel.NewUUID(), line.Kind(), DraftItemRef(itemID), line.Quantity(), line.Name())
		if lineErr != nil {
			return nil, lineErr
		}
		if err = cp.AddLine(copied); err != nil {
			return nil, err
		}
	}
	return cp, nil
}
