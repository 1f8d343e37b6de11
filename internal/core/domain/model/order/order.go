package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrderFromDraft constructor")

// Order is the aggregate root of a finalized sales order.
//
// Invariants:
//   - it has at least one item
//   - installation status is set if and only if the type is installation
//   - scalars and items change only through ReplaceFromDraft
type Order struct {
	id                 kernel.UUID
	number             string
	orderType          kernel.OrderType
	customerID         *kernel.UUID
	branchID           *kernel.UUID
	salespersonID      *kernel.UUID
	invoiceNumber      string
	contractNumber     string
	notes              string
	totals             draft.Totals
	paymentMethod      draft.PaymentMethod
	status             Status
	tracking           TrackingStatus
	installationStatus installation.Status
	createdBy          kernel.UUID
	items              []*Item
	createdAt          time.Time
	updatedAt          time.Time
	isConstructed      bool
}

// NewNumber derives a human readable order number from the creation date and id.
func NewNumber(at time.Time, id kernel.UUID) string {
	short := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), short)
}

// NewOrderFromDraft creates an order in create mode. Item ids are the draft item ids.
func NewOrderFromDraft(id kernel.UUID, d *draft.Draft, actor kernel.UUID) (*Order, error) {
	if err := errors.Join(id.Validate(), d.Validate()); err != nil {
		return nil, err
	}
	if actor.IsZero() {
		return nil, errs.NewValueIsRequiredError("actor_id")
	}
	at := now()
	o := &Order{
		id:            id,
		number:        NewNumber(at, id),
		status:        StatusNew,
		tracking:      TrackingNone,
		createdBy:     actor,
		createdAt:     at,
		isConstructed: true,
	}
	if err := o.copyFromDraft(d); err != nil {
		return nil, err
	}
	return o, nil
}

// ReplaceFromDraft overwrites scalars and items in edit mode. Status fields are kept.
func (o *Order) ReplaceFromDraft(d *draft.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if editing := d.EditingOrderID(); editing == nil || !editing.IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause("draft", fmt.Errorf("draft %s does not edit order %s", d.ID(), o.id))
	}
	return o.copyFromDraft(d)
}

func (o *Order) copyFromDraft(d *draft.Draft) error {
	if err := d.SelectedType().Validate(); err != nil {
		return err
	}
	source := d.Items()
	if len(source) == 0 {
		return errs.ErrEmptyOrder
	}
	items := make([]*Item, 0, len(source))
	for _, di := range source {
		item, err := NewItemFromDraft(di)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o.orderType = d.SelectedType()
	o.customerID = d.CustomerID()
	o.branchID = d.BranchID()
	o.salespersonID = d.SalespersonID()
	o.invoiceNumber = d.InvoiceNumber()
	o.contractNumber = d.ContractNumber()
	o.notes = d.Notes()
	o.totals = d.Totals()
	o.paymentMethod = d.Payment().Method
	o.items = items
	switch {
	case o.orderType != kernel.OrderTypeInstallation:
		o.installationStatus = ""
	case o.installationStatus == "":
		o.installationStatus = installation.NeedsScheduling
	}
	o.updatedAt = now()
	return nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID                 kernel.UUID
	Number             string
	Type               kernel.OrderType
	CustomerID         *kernel.UUID
	BranchID           *kernel.UUID
	SalespersonID      *kernel.UUID
	InvoiceNumber      string
	ContractNumber     string
	Notes              string
	Totals             draft.Totals
	PaymentMethod      draft.PaymentMethod
	Status             Status
	Tracking           TrackingStatus
	InstallationStatus installation.Status
	CreatedBy          kernel.UUID
	Items              []*Item
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func RestoreOrder(p RestoreParams) (*Order, error) {
	problems := []error{p.ID.Validate(), p.Type.Validate(), p.Status.Validate(), p.Tracking.Validate()}
	if p.InstallationStatus != "" {
		problems = append(problems, p.InstallationStatus.Validate())
	}
	for _, item := range p.Items {
		problems = append(problems, item.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return &Order{
		id:                 p.ID,
		number:             p.Number,
		orderType:          p.Type,
		customerID:         p.CustomerID,
		branchID:           p.BranchID,
		salespersonID:      p.SalespersonID,
		invoiceNumber:      p.InvoiceNumber,
		contractNumber:     p.ContractNumber,
		notes:              p.Notes,
		totals:             p.Totals,
		paymentMethod:      p.PaymentMethod,
		status:             p.Status,
		tracking:           p.Tracking,
		installationStatus: p.InstallationStatus,
		createdBy:          p.CreatedBy,
		items:              p.Items,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
		isConstructed:      true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                         { return o.id }
func (o *Order) Number() string                          { return o.number }
func (o *Order) Type() kernel.OrderType                  { return o.orderType }
func (o *Order) CustomerID() *kernel.UUID                { return o.customerID }
func (o *Order) BranchID() *kernel.UUID                  { return o.branchID }
func (o *Order) SalespersonID() *kernel.UUID             { return o.salespersonID }
func (o *Order) InvoiceNumber() string                   { return o.invoiceNumber }
func (o *Order) ContractNumber() string                  { return o.contractNumber }
func (o *Order) Notes() string                           { return o.notes }
func (o *Order) Totals() draft.Totals                    { return o.totals }
func (o *Order) PaymentMethod() draft.PaymentMethod      { return o.paymentMethod }
func (o *Order) Status() Status                          { return o.status }
func (o *Order) TrackingStatus() TrackingStatus          { return o.tracking }
func (o *Order) InstallationStatus() installation.Status { return o.installationStatus }
func (o *Order) CreatedBy() kernel.UUID                  { return o.createdBy }
func (o *Order) CreatedAt() time.Time                    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                    { return o.updatedAt }

func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// ApplyManufacturingStatus stores the order and tracking status derived from manufacturing.
func (o *Order) ApplyManufacturingStatus(status Status, tracking TrackingStatus) error {
	if err := errors.Join(status.Validate(), tracking.Validate()); err != nil {
		return err
	}
	o.status = status
	o.tracking = tracking
	o.updatedAt = now()
	return nil
}

// ApplyInstallationStatus stores the installation status of an installation order,
// keeping an already scheduled installation scheduled.
func (o *Order) ApplyInstallationStatus(target installation.Status) error {
	if o.orderType != kernel.OrderTypeInstallation {
		return errs.NewStateConflictError("order", string(o.orderType), "installation status")
	}
	if err := target.Validate(); err != nil {
		return err
	}
	o.installationStatus = installation.Settle(o.installationStatus, target)
	o.updatedAt = now()
	return nil
}

var now = func() time.Time { return time.Now().UTC() }
