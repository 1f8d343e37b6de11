package draft

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft constructor")

const maxNotesLength = 2000

// Draft is the aggregate root of an order under construction.
//
// Invariants:
//   - the owner never changes; other actors edit on behalf of the owner
//   - completed drafts reject every mutation
//   - totals are recomputed whenever the items change
//   - every mutation is appended to the history
type Draft struct {
	id             kernel.UUID
	ownerID        kernel.UUID
	currentStep    int
	completedSteps []int
	selectedType   kernel.OrderType
	customerID     *kernel.UUID
	branchID       *kernel.UUID
	salespersonID  *kernel.UUID
	invoiceNumber  string
	contractNumber string
	notes          string
	payment        Payment
	items          []*Item
	totals         *Totals
	history        []HistoryEntry
	completed      bool
	finalOrderID   *kernel.UUID
	editingOrderID *kernel.UUID
	createdAt      time.Time
	updatedAt      time.Time
	isConstructed  bool
}

// NewDraft starts a wizard session for owner at step 1.
func NewDraft(id, ownerID kernel.UUID, customerID, branchID *kernel.UUID) (*Draft, error) {
	if err := errors.Join(id.Validate(), validateActor(ownerID)); err != nil {
		return nil, err
	}
	at := now()
	d := &Draft{
		id:            id,
		ownerID:       ownerID,
		currentStep:   StepBasicInfo,
		customerID:    customerID,
		branchID:      branchID,
		payment:       Payment{PaidAmount: decimal.Zero},
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}
	d.record(ownerID, ActionCreated, nil)
	return d, nil
}

// EditSource is the state of an existing order copied into an edit-mode draft.
type EditSource struct {
	OrderID        kernel.UUID
	Type           kernel.OrderType
	CustomerID     *kernel.UUID
	BranchID       *kernel.UUID
	SalespersonID  *kernel.UUID
	InvoiceNumber  string
	ContractNumber string
	Notes          string
	Payment        Payment
	Items          []*Item
}

// NewEditDraft opens an edit-mode draft linked to an existing order. Every step
// is already complete so the actor can jump straight to the one to change.
func NewEditDraft(id, actor kernel.UUID, src EditSource) (*Draft, error) {
	d, err := NewDraft(id, actor, src.CustomerID, src.BranchID)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(src.OrderID.Validate(), src.Type.Validate()); err != nil {
		return nil, err
	}
	orderID := src.OrderID
	d.editingOrderID = &orderID
	d.selectedType = src.Type
	d.salespersonID = src.SalespersonID
	d.invoiceNumber = src.InvoiceNumber
	d.contractNumber = src.ContractNumber
	d.notes = src.Notes
	d.payment = src.Payment
	for _, item := range src.Items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
		d.items = append(d.items, item)
	}
	for n := 1; n <= d.StepCount(); n++ {
		d.completedSteps = append(d.completedSteps, n)
	}
	d.currentStep = d.StepCount()
	d.record(actor, ActionEditStarted, map[string]string{"order_id": orderID.String()})
	return d, nil
}

// RestoreParams carries a persisted draft back into the domain.
type RestoreParams struct {
	ID             kernel.UUID
	OwnerID        kernel.UUID
	CurrentStep    int
	CompletedSteps []int
	SelectedType   kernel.OrderType
	CustomerID     *kernel.UUID
	BranchID       *kernel.UUID
	SalespersonID  *kernel.UUID
	InvoiceNumber  string
	ContractNumber string
	Notes          string
	Payment        Payment
	Items          []*Item
	History        []HistoryEntry
	Completed      bool
	FinalOrderID   *kernel.UUID
	EditingOrderID *kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func RestoreDraft(p RestoreParams) (*Draft, error) {
	if err := errors.Join(p.ID.Validate(), validateActor(p.OwnerID)); err != nil {
		return nil, err
	}
	if p.SelectedType != "" {
		if err := p.SelectedType.Validate(); err != nil {
			return nil, err
		}
	}
	for _, item := range p.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	steps := slices.Clone(p.CompletedSteps)
	slices.Sort(steps)
	return &Draft{
		id:             p.ID,
		ownerID:        p.OwnerID,
		currentStep:    max(p.CurrentStep, StepBasicInfo),
		completedSteps: slices.Compact(steps),
		selectedType:   p.SelectedType,
		customerID:     p.CustomerID,
		branchID:       p.BranchID,
		salespersonID:  p.SalespersonID,
		invoiceNumber:  p.InvoiceNumber,
		contractNumber: p.ContractNumber,
		notes:          p.Notes,
		payment:        p.Payment,
		items:          p.Items,
		history:        p.History,
		completed:      p.Completed,
		finalOrderID:   p.FinalOrderID,
		editingOrderID: p.EditingOrderID,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		isConstructed:  true,
	}, nil
}

func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

func (d *Draft) ID() kernel.UUID                { return d.id }
func (d *Draft) OwnerID() kernel.UUID           { return d.ownerID }
func (d *Draft) CurrentStep() int               { return d.currentStep }
func (d *Draft) SelectedType() kernel.OrderType { return d.selectedType }
func (d *Draft) CustomerID() *kernel.UUID       { return d.customerID }
func (d *Draft) BranchID() *kernel.UUID         { return d.branchID }
func (d *Draft) SalespersonID() *kernel.UUID    { return d.salespersonID }
func (d *Draft) InvoiceNumber() string          { return d.invoiceNumber }
func (d *Draft) ContractNumber() string         { return d.contractNumber }
func (d *Draft) Notes() string                  { return d.notes }
func (d *Draft) Payment() Payment               { return d.payment }
func (d *Draft) IsCompleted() bool              { return d.completed }
func (d *Draft) FinalOrderID() *kernel.UUID     { return d.finalOrderID }
func (d *Draft) EditingOrderID() *kernel.UUID   { return d.editingOrderID }
func (d *Draft) CreatedAt() time.Time           { return d.createdAt }
func (d *Draft) UpdatedAt() time.Time           { return d.updatedAt }

func (d *Draft) CompletedSteps() []int {
	return slices.Clone(d.completedSteps)
}

func (d *Draft) Items() []*Item {
	return slices.Clone(d.items)
}

func (d *Draft) History() []HistoryEntry {
	return slices.Clone(d.history)
}

// IsEditMode reports whether finalization overwrites an existing order.
func (d *Draft) IsEditMode() bool {
	return d.editingOrderID != nil
}

// Item returns the draft item with the given id.
func (d *Draft) Item(id kernel.UUID) (*Item, error) {
	for _, item := range d.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", id.String())
}

// Totals returns the cached totals, recomputing them after an item change.
func (d *Draft) Totals() Totals {
	if d.totals == nil {
		t := computeTotals(d.items)
		d.totals = &t
	}
	return *d.totals
}

// EnsureOpen fails with a state conflict once the draft has been finalized.
func (d *Draft) EnsureOpen() error {
	if d.completed {
		return errs.NewStateConflictError("draft", "completed", "modify")
	}
	return nil
}

// BasicInfo is the payload of the basic info step.
type BasicInfo struct {
	CustomerID    *kernel.UUID
	BranchID      *kernel.UUID
	SalespersonID *kernel.UUID
	Notes         string
}

func (d *Draft) SetBasicInfo(actor kernel.UUID, info BasicInfo) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	var problems []error
	if info.CustomerID == nil || info.CustomerID.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("customer_id"))
	}
	if info.BranchID == nil || info.BranchID.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("branch_id"))
	}
	if len(info.Notes) > maxNotesLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("notes", len(info.Notes), 0, maxNotesLength))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	d.customerID = info.CustomerID
	d.branchID = info.BranchID
	d.salespersonID = info.SalespersonID
	d.notes = info.Notes
	d.record(actor, ActionBasicInfoSaved, nil)
	return nil
}

// SetOrderType stores the order type step. When the new type flips the contract
// requirement, steps from 5 on are no longer complete and the current step is
// clamped to the new last step.
func (d *Draft) SetOrderType(actor kernel.UUID, t kernel.OrderType, invoiceNumber, contractNumber string) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.RequiresContract() && contractNumber == "" {
		return errs.NewValueIsRequiredError("contract_number")
	}
	flipped := d.selectedType.RequiresContract() != t.RequiresContract()
	previous := d.selectedType
	d.selectedType = t
	d.invoiceNumber = invoiceNumber
	if t.RequiresContract() {
		d.contractNumber = contractNumber
	} else {
		d.contractNumber = ""
	}
	if flipped {
		d.completedSteps = slices.DeleteFunc(d.completedSteps, func(n int) bool { return n >= StepContract })
		d.currentStep = min(d.currentStep, d.StepCount())
	}
	d.record(actor, ActionOrderTypeSaved, map[string]string{"from": string(previous), "to": string(t)})
	return nil
}

// AddItem appends a new item.
func (d *Draft) AddItem(actor kernel.UUID, item *Item) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if _, err := d.Item(item.ID()); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("item_id", fmt.Errorf("item %s already exists", item.ID()))
	}
	d.items = append(d.items, item)
	d.totals = nil
	d.record(actor, ActionItemAdded, map[string]string{"item_id": item.ID().String()})
	return nil
}

// UpdateItem changes quantity, price and discount. Callers check reservations
// before lowering the quantity.
func (d *Draft) UpdateItem(
	actor, itemID kernel.UUID,
	quantity kernel.Quantity,
	unitPrice, discountPct decimal.Decimal,
) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	item, err := d.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.change(quantity, unitPrice, discountPct, actor); err != nil {
		return err
	}
	d.totals = nil
	d.record(actor, ActionItemUpdated, map[string]string{"item_id": itemID.String()})
	return nil
}

// RemoveItem drops an item. Curtain lines referencing it are removed by the caller.
func (d *Draft) RemoveItem(actor, itemID kernel.UUID) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	if _, err := d.Item(itemID); err != nil {
		return err
	}
	d.items = slices.DeleteFunc(d.items, func(item *Item) bool { return item.ID().IsEqual(itemID) })
	d.totals = nil
	d.record(actor, ActionItemRemoved, map[string]string{"item_id": itemID.String()})
	return nil
}

// ValidateItems is the check of the items step.
func (d *Draft) ValidateItems() error {
	if len(d.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range d.items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SetPayment stores the payment step. The paid amount must lie within [0, final total]
// and every method other than cash needs a reference.
func (d *Draft) SetPayment(actor kernel.UUID, p Payment) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	var problems []error
	if err := p.Method.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := d.checkPaid(p.PaidAmount); err != nil {
		problems = append(problems, err)
	}
	if p.Method != PaymentCash && p.Method != "" && p.Reference == "" {
		problems = append(problems, errs.NewValueIsRequiredError("reference"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	d.payment = p
	d.record(actor, ActionPaymentSaved, map[string]string{"paid_amount": p.PaidAmount.String()})
	return nil
}

// ValidatePayment re-checks the saved paid amount against the current total.
// Items can change after the payment step was completed.
func (d *Draft) ValidatePayment() error {
	return d.checkPaid(d.payment.PaidAmount)
}

func (d *Draft) checkPaid(paid decimal.Decimal) error {
	total := d.Totals().Final
	if paid.IsNegative() || paid.GreaterThan(total) {
		return errs.NewValueIsOutOfRangeError("paid_amount", paid.String(), "0", total.String())
	}
	return nil
}

// Touch records a mutation that happened outside the aggregate, such as a curtain edit.
func (d *Draft) Touch(actor kernel.UUID, action string, detail map[string]string) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	d.record(actor, action, detail)
	return nil
}

// MissingSteps lists the steps among 1..4 that are required for finalization but not complete.
func (d *Draft) MissingSteps() []int {
	var missing []int
	for n := StepBasicInfo; n <= StepPayment; n++ {
		if !d.isStepComplete(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// MarkCompleted links the draft to the order it produced and closes it.
func (d *Draft) MarkCompleted(actor, orderID kernel.UUID) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.completed = true
	d.finalOrderID = &orderID
	d.record(actor, ActionFinalized, map[string]string{"order_id": orderID.String()})
	return nil
}

func (d *Draft) isStepComplete(n int) bool {
	_, found := slices.BinarySearch(d.completedSteps, n)
	return found
}

func validateActor(actor kernel.UUID) error {
	if actor.IsZero() {
		return errs.NewValueIsRequiredError("actor_id")
	}
	return nil
}

var now = func() time.Time { return time.Now().UTC() }
