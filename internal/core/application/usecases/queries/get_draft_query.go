// Package queries contains the read operations of the order wizard. Draft
// reads go through the repositories so the returned view matches what the
// commands see; order tracking and the manufacturing board are flat SQL read
// models.
package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDraftQueryIsNotConstructed = errors.New(
	"GetDraftQuery must be created via NewGetDraftQuery constructor",
)

// GetDraftQuery reads a draft with its items and curtains on behalf of an actor.
//
// Example:
//
//	query, err := NewGetDraftQuery(draftID, actorID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetDraftQuery struct {
	draftID kernel.UUID
	actorID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetDraftQuery(draftID, actorID kernel.UUID) (GetDraftQuery, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return GetDraftQuery{}, err
	}
	return GetDraftQuery{draftID: draftID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDraftQuery) Validate() error {
	return q.guard.Validate(ErrGetDraftQueryIsNotConstructed)
}

func (q GetDraftQuery) DraftID() kernel.UUID { return q.draftID }
func (q GetDraftQuery) ActorID() kernel.UUID { return q.actorID }

// GetDraftQueryResponse is the full wizard state of a draft.
type GetDraftQueryResponse struct {
	ID             kernel.UUID         `json:"id"`
	OwnerID        kernel.UUID         `json:"owner_id"`
	CurrentStep    int                 `json:"current_step"`
	StepCount      int                 `json:"step_count"`
	CompletedSteps []int               `json:"completed_steps"`
	SelectedType   kernel.OrderType    `json:"selected_type,omitempty"`
	CustomerID     *kernel.UUID        `json:"customer_id,omitempty"`
	BranchID       *kernel.UUID        `json:"branch_id,omitempty"`
	SalespersonID  *kernel.UUID        `json:"salesperson_id,omitempty"`
	InvoiceNumber  string              `json:"invoice_number,omitempty"`
	ContractNumber string              `json:"contract_number,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Payment        DraftPayment        `json:"payment"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Discount       decimal.Decimal     `json:"discount"`
	Total          decimal.Decimal     `json:"total"`
	Items          []DraftItem         `json:"items"`
	Curtains       []DraftCurtain      `json:"curtains"`
	History        []DraftHistoryEntry `json:"history"`
	Completed      bool                `json:"completed"`
	FinalOrderID   *kernel.UUID        `json:"final_order_id,omitempty"`
	EditingOrderID *kernel.UUID        `json:"editing_order_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type DraftPayment struct {
	Method     draft.PaymentMethod `json:"method,omitempty"`
	PaidAmount decimal.Decimal     `json:"paid_amount"`
	Reference  string              `json:"reference,omitempty"`
}

// DraftItem carries the quantity already reserved by curtain lines next to
// the item quantity.
type DraftItem struct {
	ID             kernel.UUID          `json:"id"`
	ProductID      kernel.UUID          `json:"product_id"`
	Quantity       decimal.Decimal      `json:"quantity"`
	Reserved       decimal.Decimal      `json:"reserved"`
	UnitPrice      decimal.Decimal      `json:"unit_price"`
	DiscountPct    decimal.Decimal      `json:"discount_pct"`
	Classification draft.Classification `json:"classification"`
}

type DraftCurtain struct {
	ID        kernel.UUID        `json:"id"`
	Sequence  int                `json:"sequence"`
	Room      string             `json:"room,omitempty"`
	Width     decimal.Decimal    `json:"width"`
	Height    decimal.Decimal    `json:"height"`
	MountType string             `json:"mount_type"`
	BoxWidth  *decimal.Decimal   `json:"box_width,omitempty"`
	BoxDepth  *decimal.Decimal   `json:"box_depth,omitempty"`
	Lines     []DraftCurtainLine `json:"lines"`
}

type DraftCurtainLine struct {
	ID       kernel.UUID     `json:"id"`
	Kind     string          `json:"kind"`
	ItemID   kernel.UUID     `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Name     string          `json:"name,omitempty"`
}

type DraftHistoryEntry struct {
	ActorID kernel.UUID       `json:"actor_id"`
	Action  string            `json:"action"`
	At      time.Time         `json:"at"`
	Detail  map[string]string `json:"detail,omitempty"`
}
