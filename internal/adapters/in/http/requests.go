package http

import (
	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"

	"github.com/shopspring/decimal"
)

// Request and response bodies. Decimals accept JSON numbers and strings.

type NewDraft struct {
	CustomerID *kernel.UUID `json:"customer_id"`
	BranchID   *kernel.UUID `json:"branch_id"`
}

type BasicInfo struct {
	CustomerID    *kernel.UUID `json:"customer_id"`
	BranchID      *kernel.UUID `json:"branch_id"`
	SalespersonID *kernel.UUID `json:"salesperson_id"`
	Notes         string       `json:"notes"`
}

type OrderTypeStep struct {
	OrderType      kernel.OrderType `json:"order_type"`
	InvoiceNumber  string           `json:"invoice_number"`
	ContractNumber string           `json:"contract_number"`
}

type PaymentStep struct {
	Method     draft.PaymentMethod `json:"method"`
	PaidAmount decimal.Decimal     `json:"paid_amount"`
	Reference  string              `json:"reference"`
}

type NewItem struct {
	ProductID   kernel.UUID      `json:"product_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal  `json:"discount_pct"`
}

type ItemUpdate struct {
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

type NewCurtain struct {
	Sequence  int               `json:"sequence"`
	Room      string            `json:"room"`
	Width     decimal.Decimal   `json:"width"`
	Height    decimal.Decimal   `json:"height"`
	MountType curtain.MountType `json:"mount_type"`
	BoxWidth  *decimal.Decimal  `json:"box_width"`
	BoxDepth  *decimal.Decimal  `json:"box_depth"`
}

type NewCurtainLine struct {
	Kind     curtain.LineKind `json:"kind"`
	ItemID   kernel.UUID      `json:"item_id"`
	Quantity decimal.Decimal  `json:"quantity"`
	Name     string           `json:"name"`
}

type CurtainLineUpdate struct {
	Quantity decimal.Decimal `json:"quantity"`
	Name     string          `json:"name"`
}

type Transition struct {
	To       manufacturing.Status `json:"to"`
	Override bool                 `json:"override"`
	Note     string               `json:"note"`
}

type Rejection struct {
	Reason string `json:"reason"`
}

type RejectionReply struct {
	RejectionID kernel.UUID `json:"rejection_id"`
	Reply       string      `json:"reply"`
}

type Approval struct {
	Note string `json:"note"`
}

type Created struct {
	ID kernel.UUID `json:"id"`
}

type Finalized struct {
	OrderID kernel.UUID `json:"order_id"`
}

type StepResult struct {
	Step       int          `json:"step"`
	NextStep   int          `json:"next_step"`
	NextScreen draft.Screen `json:"next_screen"`
}
