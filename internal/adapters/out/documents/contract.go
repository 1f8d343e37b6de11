package documents

import (
	"time"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

type contract struct {
	OrderID        string            `json:"order_id"`
	OrderNumber    string            `json:"order_number"`
	ContractNumber string            `json:"contract_number"`
	InvoiceNumber  string            `json:"invoice_number,omitempty"`
	Type           string            `json:"type"`
	CustomerID     string            `json:"customer_id,omitempty"`
	Items          []contractItem    `json:"items"`
	Subtotal       string            `json:"subtotal"`
	Discount       string            `json:"discount"`
	Total          string            `json:"total"`
	PaymentMethod  string            `json:"payment_method,omitempty"`
	Curtains       []contractCurtain `json:"curtains"`
	Notes          string            `json:"notes,omitempty"`
	GeneratedBy    string            `json:"generated_by"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

type contractItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Kind        string `json:"kind"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	DiscountPct string `json:"discount_pct"`
}

type contractCurtain struct {
	Sequence  int            `json:"sequence"`
	Room      string         `json:"room,omitempty"`
	Width     string         `json:"width"`
	Height    string         `json:"height"`
	MountType string         `json:"mount_type"`
	BoxWidth  string         `json:"box_width,omitempty"`
	BoxDepth  string         `json:"box_depth,omitempty"`
	Lines     []contractLine `json:"lines"`
}

type contractLine struct {
	Kind     string `json:"kind"`
	ItemID   string `json:"item_id"`
	Quantity string `json:"quantity"`
	Name     string `json:"name,omitempty"`
}

func render(o *order.Order, curtains []*curtain.Curtain, actor kernel.UUID, at time.Time) contract {
	doc := contract{
		OrderID:        o.ID().String(),
		OrderNumber:    o.Number(),
		ContractNumber: o.ContractNumber(),
		InvoiceNumber:  o.InvoiceNumber(),
		Type:           o.Type().String(),
		Subtotal:       o.Totals().Subtotal.StringFixed(2),
		Discount:       o.Totals().Discount.StringFixed(2),
		Total:          o.Totals().Final.StringFixed(2),
		PaymentMethod:  string(o.PaymentMethod()),
		Notes:          o.Notes(),
		GeneratedBy:    actor.String(),
		GeneratedAt:    at,
		Items:          make([]contractItem, 0, len(o.Items())),
		Curtains:       make([]contractCurtain, 0, len(curtains)),
	}
	if id := o.CustomerID(); id != nil {
		doc.CustomerID = id.String()
	}
	for _, item := range o.Items() {
		doc.Items = append(doc.Items, contractItem{
			ID:          item.ID().String(),
			ProductID:   item.ProductID().String(),
			Kind:        string(item.Classification()),
			Quantity:    item.Quantity().String(),
			UnitPrice:   item.UnitPrice().StringFixed(2),
			DiscountPct: item.DiscountPct().String(),
		})
	}
	for _, c := range curtains {
		m := c.Measurements()
		cc := contractCurtain{
			Sequence:  m.Sequence,
			Room:      m.Room,
			Width:     m.Width.String(),
			Height:    m.Height.String(),
			MountType: string(m.MountType),
			Lines:     make([]contractLine, 0, len(c.Lines())),
		}
		if m.BoxWidth != nil {
			cc.BoxWidth = m.BoxWidth.String()
		}
		if m.BoxDepth != nil {
			cc.BoxDepth = m.BoxDepth.String()
		}
		for _, l := range c.Lines() {
			cc.Lines = append(cc.Lines, contractLine{
				Kind:     string(l.Kind()),
				ItemID:   l.ItemRef().ID().String(),
				Quantity: l.Quantity().String(),
				Name:     l.Name(),
			})
		}
		doc.Curtains = append(doc.Curtains, cc)
	}
	return doc
}
