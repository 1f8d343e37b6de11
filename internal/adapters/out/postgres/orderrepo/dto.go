// Package orderrepo persists finalized orders, their items and the payments
// recorded against them.
package orderrepo

import (
	"time"

	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the orders row. Items live in order_items and are
// replaced as a whole in edit mode.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number             string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Type               string          `gorm:"type:varchar(32);not null"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index"`
	BranchID           *uuid.UUID      `gorm:"type:uuid"`
	SalespersonID      *uuid.UUID      `gorm:"type:uuid"`
	InvoiceNumber      string          `gorm:"type:varchar(64)"`
	ContractNumber     string          `gorm:"type:varchar(64)"`
	Notes              string          `gorm:"type:text"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentMethod      string          `gorm:"type:varchar(32)"`
	Status             string          `gorm:"type:varchar(32);not null;index"`
	TrackingStatus     string          `gorm:"type:varchar(16);not null"`
	InstallationStatus string          `gorm:"type:varchar(32)"`
	CreatedBy          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt          time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime:false"`
	Items              []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ItemDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position       int             `gorm:"not null"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity       decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountPct    decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Classification string          `gorm:"type:varchar(16);not null"`
	AddedBy        uuid.UUID       `gorm:"type:uuid;not null"`
	ModifiedBy     uuid.UUID       `gorm:"type:uuid;not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type PaymentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method    string          `gorm:"type:varchar(32);not null"`
	Reference string          `gorm:"type:varchar(128)"`
	CreatedBy uuid.UUID       `gorm:"type:uuid;not null"`
	PaidAt    time.Time       `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			ID:             item.ID().Bytes(),
			OrderID:        id,
			Position:       i,
			ProductID:      item.ProductID().Bytes(),
			Quantity:       item.Quantity().Decimal(),
			UnitPrice:      item.UnitPrice(),
			DiscountPct:    item.DiscountPct(),
			Classification: string(item.Classification()),
			AddedBy:        item.AddedBy().Bytes(),
			ModifiedBy:     item.ModifiedBy().Bytes(),
		})
	}

	totals := o.Totals()
	return OrderDTO{
		ID:                 id,
		Number:             o.Number(),
		Type:               string(o.Type()),
		CustomerID:         idmap.Ptr(o.CustomerID()),
		BranchID:           idmap.Ptr(o.BranchID()),
		SalespersonID:      idmap.Ptr(o.SalespersonID()),
		InvoiceNumber:      o.InvoiceNumber(),
		ContractNumber:     o.ContractNumber(),
		Notes:              o.Notes(),
		Subtotal:           totals.Subtotal,
		Discount:           totals.Discount,
		Total:              totals.Final,
		PaymentMethod:      string(o.PaymentMethod()),
		Status:             string(o.Status()),
		TrackingStatus:     string(o.TrackingStatus()),
		InstallationStatus: string(o.InstallationStatus()),
		CreatedBy:          o.CreatedBy().Bytes(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		Items:              items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	createdBy, err := idmap.From(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	customerID, err := idmap.FromPtr(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	branchID, err := idmap.FromPtr(dto.BranchID)
	if err != nil {
		return nil, err
	}
	salespersonID, err := idmap.FromPtr(dto.SalespersonID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:             id,
		Number:         dto.Number,
		Type:           kernel.OrderType(dto.Type),
		CustomerID:     customerID,
		BranchID:       branchID,
		SalespersonID:  salespersonID,
		InvoiceNumber:  dto.InvoiceNumber,
		ContractNumber: dto.ContractNumber,
		Notes:          dto.Notes,
		Totals: draft.Totals{
			Subtotal: dto.Subtotal,
			Discount: dto.Discount,
			Final:    dto.Total,
		},
		PaymentMethod:      draft.PaymentMethod(dto.PaymentMethod),
		Status:             order.Status(dto.Status),
		Tracking:           order.TrackingStatus(dto.TrackingStatus),
		InstallationStatus: installation.Status(dto.InstallationStatus),
		CreatedBy:          createdBy,
		Items:              items,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := idmap.From(dto.ProductID)
	if err != nil {
		return nil, err
	}
	addedBy, err := idmap.From(dto.AddedBy)
	if err != nil {
		return nil, err
	}
	modifiedBy, err := idmap.From(dto.ModifiedBy)
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, productID, quantity, dto.UnitPrice, dto.DiscountPct,
		draft.Classification(dto.Classification), addedBy, modifiedBy)
}

func paymentFromDomain(p *order.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        p.ID().Bytes(),
		OrderID:   p.OrderID().Bytes(),
		Amount:    p.Amount(),
		Method:    string(p.Method()),
		Reference: p.Reference(),
		CreatedBy: p.CreatedBy().Bytes(),
		PaidAt:    p.PaidAt(),
	}
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := idmap.From(dto.OrderID)
	if err != nil {
		return nil, err
	}
	createdBy, err := idmap.From(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	return order.NewPayment(id, orderID, dto.Amount, draft.PaymentMethod(dto.Method), dto.Reference, createdBy, dto.PaidAt)
}
