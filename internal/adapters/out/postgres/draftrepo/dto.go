// Package draftrepo persists wizard drafts, their items and their edit history.
package draftrepo

import (
	"time"

	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DraftDTO is the drafts row. Items are a child table; history is appended
// to draft_history and never rewritten.
type DraftDTO struct {
	ID               uuid.UUID                `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID                `gorm:"type:uuid;not null;index:idx_drafts_owner_open"`
	Completed        bool                     `gorm:"not null;default:false;index:idx_drafts_owner_open"`
	CurrentStep      int                      `gorm:"not null"`
	CompletedSteps   datatypes.JSONSlice[int] `gorm:"not null"`
	SelectedType     string                   `gorm:"type:varchar(32)"`
	CustomerID       *uuid.UUID               `gorm:"type:uuid"`
	BranchID         *uuid.UUID               `gorm:"type:uuid"`
	SalespersonID    *uuid.UUID               `gorm:"type:uuid"`
	InvoiceNumber    string                   `gorm:"type:varchar(64)"`
	ContractNumber   string                   `gorm:"type:varchar(64)"`
	Notes            string                   `gorm:"type:text"`
	PaymentMethod    string                   `gorm:"type:varchar(32)"`
	PaidAmount       decimal.Decimal          `gorm:"type:numeric(14,2);not null"`
	PaymentReference string                   `gorm:"type:varchar(128)"`
	FinalOrderID     *uuid.UUID               `gorm:"type:uuid"`
	EditingOrderID   *uuid.UUID               `gorm:"type:uuid;index"`
	CreatedAt        time.Time                `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time                `gorm:"autoUpdateTime:false"`
	Items            []ItemDTO                `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE"`
}

func (DraftDTO) TableName() string {
	return "drafts"
}

type ItemDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DraftID        uuid.UUID       `gorm:"type:uuid;not null;index"`
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
	return "draft_items"
}

type HistoryDTO struct {
	ID      uint                                  `gorm:"primaryKey;autoIncrement"`
	DraftID uuid.UUID                             `gorm:"type:uuid;not null;index:idx_draft_history_seq,priority:1"`
	Seq     int                                   `gorm:"not null;index:idx_draft_history_seq,priority:2"`
	ActorID uuid.UUID                             `gorm:"type:uuid;not null"`
	Action  string                                `gorm:"type:varchar(64);not null"`
	At      time.Time                             `gorm:"not null"`
	Detail  datatypes.JSONType[map[string]string] `gorm:"not null"`
}

func (HistoryDTO) TableName() string {
	return "draft_history"
}

func fromDomain(d *draft.Draft) DraftDTO {
	id := d.ID().Bytes()
	items := make([]ItemDTO, 0, len(d.Items()))
	for i, item := range d.Items() {
		items = append(items, itemFromDomain(id, i, item))
	}
	p := d.Payment()
	return DraftDTO{
		ID:               id,
		OwnerID:          d.OwnerID().Bytes(),
		Completed:        d.IsCompleted(),
		CurrentStep:      d.CurrentStep(),
		CompletedSteps:   datatypes.NewJSONSlice(d.CompletedSteps()),
		SelectedType:     string(d.SelectedType()),
		CustomerID:       idmap.Ptr(d.CustomerID()),
		BranchID:         idmap.Ptr(d.BranchID()),
		SalespersonID:    idmap.Ptr(d.SalespersonID()),
		InvoiceNumber:    d.InvoiceNumber(),
		ContractNumber:   d.ContractNumber(),
		Notes:            d.Notes(),
		PaymentMethod:    string(p.Method),
		PaidAmount:       p.PaidAmount,
		PaymentReference: p.Reference,
		FinalOrderID:     idmap.Ptr(d.FinalOrderID()),
		EditingOrderID:   idmap.Ptr(d.EditingOrderID()),
		CreatedAt:        d.CreatedAt(),
		UpdatedAt:        d.UpdatedAt(),
		Items:            items,
	}
}

func itemFromDomain(draftID uuid.UUID, position int, item *draft.Item) ItemDTO {
	return ItemDTO{
		ID:             item.ID().Bytes(),
		DraftID:        draftID,
		Position:       position,
		ProductID:      item.ProductID().Bytes(),
		Quantity:       item.Quantity().Decimal(),
		UnitPrice:      item.UnitPrice(),
		DiscountPct:    item.DiscountPct(),
		Classification: string(item.Classification()),
		AddedBy:        item.AddedBy().Bytes(),
		ModifiedBy:     item.ModifiedBy().Bytes(),
	}
}

func historyFromDomain(draftID uuid.UUID, seq int, e draft.HistoryEntry) HistoryDTO {
	detail := e.Detail
	if detail == nil {
		detail = map[string]string{}
	}
	return HistoryDTO{
		DraftID: draftID,
		Seq:     seq,
		ActorID: e.ActorID.Bytes(),
		Action:  e.Action,
		At:      e.At,
		Detail:  datatypes.NewJSONType(detail),
	}
}

func toDomain(dto DraftDTO, history []HistoryDTO) (*draft.Draft, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	owner, err := idmap.From(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	customer, err := idmap.FromPtr(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	branch, err := idmap.FromPtr(dto.BranchID)
	if err != nil {
		return nil, err
	}
	salesperson, err := idmap.FromPtr(dto.SalespersonID)
	if err != nil {
		return nil, err
	}
	finalOrder, err := idmap.FromPtr(dto.FinalOrderID)
	if err != nil {
		return nil, err
	}
	editing, err := idmap.FromPtr(dto.EditingOrderID)
	if err != nil {
		return nil, err
	}

	items := make([]*draft.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	entries := make([]draft.HistoryEntry, 0, len(history))
	for _, h := range history {
		actor, actorErr := idmap.From(h.ActorID)
		if actorErr != nil {
			return nil, actorErr
		}
		entries = append(entries, draft.HistoryEntry{ActorID: actor, Action: h.Action, At: h.At, Detail: h.Detail.Data()})
	}

	return draft.RestoreDraft(draft.RestoreParams{
		ID:             id,
		OwnerID:        owner,
		CurrentStep:    dto.CurrentStep,
		CompletedSteps: dto.CompletedSteps,
		SelectedType:   kernel.OrderType(dto.SelectedType),
		CustomerID:     customer,
		BranchID:       branch,
		SalespersonID:  salesperson,
		InvoiceNumber:  dto.InvoiceNumber,
		ContractNumber: dto.ContractNumber,
		Notes:          dto.Notes,
		Payment: draft.Payment{
			Method:     draft.PaymentMethod(dto.PaymentMethod),
			PaidAmount: dto.PaidAmount,
			Reference:  dto.PaymentReference,
		},
		Items:          items,
		History:        entries,
		Completed:      dto.Completed,
		FinalOrderID:   finalOrder,
		EditingOrderID: editing,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	})
}

func itemToDomain(dto ItemDTO) (*draft.Item, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	product, err := idmap.From(dto.ProductID)
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
	return draft.RestoreItem(id, product, quantity, dto.UnitPrice, dto.DiscountPct,
		draft.Classification(dto.Classification), addedBy, modifiedBy)
}
