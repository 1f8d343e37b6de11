// Package manufacturingrepo persists manufacturing orders, their rejection
// logs and status history, and the production lines they are routed to.
package manufacturingrepo

import (
	"time"

	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ManufacturingOrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Type             string         `gorm:"type:varchar(16);not null"`
	BranchID         *uuid.UUID     `gorm:"type:uuid"`
	Status           string         `gorm:"type:varchar(32);not null;index"`
	ProductionLineID *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt        time.Time      `gorm:"autoCreateTime:false"`
	Rejections       []RejectionDTO `gorm:"foreignKey:ManufacturingOrderID;constraint:OnDelete:CASCADE"`
	Changes          []ChangeDTO    `gorm:"foreignKey:ManufacturingOrderID;constraint:OnDelete:CASCADE"`
}

func (ManufacturingOrderDTO) TableName() string {
	return "manufacturing_orders"
}

// RejectionDTO is one rejection log. The reply columns are filled at most once.
type RejectionDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ManufacturingOrderID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position             int        `gorm:"not null"`
	PreviousStatus       string     `gorm:"type:varchar(32);not null"`
	Reason               string     `gorm:"type:text;not null"`
	RejectedBy           uuid.UUID  `gorm:"type:uuid;not null"`
	RejectedAt           time.Time  `gorm:"not null"`
	Reply                string     `gorm:"type:text"`
	RepliedBy            *uuid.UUID `gorm:"type:uuid"`
	RepliedAt            *time.Time
	ReplyRead            bool `gorm:"not null;default:false"`
}

func (RejectionDTO) TableName() string {
	return "manufacturing_rejections"
}

// ChangeDTO is an append-only status history row.
type ChangeDTO struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement"`
	ManufacturingOrderID uuid.UUID `gorm:"type:uuid;not null;index:idx_manufacturing_changes_seq,priority:1"`
	Seq                  int       `gorm:"not null;index:idx_manufacturing_changes_seq,priority:2"`
	FromStatus           string    `gorm:"type:varchar(32)"`
	ToStatus             string    `gorm:"type:varchar(32);not null"`
	ActorID              uuid.UUID `gorm:"type:uuid;not null"`
	At                   time.Time `gorm:"not null"`
	Note                 string    `gorm:"type:text"`
}

func (ChangeDTO) TableName() string {
	return "manufacturing_status_changes"
}

type ProductionLineDTO struct {
	ID        uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	Name      string                         `gorm:"type:varchar(128);not null"`
	Priority  int                            `gorm:"not null;index"`
	Active    bool                           `gorm:"not null;default:true"`
	BranchIDs datatypes.JSONSlice[uuid.UUID] `gorm:"not null"`
}

func (ProductionLineDTO) TableName() string {
	return "production_lines"
}

func fromDomain(mo *manufacturing.ManufacturingOrder) ManufacturingOrderDTO {
	id := mo.ID().Bytes()
	rejections := make([]RejectionDTO, 0, len(mo.Rejections()))
	for i, r := range mo.Rejections() {
		rejections = append(rejections, RejectionDTO{
			ID:                   r.ID.Bytes(),
			ManufacturingOrderID: id,
			Position:             i,
			PreviousStatus:       string(r.PreviousStatus),
			Reason:               r.Reason,
			RejectedBy:           r.RejectedBy.Bytes(),
			RejectedAt:           r.RejectedAt,
			Reply:                r.Reply,
			RepliedBy:            idmap.Ptr(r.RepliedBy),
			RepliedAt:            r.RepliedAt,
			ReplyRead:            r.ReplyRead,
		})
	}
	return ManufacturingOrderDTO{
		ID:               id,
		OrderID:          mo.OrderID().Bytes(),
		Type:             string(mo.Type()),
		BranchID:         idmap.Ptr(mo.BranchID()),
		Status:           string(mo.Status()),
		ProductionLineID: idmap.Ptr(mo.ProductionLineID()),
		CreatedAt:        mo.CreatedAt(),
		Rejections:       rejections,
	}
}

func changeFromDomain(moID uuid.UUID, seq int, c manufacturing.StatusChange) ChangeDTO {
	return ChangeDTO{
		ManufacturingOrderID: moID,
		Seq:                  seq,
		FromStatus:           string(c.From),
		ToStatus:             string(c.To),
		ActorID:              c.ActorID.Bytes(),
		At:                   c.At,
		Note:                 c.Note,
	}
}

func toDomain(dto ManufacturingOrderDTO) (*manufacturing.ManufacturingOrder, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := idmap.From(dto.OrderID)
	if err != nil {
		return nil, err
	}
	branchID, err := idmap.FromPtr(dto.BranchID)
	if err != nil {
		return nil, err
	}
	lineID, err := idmap.FromPtr(dto.ProductionLineID)
	if err != nil {
		return nil, err
	}

	rejections := make([]manufacturing.RejectionLog, 0, len(dto.Rejections))
	for _, r := range dto.Rejections {
		log, logErr := rejectionToDomain(r)
		if logErr != nil {
			return nil, logErr
		}
		rejections = append(rejections, log)
	}

	changes := make([]manufacturing.StatusChange, 0, len(dto.Changes))
	for _, c := range dto.Changes {
		actor, actorErr := idmap.From(c.ActorID)
		if actorErr != nil {
			return nil, actorErr
		}
		changes = append(changes, manufacturing.StatusChange{
			From:    manufacturing.Status(c.FromStatus),
			To:      manufacturing.Status(c.ToStatus),
			ActorID: actor,
			At:      c.At,
			Note:    c.Note,
		})
	}

	return manufacturing.RestoreManufacturingOrder(manufacturing.RestoreParams{
		ID:               id,
		OrderID:          orderID,
		Type:             kernel.ManufacturingType(dto.Type),
		BranchID:         branchID,
		Status:           manufacturing.Status(dto.Status),
		ProductionLineID: lineID,
		Rejections:       rejections,
		Changes:          changes,
		CreatedAt:        dto.CreatedAt,
	})
}

func rejectionToDomain(dto RejectionDTO) (manufacturing.RejectionLog, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return manufacturing.RejectionLog{}, err
	}
	rejectedBy, err := idmap.From(dto.RejectedBy)
	if err != nil {
		return manufacturing.RejectionLog{}, err
	}
	repliedBy, err := idmap.FromPtr(dto.RepliedBy)
	if err != nil {
		return manufacturing.RejectionLog{}, err
	}
	return manufacturing.RejectionLog{
		ID:             id,
		PreviousStatus: manufacturing.Status(dto.PreviousStatus),
		Reason:         dto.Reason,
		RejectedBy:     rejectedBy,
		RejectedAt:     dto.RejectedAt,
		Reply:          dto.Reply,
		RepliedBy:      repliedBy,
		RepliedAt:      dto.RepliedAt,
		ReplyRead:      dto.ReplyRead,
	}, nil
}

func lineFromDomain(l *manufacturing.ProductionLine) ProductionLineDTO {
	return ProductionLineDTO{
		ID:        l.ID().Bytes(),
		Name:      l.Name(),
		Priority:  l.Priority(),
		Active:    l.IsActive(),
		BranchIDs: idmap.Slice(l.BranchIDs()),
	}
}

func lineToDomain(dto ProductionLineDTO) (*manufacturing.ProductionLine, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	branches, err := idmap.FromSlice(dto.BranchIDs)
	if err != nil {
		return nil, err
	}
	return manufacturing.NewProductionLine(id, dto.Name, dto.Priority, dto.Active, branches)
}
