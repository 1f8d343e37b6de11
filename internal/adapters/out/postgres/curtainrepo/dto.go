// Package curtainrepo persists curtains with their fabric and accessory lines.
// A curtain belongs to a draft or to an order; the owner_stage column tells which.
package curtainrepo

import (
	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CurtainDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerStage string           `gorm:"type:varchar(8);not null;index:idx_curtains_owner,priority:1"`
	OwnerID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_curtains_owner,priority:2"`
	Sequence   int              `gorm:"not null"`
	Room       string           `gorm:"type:varchar(128)"`
	Width      decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	Height     decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	MountType  string           `gorm:"type:varchar(16);not null"`
	BoxWidth   *decimal.Decimal `gorm:"type:numeric(10,2)"`
	BoxDepth   *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Lines      []LineDTO        `gorm:"foreignKey:CurtainID;constraint:OnDelete:CASCADE"`
}

func (CurtainDTO) TableName() string {
	return "curtains"
}

// LineDTO is one fabric or accessory line. item_stage always equals the
// owner_stage of its curtain.
type LineDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CurtainID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind      string          `gorm:"type:varchar(16);not null"`
	ItemStage string          `gorm:"type:varchar(8);not null;index:idx_curtain_lines_item,priority:1"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_curtain_lines_item,priority:2"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Name      string          `gorm:"type:varchar(255)"`
}

func (LineDTO) TableName() string {
	return "curtain_lines"
}

func fromDomain(c *curtain.Curtain) CurtainDTO {
	id := c.ID().Bytes()
	m := c.Measurements()
	lines := make([]LineDTO, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		lines = append(lines, LineDTO{
			ID:        l.ID().Bytes(),
			CurtainID: id,
			Kind:      string(l.Kind()),
			ItemStage: string(l.ItemRef().Stage()),
			ItemID:    l.ItemRef().ID().Bytes(),
			Quantity:  l.Quantity().Decimal(),
			Name:      l.Name(),
		})
	}
	return CurtainDTO{
		ID:         id,
		OwnerStage: string(c.Owner().Stage()),
		OwnerID:    c.Owner().ID().Bytes(),
		Sequence:   m.Sequence,
		Room:       m.Room,
		Width:      m.Width,
		Height:     m.Height,
		MountType:  string(m.MountType),
		BoxWidth:   m.BoxWidth,
		BoxDepth:   m.BoxDepth,
		Lines:      lines,
	}
}

func toDomain(dto CurtainDTO) (*curtain.Curtain, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := idmap.From(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	owner, err := curtain.RestoreOwner(curtain.Stage(dto.OwnerStage), ownerID)
	if err != nil {
		return nil, err
	}

	lines := make([]*curtain.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return curtain.RestoreCurtain(id, owner, curtain.Measurements{
		Sequence:  dto.Sequence,
		Room:      dto.Room,
		Width:     dto.Width,
		Height:    dto.Height,
		MountType: curtain.MountType(dto.MountType),
		BoxWidth:  dto.BoxWidth,
		BoxDepth:  dto.BoxDepth,
	}, lines)
}

func lineToDomain(dto LineDTO) (*curtain.Line, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	itemID, err := idmap.From(dto.ItemID)
	if err != nil {
		return nil, err
	}
	ref, err := curtain.RestoreItemRef(curtain.Stage(dto.ItemStage), itemID)
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}
	return curtain.NewLine(id, curtain.LineKind(dto.Kind), ref, quantity, dto.Name)
}
