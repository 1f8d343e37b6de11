package manufacturingrepo

import (
	"context"

	"workshop/internal/core/domain/model/manufacturing"

	"gorm.io/gorm"
)

// GormProductionLineRepository implements ports.ProductionLineRepository using GORM.
type GormProductionLineRepository struct {
	db *gorm.DB
}

func NewGormProductionLineRepository(db *gorm.DB) *GormProductionLineRepository {
	return &GormProductionLineRepository{db: db}
}

func (r *GormProductionLineRepository) Add(ctx context.Context, l *manufacturing.ProductionLine) error {
	if err := l.Validate(); err != nil {
		return err
	}
	dto := lineFromDomain(l)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListActive returns active lines, highest priority first. Ties keep name order
// so auto-assignment is stable.
func (r *GormProductionLineRepository) ListActive(ctx context.Context) ([]*manufacturing.ProductionLine, error) {
	var dtos []ProductionLineDTO
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority DESC").
		Order("name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	lines := make([]*manufacturing.ProductionLine, 0, len(dtos))
	for _, dto := range dtos {
		l, err := lineToDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
