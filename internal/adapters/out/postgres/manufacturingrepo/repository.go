package manufacturingrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormManufacturingOrderRepository implements ports.ManufacturingOrderRepository using GORM.
type GormManufacturingOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormManufacturingOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormManufacturingOrderRepository {
	return &GormManufacturingOrderRepository{db: db, tracker: tracker}
}

func (r *GormManufacturingOrderRepository) Add(ctx context.Context, aggregate *manufacturing.ManufacturingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	if err := r.appendChanges(db, dto.ID, aggregate.Changes()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the status and line, upserts the rejection logs and appends
// the status changes not stored yet. Rejection logs are never deleted.
func (r *GormManufacturingOrderRepository) Update(ctx context.Context, aggregate *manufacturing.ManufacturingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ManufacturingOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":             dto.Status,
			"production_line_id": dto.ProductionLineID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("manufacturing order", aggregate.ID().String())
	}

	if len(dto.Rejections) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&dto.Rejections).Error; err != nil {
			return err
		}
	}
	if err := r.appendChanges(db, dto.ID, aggregate.Changes()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormManufacturingOrderRepository) Get(ctx context.Context, id kernel.UUID) (*manufacturing.ManufacturingOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, false, id.String(), "id = ?", id.Bytes())
}

func (r *GormManufacturingOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*manufacturing.ManufacturingOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, true, id.String(), "id = ?", id.Bytes())
}

func (r *GormManufacturingOrderRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*manufacturing.ManufacturingOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, false, "order "+orderID.String(), "order_id = ?", orderID.Bytes())
}

func (r *GormManufacturingOrderRepository) first(
	ctx context.Context,
	lock bool,
	label string,
	cond string,
	arg any,
) (*manufacturing.ManufacturingOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Rejections", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Changes", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto ManufacturingOrderDTO
	if err := query.First(&dto, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manufacturing order", label)
		}
		return nil, err
	}
	return toDomain(dto)
}

// appendChanges inserts the tail of changes past what is already stored.
func (r *GormManufacturingOrderRepository) appendChanges(db *gorm.DB, moID uuid.UUID, changes []manufacturing.StatusChange) error {
	var stored int64
	if err := db.Model(&ChangeDTO{}).Where("manufacturing_order_id = ?", moID).Count(&stored).Error; err != nil {
		return err
	}
	if int(stored) >= len(changes) {
		return nil
	}

	rows := make([]ChangeDTO, 0, len(changes)-int(stored))
	for seq := int(stored); seq < len(changes); seq++ {
		rows = append(rows, changeFromDomain(moID, seq, changes[seq]))
	}
	return db.Create(&rows).Error
}
