package curtainrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCurtainRepository implements ports.CurtainRepository using GORM.
type GormCurtainRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCurtainRepository(db *gorm.DB, tracker aggregateTracker) *GormCurtainRepository {
	return &GormCurtainRepository{db: db, tracker: tracker}
}

func (r *GormCurtainRepository) Add(ctx context.Context, aggregate *curtain.Curtain) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCurtainRepository) Update(ctx context.Context, aggregate *curtain.Curtain) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CurtainDTO{}).Where("id = ?", dto.ID).Select("*").Omit("id", "Lines").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("curtain", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		keep = append(keep, l.ID)
	}
	stale := db.Where("curtain_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Lines) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&dto.Lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCurtainRepository) Get(ctx context.Context, id kernel.UUID) (*curtain.Curtain, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CurtainDTO
	err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("curtain", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// ListByOwner returns the owner's curtains ordered by sequence.
func (r *GormCurtainRepository) ListByOwner(ctx context.Context, owner curtain.Owner) ([]*curtain.Curtain, error) {
	var dtos []CurtainDTO
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("owner_stage = ? AND owner_id = ?", string(owner.Stage()), owner.ID().Bytes()).
		Order("sequence").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	curtains := make([]*curtain.Curtain, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		curtains = append(curtains, c)
	}
	return curtains, nil
}

func (r *GormCurtainRepository) Delete(ctx context.Context, id kernel.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("curtain_id = ?", id.Bytes()).Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	return db.Delete(&CurtainDTO{}, "id = ?", id.Bytes()).Error
}

func (r *GormCurtainRepository) DeleteByOwner(ctx context.Context, owner curtain.Owner) error {
	db := r.db.WithContext(ctx)
	owned := db.Model(&CurtainDTO{}).
		Select("id").
		Where("owner_stage = ? AND owner_id = ?", string(owner.Stage()), owner.ID().Bytes())
	if err := db.Where("curtain_id IN (?)", owned).Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	return db.Where("owner_stage = ? AND owner_id = ?", string(owner.Stage()), owner.ID().Bytes()).
		Delete(&CurtainDTO{}).Error
}

func (r *GormCurtainRepository) ReservedQuantity(
	ctx context.Context,
	item curtain.ItemRef,
	excludeLineID *kernel.UUID,
) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&LineDTO{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("item_stage = ? AND item_id = ?", string(item.Stage()), item.ID().Bytes())
	if excludeLineID != nil {
		query = query.Where("id <> ?", excludeLineID.Bytes())
	}

	var sum decimal.Decimal
	if err := query.Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *GormCurtainRepository) DeleteLinesByItem(ctx context.Context, item curtain.ItemRef) error {
	return r.db.WithContext(ctx).
		Where("item_stage = ? AND item_id = ?", string(item.Stage()), item.ID().Bytes()).
		Delete(&LineDTO{}).Error
}

// TransferOwnership flips the lines first, while their curtains still point
// at the draft, then the curtains themselves.
func (r *GormCurtainRepository) TransferOwnership(ctx context.Context, draftID, orderID kernel.UUID) error {
	db := r.db.WithContext(ctx)
	draftCurtains := db.Model(&CurtainDTO{}).
		Select("id").
		Where("owner_stage = ? AND owner_id = ?", string(curtain.StageDraft), draftID.Bytes())

	if err := db.Model(&LineDTO{}).
		Where("curtain_id IN (?)", draftCurtains).
		Update("item_stage", string(curtain.StageOrder)).Error; err != nil {
		return err
	}
	return db.Model(&CurtainDTO{}).
		Where("owner_stage = ? AND owner_id = ?", string(curtain.StageDraft), draftID.Bytes()).
		Updates(map[string]any{
			"owner_stage": string(curtain.StageOrder),
			"owner_id":    orderID.Bytes(),
		}).Error
}
