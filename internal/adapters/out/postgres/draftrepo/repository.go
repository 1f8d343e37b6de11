package draftrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDraftRepository implements ports.DraftRepository using GORM.
type GormDraftRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDraftRepository(db *gorm.DB, tracker aggregateTracker) *GormDraftRepository {
	return &GormDraftRepository{db: db, tracker: tracker}
}

func (r *GormDraftRepository) Add(ctx context.Context, aggregate *draft.Draft) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	if err := r.appendHistory(db, dto.ID, aggregate.History()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every scalar, upserts the current items, deletes removed
// items and appends the history entries not stored yet.
func (r *GormDraftRepository) Update(ctx context.Context, aggregate *draft.Draft) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&DraftDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("draft", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		keep = append(keep, item.ID)
	}
	stale := db.Where("draft_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	if err := r.appendHistory(db, dto.ID, aggregate.History()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDraftRepository) Get(ctx context.Context, id kernel.UUID) (*draft.Draft, error) {
	return r.get(ctx, id, false)
}

func (r *GormDraftRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*draft.Draft, error) {
	return r.get(ctx, id, true)
}

func (r *GormDraftRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*draft.Draft, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto DraftDTO
	err := query.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("draft", id.String())
	}
	if err != nil {
		return nil, err
	}

	var history []HistoryDTO
	if err = db.Where("draft_id = ?", dto.ID).
		Order("seq").
		Find(&history).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, history)
}

func (r *GormDraftRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("draft_id = ?", id.Bytes()).Delete(&HistoryDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("draft_id = ?", id.Bytes()).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	result := db.Delete(&DraftDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("draft", id.String())
	}
	return nil
}

func (r *GormDraftRepository) CountOpenByOwner(ctx context.Context, owner kernel.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&DraftDTO{}).
		Where("owner_id = ? AND completed = ?", owner.Bytes(), false).
		Count(&n).Error
	return int(n), err
}

// LockItem takes SELECT ... FOR UPDATE on the item row. SQLite has no row
// locks and ignores the clause; its writers are serialized anyway.
func (r *GormDraftRepository) LockItem(ctx context.Context, itemID kernel.UUID) error {
	var dto ItemDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&dto, "id = ?", itemID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("draft item", itemID.String())
	}
	return err
}

func (r *GormDraftRepository) appendHistory(db *gorm.DB, draftID uuid.UUID, history []draft.HistoryEntry) error {
	var stored int64
	if err := db.Model(&HistoryDTO{}).Where("draft_id = ?", draftID).Count(&stored).Error; err != nil {
		return err
	}
	if int(stored) >= len(history) {
		return nil
	}

	rows := make([]HistoryDTO, 0, len(history)-int(stored))
	for seq := int(stored); seq < len(history); seq++ {
		rows = append(rows, historyFromDomain(draftID, seq, history[seq]))
	}
	return db.Create(&rows).Error
}
