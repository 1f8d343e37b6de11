// Package documentjobrepo is the outbox of contract document requests: one
// row per order, written in the finalization transaction.
package documentjobrepo

import (
	"context"
	"errors"
	"time"

	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/document"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	Status    string    `gorm:"type:varchar(16);not null;index:idx_document_jobs_due,priority:1"`
	Attempts  int       `gorm:"not null;default:0"`
	LastError string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;index:idx_document_jobs_due,priority:2"`
}

func (JobDTO) TableName() string {
	return "contract_document_jobs"
}

// GormDocumentJobRepository implements ports.DocumentJobRepository using GORM.
type GormDocumentJobRepository struct {
	db *gorm.DB
}

func NewGormDocumentJobRepository(db *gorm.DB) *GormDocumentJobRepository {
	return &GormDocumentJobRepository{db: db}
}

// Add inserts the job of an order. An existing job of the same order is reset
// to pending, which is what re-finalizing an edited order needs.
func (r *GormDocumentJobRepository) Add(ctx context.Context, j *document.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	dto := fromDomain(j)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		UpdateAll: true,
	}).Create(&dto).Error
}

func (r *GormDocumentJobRepository) Update(ctx context.Context, j *document.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	dto := fromDomain(j)
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("status", "attempts", "last_error", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("document job", j.OrderID().String())
	}
	return nil
}

func (r *GormDocumentJobRepository) Get(ctx context.Context, orderID kernel.UUID) (*document.Job, error) {
	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("document job", orderID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormDocumentJobRepository) ListDue(ctx context.Context, limit int) ([]*document.Job, error) {
	var dtos []JobDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(document.JobPending)).
		Order("updated_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]*document.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func fromDomain(j *document.Job) JobDTO {
	return JobDTO{
		OrderID:   j.OrderID().Bytes(),
		ActorID:   j.ActorID().Bytes(),
		Status:    string(j.Status()),
		Attempts:  j.Attempts(),
		LastError: j.LastError(),
		UpdatedAt: j.UpdatedAt(),
	}
}

func toDomain(dto JobDTO) (*document.Job, error) {
	orderID, err := idmap.From(dto.OrderID)
	if err != nil {
		return nil, err
	}
	actorID, err := idmap.From(dto.ActorID)
	if err != nil {
		return nil, err
	}
	return document.RestoreJob(orderID, actorID, document.JobStatus(dto.Status), dto.Attempts, dto.LastError, dto.UpdatedAt)
}
