// Package installationrepo persists installation schedules.
package installationrepo

import (
	"context"
	"time"

	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ScheduledFor *time.Time
	Status       string `gorm:"type:varchar(32);not null"`
}

func (ScheduleDTO) TableName() string {
	return "installation_schedules"
}

// GormInstallationRepository implements ports.InstallationRepository using GORM.
type GormInstallationRepository struct {
	db *gorm.DB
}

func NewGormInstallationRepository(db *gorm.DB) *GormInstallationRepository {
	return &GormInstallationRepository{db: db}
}

func (r *GormInstallationRepository) Add(ctx context.Context, s *installation.Schedule) error {
	if err := s.Validate(); err != nil {
		return err
	}
	dto := fromDomain(s)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormInstallationRepository) Update(ctx context.Context, s *installation.Schedule) error {
	if err := s.Validate(); err != nil {
		return err
	}
	dto := fromDomain(s)
	result := r.db.WithContext(ctx).
		Model(&ScheduleDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"scheduled_for": dto.ScheduledFor,
			"status":        dto.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("installation schedule", s.ID().String())
	}
	return nil
}

func (r *GormInstallationRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*installation.Schedule, error) {
	var dtos []ScheduleDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	schedules := make([]*installation.Schedule, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

func fromDomain(s *installation.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:           s.ID().Bytes(),
		OrderID:      s.OrderID().Bytes(),
		ScheduledFor: s.ScheduledFor(),
		Status:       string(s.Status()),
	}
}

func toDomain(dto ScheduleDTO) (*installation.Schedule, error) {
	id, err := idmap.From(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := idmap.From(dto.OrderID)
	if err != nil {
		return nil, err
	}
	return installation.RestoreSchedule(id, orderID, dto.ScheduledFor, installation.Status(dto.Status))
}
