package orderrepo

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, p *order.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dto := paymentFromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the payments of an order, oldest first.
func (r *GormPaymentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Payment, error) {
	var dtos []PaymentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("paid_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	payments := make([]*order.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := paymentToDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *GormPaymentRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Delete(&PaymentDTO{}).Error
}
