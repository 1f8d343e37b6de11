// Package catalogrepo reads sellable products for the items step.
package catalogrepo

import (
	"context"
	"errors"

	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SKU            string          `gorm:"type:varchar(64);uniqueIndex"`
	Name           string          `gorm:"type:varchar(255);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Classification string          `gorm:"type:varchar(16);not null"`
	Active         bool            `gorm:"not null;default:true"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormCatalog implements ports.Catalog using GORM. Inactive products are not found.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) Product(ctx context.Context, id kernel.UUID) (ports.Product, error) {
	var dto ProductDTO
	err := c.db.WithContext(ctx).First(&dto, "id = ? AND active = ?", id.Bytes(), true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Product{}, errs.NewObjectNotFoundError("product", id.String())
	}
	if err != nil {
		return ports.Product{}, err
	}

	productID, err := idmap.From(dto.ID)
	if err != nil {
		return ports.Product{}, err
	}
	classification := draft.Classification(dto.Classification)
	if err = classification.Validate(); err != nil {
		return ports.Product{}, err
	}
	return ports.Product{
		ID:             productID,
		Name:           dto.Name,
		UnitPrice:      dto.UnitPrice,
		Classification: classification,
	}, nil
}

// Upsert stores a product. Used by seeding and tests.
func (c *GormCatalog) Upsert(ctx context.Context, p ports.Product, sku string) error {
	dto := ProductDTO{
		ID:             p.ID.Bytes(),
		SKU:            sku,
		Name:           p.Name,
		UnitPrice:      p.UnitPrice,
		Classification: string(p.Classification),
		Active:         true,
	}
	return c.db.WithContext(ctx).Save(&dto).Error
}
