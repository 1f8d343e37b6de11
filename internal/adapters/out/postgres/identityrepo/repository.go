// Package identityrepo answers identity questions from the actors table.
// Capabilities come from the actor's role plus any grants stored on the row.
package identityrepo

import (
	"context"
	"errors"
	"slices"

	"workshop/internal/adapters/out/postgres/idmap"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxChainDepth bounds the manager chain walk so a cycle in the data cannot hang a request.
const maxChainDepth = 16

const (
	RoleSales             = "sales"
	RoleSalesManager      = "sales_manager"
	RoleProduction        = "production"
	RoleProductionManager = "production_manager"
	RoleAdmin             = "admin"
)

var roleCapabilities = map[string][]string{
	RoleSales:        nil,
	RoleSalesManager: nil,
	RoleProduction:   {string(manufacturing.CapabilityProgress)},
	RoleProductionManager: {
		string(manufacturing.CapabilityApprove),
		string(manufacturing.CapabilityProgress),
	},
	RoleAdmin: {
		string(manufacturing.CapabilityApprove),
		string(manufacturing.CapabilityProgress),
		string(manufacturing.CapabilityOverride),
	},
}

type ActorDTO struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Subject   *string                     `gorm:"type:varchar(255);uniqueIndex"`
	Name      string                      `gorm:"type:varchar(255);not null"`
	Role      string                      `gorm:"type:varchar(32);not null"`
	ManagerID *uuid.UUID                  `gorm:"type:uuid;index"`
	Grants    datatypes.JSONSlice[string] `gorm:"not null"`
}

func (ActorDTO) TableName() string {
	return "actors"
}

// GormIdentityProvider implements ports.IdentityProvider using GORM.
type GormIdentityProvider struct {
	db *gorm.DB
}

func NewGormIdentityProvider(db *gorm.DB) *GormIdentityProvider {
	return &GormIdentityProvider{db: db}
}

// Register stores an actor. Used by seeding and tests.
func (p *GormIdentityProvider) Register(ctx context.Context, actor ActorDTO) error {
	if actor.Grants == nil {
		actor.Grants = datatypes.JSONSlice[string]{}
	}
	return p.db.WithContext(ctx).Create(&actor).Error
}

// HasCapability reports false for unknown actors.
func (p *GormIdentityProvider) HasCapability(ctx context.Context, actorID kernel.UUID, capability string) (bool, error) {
	actor, err := p.actor(ctx, actorID.Bytes())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return slices.Contains(roleCapabilities[actor.Role], capability) || slices.Contains(actor.Grants, capability), nil
}

// CanManage walks up the manager chain of actor looking for manager. Admins
// manage everybody.
func (p *GormIdentityProvider) CanManage(ctx context.Context, manager, actor kernel.UUID) (bool, error) {
	if manager.IsEqual(actor) {
		return false, nil
	}
	boss, err := p.actor(ctx, manager.Bytes())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	if boss.Role == RoleAdmin {
		return true, nil
	}

	current := actor.Bytes()
	for range maxChainDepth {
		row, rowErr := p.actor(ctx, current)
		if rowErr != nil {
			if errors.Is(rowErr, errs.ErrObjectNotFound) {
				return false, nil
			}
			return false, rowErr
		}
		if row.ManagerID == nil {
			return false, nil
		}
		if *row.ManagerID == boss.ID {
			return true, nil
		}
		current = *row.ManagerID
	}
	return false, nil
}

func (p *GormIdentityProvider) ResolveSubject(ctx context.Context, subject string) (kernel.UUID, error) {
	var dto ActorDTO
	if err := p.db.WithContext(ctx).First(&dto, "subject = ?", subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("actor", subject)
		}
		return kernel.UUID{}, err
	}
	return idmap.From(dto.ID)
}

func (p *GormIdentityProvider) actor(ctx context.Context, id uuid.UUID) (ActorDTO, error) {
	var dto ActorDTO
	if err := p.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActorDTO{}, errs.NewObjectNotFoundError("actor", id.String())
		}
		return ActorDTO{}, err
	}
	return dto, nil
}
