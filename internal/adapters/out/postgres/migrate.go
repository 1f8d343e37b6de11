package postgres

import (
	"workshop/internal/adapters/out/postgres/catalogrepo"
	"workshop/internal/adapters/out/postgres/curtainrepo"
	"workshop/internal/adapters/out/postgres/documentjobrepo"
	"workshop/internal/adapters/out/postgres/draftrepo"
	"workshop/internal/adapters/out/postgres/identityrepo"
	"workshop/internal/adapters/out/postgres/installationrepo"
	"workshop/internal/adapters/out/postgres/manufacturingrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, parents before children.
func Models() []any {
	return []any{
		&identityrepo.ActorDTO{},
		&catalogrepo.ProductDTO{},
		&draftrepo.DraftDTO{},
		&draftrepo.ItemDTO{},
		&draftrepo.HistoryDTO{},
		&curtainrepo.CurtainDTO{},
		&curtainrepo.LineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PaymentDTO{},
		&manufacturingrepo.ProductionLineDTO{},
		&manufacturingrepo.ManufacturingOrderDTO{},
		&manufacturingrepo.RejectionDTO{},
		&manufacturingrepo.ChangeDTO{},
		&installationrepo.ScheduleDTO{},
		&documentjobrepo.JobDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
