package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "workshop/internal/adapters/out/postgres"
	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL, where row locks are enforced.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates every table so tests do not see each other's rows.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	for _, model := range postgres_adapter.Models() {
		stmt := &gorm.Statement{DB: suite.db}
		suite.Require().NoError(stmt.Parse(model))
		suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + stmt.Schema.Table + " CASCADE").Error)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

// TestUnitOfWork_FinalizationWritesAtomically stores what finalization stores
// and checks a rollback leaves nothing behind.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_FinalizationWritesAtomically() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	d, o := newOrder(suite.T(), owner)

	write := func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DraftRepository().Add(ctx, d))
		c, err := curtain.NewCurtain(kernel.NewUUID(), curtain.DraftOwner(d.ID()), curtain.Measurements{
			Sequence: 1, Width: decimal.NewFromInt(2), Height: decimal.NewFromInt(3), MountType: curtain.MountWall,
		})
		suite.Require().NoError(err)
		line, err := curtain.NewLine(kernel.NewUUID(), curtain.LineFabric, curtain.DraftItemRef(d.Items()[0].ID()),
			kernel.MustQuantity("2"), "")
		suite.Require().NoError(err)
		suite.Require().NoError(c.AddLine(line))
		suite.Require().NoError(uow.CurtainRepository().Add(ctx, c))

		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
		suite.Require().NoError(uow.CurtainRepository().TransferOwnership(ctx, d.ID(), o.ID()))
		mo, err := manufacturing.NewManufacturingOrder(kernel.NewUUID(), o.ID(), kernel.ManufacturingInstallation, nil, owner)
		suite.Require().NoError(err)
		suite.Require().NoError(uow.ManufacturingOrderRepository().Add(ctx, mo))
	}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	write(uow)
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
	_, err = fresh.DraftRepository().Get(ctx, d.ID())
	suite.Require().Error(err, "Draft should not exist after rollback")

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	write(uow)
	suite.Require().NoError(uow.Commit(ctx))

	reserved, err := fresh.CurtainRepository().ReservedQuantity(ctx, curtain.OrderItemRef(d.Items()[0].ID()), nil)
	suite.Require().NoError(err)
	suite.True(reserved.Equal(decimal.NewFromInt(2)), reserved.String())
	mo, err := fresh.ManufacturingOrderRepository().GetByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(manufacturing.StatusPendingApproval, mo.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	_, order1 := newOrder(suite.T(), owner)
	_, order2 := newOrder(suite.T(), owner)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = fresh.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_ItemLockSerializesWriters holds the lock of a draft item in
// one transaction and checks a second LockItem waits for the commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ItemLockSerializesWriters() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	d, err := draft.NewDraft(kernel.NewUUID(), owner, nil, nil)
	suite.Require().NoError(err)
	item, err := draft.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.MustQuantity("5"),
		decimal.NewFromInt(10), decimal.Zero, draft.ClassificationFabric, owner)
	suite.Require().NoError(err)
	suite.Require().NoError(d.AddItem(owner, item))
	suite.Require().NoError(suite.factory.Create().DraftRepository().Add(ctx, d))

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	suite.Require().NoError(holder.DraftRepository().LockItem(ctx, item.ID()))

	acquired := make(chan error, 1)
	go func() {
		waiter := suite.factory.Create()
		if beginErr := waiter.Begin(ctx); beginErr != nil {
			acquired <- beginErr
			return
		}
		defer func() { _ = waiter.Rollback(ctx) }()
		acquired <- waiter.DraftRepository().LockItem(ctx, item.ID())
	}()

	select {
	case <-acquired:
		suite.Fail("second transaction took the item lock while it was held")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(holder.Commit(ctx))

	select {
	case lockErr := <-acquired:
		suite.Require().NoError(lockErr)
	case <-time.After(5 * time.Second):
		suite.Fail("second transaction never got the item lock")
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
