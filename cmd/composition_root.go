package cmd

import (
	"context"
	"fmt"

	httpin "workshop/internal/adapters/in/http"
	"workshop/internal/adapters/out/documents"
	"workshop/internal/adapters/out/events"
	"workshop/internal/adapters/out/lock"
	"workshop/internal/adapters/out/postgres"
	"workshop/internal/adapters/out/postgres/catalogrepo"
	"workshop/internal/adapters/out/postgres/identityrepo"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/ports"
	"workshop/internal/jobs"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentRetryBatch caps how many failed documents one retry run picks up.
const DocumentRetryBatch = 50

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	readDB     *sqlx.DB
	logger     *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	identity   *identityrepo.GormIdentityProvider

	locker    ports.Locker
	notifier  ports.Notifier
	generator ports.DocumentGenerator
	queue     *jobs.ContractDocumentQueue
	jobs      *jobs.JobManager
	closers   []func() error
}

// NewCompositionRoot wires adapters from cfg. Redis, Kafka and S3 are used
// when configured; otherwise the in-process lock, the log notifier and the
// log document generator take their place.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, readDB *sqlx.DB, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		readDB:     readDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		identity:   identityrepo.NewGormIdentityProvider(gormDB),
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		c.locker = lock.NewRedisLocker(client)
		c.closers = append(c.closers, client.Close)
	} else {
		c.locker = lock.NewLocalLocker()
	}

	if len(cfg.KafkaBrokers) > 0 {
		notifier := events.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		c.notifier = notifier
		c.closers = append(c.closers, notifier.Close)
	} else {
		c.notifier = events.NewLogNotifier(logger)
	}

	source := documents.NewUnitOfWorkSource(c.uowFactory)
	if cfg.AWSS3Bucket != "" {
		generator, err := documents.NewS3DocumentGenerator(ctx, documents.S3Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}, source)
		if err != nil {
			return nil, fmt.Errorf("document storage: %w", err)
		}
		c.generator = generator
	} else {
		c.generator = documents.NewLogDocumentGenerator(source, logger)
	}

	c.queue = jobs.NewContractDocumentQueue(c.CreateGenerateContractDocumentCommandHandler(), cfg.DocumentWorkers, 0, logger)
	c.jobs = jobs.NewJobManager(
		c.queue,
		jobs.NewDocumentRetryJob(c.CreateRetryContractDocumentsCommandHandler(), cfg.DocumentRetrySchedule, DocumentRetryBatch, logger),
	)
	return c, nil
}

// Jobs returns the background jobs: the contract document queue and its retry job.
func (c *CompositionRoot) Jobs() *jobs.JobManager {
	return c.jobs
}

// Close releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Identity exposes the actor registry, e.g. for seeding.
func (c *CompositionRoot) Identity() *identityrepo.GormIdentityProvider {
	return c.identity
}

// Catalog exposes the product catalog, e.g. for seeding.
func (c *CompositionRoot) Catalog() *catalogrepo.GormCatalog {
	return catalogrepo.NewGormCatalog(c.gormDB)
}

// CreateEcho builds the HTTP server with every route registered.
func (c *CompositionRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if err = httpin.RegisterSwagger(doc); err != nil {
		return nil, err
	}

	var actor echo.MiddlewareFunc
	if c.cfg.Auth0Domain != "" {
		actor, err = httpin.JWTActor(httpin.AuthConfig{Domain: c.cfg.Auth0Domain, Audience: c.cfg.Auth0Audience}, c.identity)
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
	} else {
		actor = httpin.HeaderActor()
	}

	var extra []echo.MiddlewareFunc
	if c.cfg.OpenAPIValidate {
		validator, validatorErr := httpin.RequestValidator(doc)
		if validatorErr != nil {
			return nil, validatorErr
		}
		extra = append(extra, validator)
	}

	e := httpin.NewEcho(c.logger)
	httpin.NewServer(c.CreateHandlers(), c.logger).Register(e, actor, extra...)
	return e, nil
}

func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateDraft:        c.CreateCreateDraftCommandHandler(),
		DeleteDraft:        commands.NewDeleteDraftCommandHandler(c.curtainUoWFactory(), c.identity),
		GetDraft:           queries.NewGetDraftQueryHandler(c.uowFactory, c.identity),
		GetStep:            queries.NewGetStepQueryHandler(c.uowFactory, c.identity),
		BasicInfoStep:      commands.NewSubmitBasicInfoStepCommandHandler(c.draftUoWFactory(), c.identity),
		OrderTypeStep:      commands.NewSubmitOrderTypeStepCommandHandler(c.draftUoWFactory(), c.identity),
		ItemsStep:          commands.NewSubmitItemsStepCommandHandler(c.draftUoWFactory(), c.identity),
		PaymentStep:        commands.NewSubmitPaymentStepCommandHandler(c.draftUoWFactory(), c.identity),
		ContractStep:       commands.NewSubmitContractStepCommandHandler(c.curtainUoWFactory(), c.identity),
		ReviewStep:         commands.NewSubmitReviewStepCommandHandler(c.draftUoWFactory(), c.identity),
		AddItem:            commands.NewAddDraftItemCommandHandler(c.draftUoWFactory(), c.identity, c.Catalog()),
		UpdateItem:         commands.NewUpdateDraftItemCommandHandler(c.curtainUoWFactory(), c.identity),
		RemoveItem:         commands.NewRemoveDraftItemCommandHandler(c.curtainUoWFactory(), c.identity),
		AddCurtain:         commands.NewAddCurtainCommandHandler(c.curtainUoWFactory(), c.identity),
		RemoveCurtain:      commands.NewRemoveCurtainCommandHandler(c.curtainUoWFactory(), c.identity),
		AddCurtainLine:     commands.NewAddCurtainLineCommandHandler(c.curtainUoWFactory(), c.identity),
		UpdateCurtainLine:  commands.NewUpdateCurtainLineCommandHandler(c.curtainUoWFactory(), c.identity),
		RemoveCurtainLine:  commands.NewRemoveCurtainLineCommandHandler(c.curtainUoWFactory(), c.identity),
		Finalize:           c.CreateFinalizeDraftCommandHandler(),
		StartOrderEdit:     commands.NewStartOrderEditCommandHandler(c.uowFactoryAll(), c.identity, c.locker, c.cfg.DraftQuota),
		OrderTracking:      queries.NewGetOrderTrackingQueryHandler(c.readDB),
		ManufacturingBoard: queries.NewGetManufacturingBoardQueryHandler(c.readDB),
		Transition:         commands.NewTransitionManufacturingOrderCommandHandler(c.manufacturingUoWFactory(), c.identity, c.notifier, c.logger),
		Reject:             commands.NewRejectManufacturingOrderCommandHandler(c.manufacturingUoWFactory(), c.identity, c.notifier, c.logger),
		Reply:              commands.NewReplyToRejectionCommandHandler(c.manufacturingUoWFactory(), c.identity, c.notifier, c.logger),
		Approve:            commands.NewApproveManufacturingOrderCommandHandler(c.manufacturingUoWFactory(), c.identity, c.notifier, c.logger),
		MarkReplyRead:      commands.NewMarkReplyReadCommandHandler(c.manufacturingUoWFactory(), c.identity),
	}
}

func (c *CompositionRoot) CreateCreateDraftCommandHandler() commands.CreateDraftCommandHandler {
	return commands.NewCreateDraftCommandHandler(c.draftUoWFactory(), c.locker, c.cfg.DraftQuota)
}

func (c *CompositionRoot) CreateFinalizeDraftCommandHandler() commands.FinalizeDraftCommandHandler {
	return commands.NewFinalizeDraftCommandHandler(c.uowFactoryAll(), c.identity, c.locker, c.queue, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGenerateContractDocumentCommandHandler() commands.GenerateContractDocumentCommandHandler {
	return commands.NewGenerateContractDocumentCommandHandler(c.documentUoWFactory(), c.generator, c.cfg.DocumentMaxAttempts, c.logger)
}

func (c *CompositionRoot) CreateRetryContractDocumentsCommandHandler() commands.RetryContractDocumentsCommandHandler {
	return commands.NewRetryContractDocumentsCommandHandler(c.documentUoWFactory(), c.CreateGenerateContractDocumentCommandHandler(), c.logger)
}

func (c *CompositionRoot) draftUoWFactory() commands.DraftUoWFactory {
	return FuncDraftUoWFactory(func() commands.DraftUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) curtainUoWFactory() commands.CurtainUoWFactory {
	return FuncCurtainUoWFactory(func() commands.CurtainUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) manufacturingUoWFactory() commands.ManufacturingUoWFactory {
	return FuncManufacturingUoWFactory(func() commands.ManufacturingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) documentUoWFactory() commands.DocumentUoWFactory {
	return FuncDocumentUoWFactory(func() commands.DocumentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncDraftUoWFactory func() commands.DraftUoW

func (f FuncDraftUoWFactory) Create() commands.DraftUoW {
	return f()
}

type FuncCurtainUoWFactory func() commands.CurtainUoW

func (f FuncCurtainUoWFactory) Create() commands.CurtainUoW {
	return f()
}

type FuncManufacturingUoWFactory func() commands.ManufacturingUoW

func (f FuncManufacturingUoWFactory) Create() commands.ManufacturingUoW {
	return f()
}

type FuncDocumentUoWFactory func() commands.DocumentUoW

func (f FuncDocumentUoWFactory) Create() commands.DocumentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
