package commands

import (
	"context"

	"workshop/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultDocumentMaxAttempts is used when no attempt limit is configured.
const DefaultDocumentMaxAttempts = 5

// GenerateContractDocumentCommandHandler runs one attempt of a pending
// contract document job and records the outcome on the job. The generation
// error, if any, is returned after the outcome is committed.
type GenerateContractDocumentCommandHandler struct {
	uowFactory  DocumentUoWFactory
	generator   ports.DocumentGenerator
	maxAttempts int
	logger      *zap.Logger
}

func NewGenerateContractDocumentCommandHandler(
	uowFactory DocumentUoWFactory,
	generator ports.DocumentGenerator,
	maxAttempts int,
	logger *zap.Logger,
) GenerateContractDocumentCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultDocumentMaxAttempts
	}
	return GenerateContractDocumentCommandHandler{
		uowFactory:  uowFactory,
		generator:   generator,
		maxAttempts: maxAttempts,
		logger:      logger.With(zap.String("component", "documents")),
	}
}

func (h GenerateContractDocumentCommandHandler) Handle(ctx context.Context, cmd GenerateContractDocumentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs := uow.DocumentJobRepository()
	job, err := jobs.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !job.IsDue() {
		return nil
	}

	genErr := h.generator.GenerateContractDocument(ctx, job.OrderID(), job.ActorID())
	if genErr != nil {
		job.Fail(genErr, h.maxAttempts)
		h.logger.Warn("contract document generation failed",
			zap.Stringer("order_id", job.OrderID()),
			zap.Int("attempts", job.Attempts()),
			zap.String("status", string(job.Status())),
			zap.Error(genErr),
		)
	} else {
		job.Succeed()
	}

	if err = jobs.Update(ctx, job); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}
	return genErr
}
