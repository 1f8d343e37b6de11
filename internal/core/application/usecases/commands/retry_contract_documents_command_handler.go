package commands

import (
	"context"

	"workshop/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// RetryContractDocumentsCommandHandler re-runs due document jobs one by one,
// each in its own transaction. Failures of single jobs are logged and do not
// stop the batch.
type RetryContractDocumentsCommandHandler struct {
	uowFactory DocumentUoWFactory
	generate   GenerateContractDocumentCommandHandler
	logger     *zap.Logger
}

func NewRetryContractDocumentsCommandHandler(
	uowFactory DocumentUoWFactory,
	generate GenerateContractDocumentCommandHandler,
	logger *zap.Logger,
) RetryContractDocumentsCommandHandler {
	return RetryContractDocumentsCommandHandler{
		uowFactory: uowFactory,
		generate:   generate,
		logger:     logger.With(zap.String("component", "documents")),
	}
}

func (h RetryContractDocumentsCommandHandler) Handle(ctx context.Context, cmd RetryContractDocumentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	due, err := h.listDue(ctx, cmd.Limit())
	if err != nil {
		return err
	}

	for _, orderID := range due {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		genCmd, cmdErr := NewGenerateContractDocumentCommand(orderID)
		if cmdErr != nil {
			return cmdErr
		}
		if genErr := h.generate.Handle(ctx, genCmd); genErr != nil {
			h.logger.Debug("retry did not succeed", zap.Stringer("order_id", orderID), zap.Error(genErr))
		}
	}
	return nil
}

func (h RetryContractDocumentsCommandHandler) listDue(ctx context.Context, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs, err := uow.DocumentJobRepository().ListDue(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.OrderID())
	}
	return ids, nil
}
