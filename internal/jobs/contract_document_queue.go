package jobs

import (
	"context"
	"sync"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

type documentGenerator interface {
	Handle(ctx context.Context, cmd commands.GenerateContractDocumentCommand) error
}

type documentRequest struct {
	orderID kernel.UUID
	actorID kernel.UUID
}

// ContractDocumentQueue implements commands.DocumentQueue with a buffered
// channel drained by a fixed number of workers.
type ContractDocumentQueue struct {
	handler documentGenerator
	workers int
	queue   chan documentRequest
	logger  *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped bool
}

func NewContractDocumentQueue(handler documentGenerator, workers, buffer int, logger *zap.Logger) *ContractDocumentQueue {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &ContractDocumentQueue{
		handler: handler,
		workers: workers,
		queue:   make(chan documentRequest, buffer),
		logger:  logger.With(zap.String("component", "contract_document_queue")),
	}
}

// Enqueue never blocks. Work that does not fit the buffer is left to the
// retry job.
func (q *ContractDocumentQueue) Enqueue(orderID, actorID kernel.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	select {
	case q.queue <- documentRequest{orderID: orderID, actorID: actorID}:
	default:
		q.logger.Warn("contract document queue is full", zap.Stringer("order_id", orderID))
	}
}

func (q *ContractDocumentQueue) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	q.mu.Lock()
	q.cancel = cancel
	q.mu.Unlock()

	for range q.workers {
		q.wg.Add(1)
		go q.work(ctx)
	}
	q.logger.Info("contract document queue started", zap.Int("workers", q.workers))
	return nil
}

// Stop waits for the workers to finish the request they are on. Requests
// still buffered stay pending in the job table.
func (q *ContractDocumentQueue) Stop() {
	q.mu.Lock()
	q.stopped = true
	cancel := q.cancel
	q.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	q.wg.Wait()
	q.logger.Info("contract document queue stopped")
}

func (q *ContractDocumentQueue) work(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-q.queue:
			q.generate(ctx, req)
		}
	}
}

func (q *ContractDocumentQueue) generate(ctx context.Context, req documentRequest) {
	cmd, err := commands.NewGenerateContractDocumentCommand(req.orderID)
	if err != nil {
		q.logger.Error("invalid contract document request", zap.Error(err))
		return
	}
	if err = q.handler.Handle(ctx, cmd); err != nil {
		q.logger.Warn("contract document generation failed",
			zap.Stringer("order_id", req.orderID),
			zap.Stringer("actor_id", req.actorID),
			zap.Error(err),
		)
	}
}
