package documents

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// LogDocumentGenerator renders the contract and only logs it. Used when no
// bucket is configured, so finalization still exercises the document path.
type LogDocumentGenerator struct {
	source ContractSource
	logger *zap.Logger
}

func NewLogDocumentGenerator(source ContractSource, logger *zap.Logger) *LogDocumentGenerator {
	return &LogDocumentGenerator{source: source, logger: logger.With(zap.String("component", "documents"))}
}

func (g *LogDocumentGenerator) GenerateContractDocument(ctx context.Context, orderID, actorID kernel.UUID) error {
	o, err := g.source.Order(ctx, orderID)
	if err != nil {
		return err
	}
	curtains, err := g.source.Curtains(ctx, orderID)
	if err != nil {
		return err
	}
	doc := render(o, curtains, actorID, time.Now().UTC())
	g.logger.Info("contract document rendered",
		zap.String("key", Key(orderID)),
		zap.String("order_number", doc.OrderNumber),
		zap.Int("items", len(doc.Items)),
		zap.Int("curtains", len(doc.Curtains)),
		zap.String("total", doc.Total))
	return nil
}
