package ports

import (
	"context"

	"workshop/internal/core/domain/model/document"
	"workshop/internal/core/domain/model/kernel"
)

// DocumentGenerator renders and stores the contract document of an order.
// Calling it again for the same order must not produce a second document.
type DocumentGenerator interface {
	GenerateContractDocument(ctx context.Context, orderID, actorID kernel.UUID) error
}

// DocumentJobRepository tracks contract document generation per order.
type DocumentJobRepository interface {
	Add(ctx context.Context, j *document.Job) error
	Update(ctx context.Context, j *document.Job) error
	// Get returns the job of an order or errs.ObjectNotFoundError.
	Get(ctx context.Context, orderID kernel.UUID) (*document.Job, error)
	// ListDue returns up to limit pending jobs, oldest first.
	ListDue(ctx context.Context, limit int) ([]*document.Job, error)
}
