// Package ports defines the contracts between the order wizard core and the
// infrastructure: repositories bound to a unit of work, and the collaborators
// (identity, catalog, documents, notifications, locks) the core consumes.
package ports

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
)

// DraftRepository persists draft aggregates with their items and edit history.
type DraftRepository interface {
	// Add persists a new draft.
	Add(ctx context.Context, d *draft.Draft) error

	// Update persists the draft scalars, replaces its items and appends
	// history entries not stored yet.
	Update(ctx context.Context, d *draft.Draft) error

	// Get returns the draft or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*draft.Draft, error)

	// GetForUpdate is Get with the draft row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*draft.Draft, error)

	// Delete removes the draft and its items.
	Delete(ctx context.Context, id kernel.UUID) error

	// CountOpenByOwner counts the incomplete drafts created by owner.
	CountOpenByOwner(ctx context.Context, owner kernel.UUID) (int, error)

	// LockItem locks the row of a draft item until the transaction ends.
	// Reservation checks on the item must run after the lock is taken.
	LockItem(ctx context.Context, itemID kernel.UUID) error
}
