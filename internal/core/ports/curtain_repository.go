package ports

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CurtainRepository persists curtains and their fabric and accessory lines.
type CurtainRepository interface {
	Add(ctx context.Context, c *curtain.Curtain) error

	// Update persists the curtain and synchronises its lines: new lines are
	// inserted, changed lines updated, missing lines deleted.
	Update(ctx context.Context, c *curtain.Curtain) error

	Get(ctx context.Context, id kernel.UUID) (*curtain.Curtain, error)
	ListByOwner(ctx context.Context, owner curtain.Owner) ([]*curtain.Curtain, error)
	Delete(ctx context.Context, id kernel.UUID) error
	DeleteByOwner(ctx context.Context, owner curtain.Owner) error

	// ReservedQuantity sums the quantity of every line referencing item,
	// leaving out excludeLineID when it is set.
	ReservedQuantity(ctx context.Context, item curtain.ItemRef, excludeLineID *kernel.UUID) (decimal.Decimal, error)

	// DeleteLinesByItem removes every line referencing item.
	DeleteLinesByItem(ctx context.Context, item curtain.ItemRef) error

	// TransferOwnership reparents every curtain of the draft to the order and
	// flips the item references of their lines to order items with the same ids.
	TransferOwnership(ctx context.Context, draftID, orderID kernel.UUID) error
}
