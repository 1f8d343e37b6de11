package ports

import (
	"context"
	"errors"
	"time"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// IdentityProvider answers capability and hierarchy questions about actors.
type IdentityProvider interface {
	HasCapability(ctx context.Context, actorID kernel.UUID, capability string) (bool, error)
	// CanManage reports whether manager has management authority over actor.
	CanManage(ctx context.Context, manager, actor kernel.UUID) (bool, error)
	// ResolveSubject maps an external identity subject to an actor id.
	ResolveSubject(ctx context.Context, subject string) (kernel.UUID, error)
}

// Product is the catalog view of something that can be put on an order.
type Product struct {
	ID             kernel.UUID
	Name           string
	UnitPrice      decimal.Decimal
	Classification draft.Classification
}

type Catalog interface {
	// Product returns the product or errs.ObjectNotFoundError.
	Product(ctx context.Context, id kernel.UUID) (Product, error)
}

const (
	EventOrderFinalized       = "order.finalized"
	EventManufacturingStatus  = "manufacturing.status_changed"
	EventManufacturingReplied = "manufacturing.rejection_replied"
)

// Event is a notification about something that already happened.
type Event struct {
	Type        string
	AggregateID kernel.UUID
	ActorID     kernel.UUID
	Attributes  map[string]string
	At          time.Time
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// ErrLockHeld is returned by Locker.Acquire when somebody else holds the key.
var ErrLockHeld = errors.New("lock is held")

// Locker hands out short lived exclusive locks keyed by name.
type Locker interface {
	// Acquire takes the lock for at most ttl and returns the function that releases it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
