package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// requireAnyCapability passes when the actor holds at least one of caps.
func requireAnyCapability(
	ctx context.Context,
	identity ports.IdentityProvider,
	actor kernel.UUID,
	action string,
	caps ...manufacturing.Capability,
) error {
	for _, c := range caps {
		ok, err := identity.HasCapability(ctx, actor, string(c))
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return errs.NewAuthorizationError(actor.String(), action)
}

// saveStatusChange persists a manufacturing order whose status moved away
// from previous, and propagates the new status to the order and its
// installation schedules in the same transaction.
func saveStatusChange(
	ctx context.Context,
	uow ManufacturingUoW,
	propagator services.StatusPropagator,
	mo *manufacturing.ManufacturingOrder,
	previous manufacturing.Status,
) error {
	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, mo.OrderID())
	if err != nil {
		return err
	}
	installs := uow.InstallationRepository()
	schedules, err := installs.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if err = propagator.Apply(mo, previous, o, schedules); err != nil {
		return err
	}

	if err = uow.ManufacturingOrderRepository().Update(ctx, mo); err != nil {
		return err
	}
	if err = orders.UpdateStatus(ctx, o); err != nil {
		return err
	}
	for _, s := range schedules {
		if err = installs.Update(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func statusChangedEvent(mo *manufacturing.ManufacturingOrder, previous manufacturing.Status, actor kernel.UUID) ports.Event {
	return ports.Event{
		Type:        ports.EventManufacturingStatus,
		AggregateID: mo.ID(),
		ActorID:     actor,
		Attributes: map[string]string{
			"order_id": mo.OrderID().String(),
			"from":     previous.String(),
			"to":       mo.Status().String(),
		},
		At: time.Now().UTC(),
	}
}
