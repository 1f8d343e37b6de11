package services

import (
	"fmt"

	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
)

// StatusPropagator copies the status of a manufacturing order onto its parent
// order and, for installation orders, onto the order's installation status and
// every installation schedule of that order.
//
// It is called explicitly by whatever changed the manufacturing status, inside
// the same transaction. Writing the order never calls back into manufacturing,
// so there is nothing to re-enter.
type StatusPropagator struct{}

func NewStatusPropagator() StatusPropagator {
	return StatusPropagator{}
}

// Apply propagates mo's current status. previous is the status mo left; an
// unchanged status propagates nothing.
func (StatusPropagator) Apply(
	mo *manufacturing.ManufacturingOrder,
	previous manufacturing.Status,
	o *order.Order,
	schedules []*installation.Schedule,
) error {
	if err := mo.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if !mo.OrderID().IsEqual(o.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%s belongs to order %s, not %s", mo, mo.OrderID(), o.ID()))
	}
	status := mo.Status()
	if status == previous {
		return nil
	}

	if err := o.ApplyManufacturingStatus(OrderStatusFor(status), TrackingStatusFor(status)); err != nil {
		return err
	}
	if mo.Type() != kernel.ManufacturingInstallation || o.Type() != kernel.OrderTypeInstallation {
		return nil
	}

	target := InstallationStatusFor(status)
	if err := o.ApplyInstallationStatus(target); err != nil {
		return err
	}
	for _, s := range schedules {
		if !s.OrderID().IsEqual(o.ID()) {
			continue
		}
		s.Apply(target)
	}
	return nil
}

// OrderStatusFor maps a manufacturing status 1:1 onto the order status.
func OrderStatusFor(s manufacturing.Status) order.Status {
	return order.Status(s)
}

// TrackingStatusFor is the customer facing view of a manufacturing status.
func TrackingStatusFor(s manufacturing.Status) order.TrackingStatus {
	switch s {
	case manufacturing.StatusReadyInstall, manufacturing.StatusCompleted:
		return order.TrackingReady
	case manufacturing.StatusDelivered:
		return order.TrackingDelivered
	default:
		return order.TrackingFactory
	}
}

// InstallationStatusFor maps a manufacturing status onto the installation status.
func InstallationStatusFor(s manufacturing.Status) installation.Status {
	switch s {
	case manufacturing.StatusCompleted, manufacturing.StatusDelivered:
		return installation.Completed
	case manufacturing.StatusRejected, manufacturing.StatusCancelled:
		return installation.Cancelled
	default:
		return installation.NeedsScheduling
	}
}
