package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// Status is the coarse order status. Apart from New it mirrors the manufacturing status 1:1.
type Status string

const (
	StatusNew             Status = "new"
	StatusPendingApproval Status = "pending_approval"
	StatusPending         Status = "pending"
	StatusInProgress      Status = "in_progress"
	StatusReadyInstall    Status = "ready_install"
	StatusCompleted       Status = "completed"
	StatusDelivered       Status = "delivered"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
)

func (s Status) Validate() error {
	switch s {
	case StatusNew, StatusPendingApproval, StatusPending, StatusInProgress, StatusReadyInstall,
		StatusCompleted, StatusDelivered, StatusRejected, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order_status", fmt.Errorf("%q is not an order status", string(s)))
	}
}

// TrackingStatus is what the customer sees about production progress.
type TrackingStatus string

const (
	TrackingNone      TrackingStatus = "none"
	TrackingFactory   TrackingStatus = "factory"
	TrackingReady     TrackingStatus = "ready"
	TrackingDelivered TrackingStatus = "delivered"
)

func (t TrackingStatus) Validate() error {
	switch t {
	case TrackingNone, TrackingFactory, TrackingReady, TrackingDelivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("tracking_status", fmt.Errorf("%q is not a tracking status", string(t)))
	}
}
