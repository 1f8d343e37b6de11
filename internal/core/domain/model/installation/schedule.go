// Package installation models the installation schedules attached to installation orders.
package installation

import (
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule constructor")

// Status is shared by the order's installation status and each schedule.
type Status string

const (
	NeedsScheduling Status = "needs_scheduling"
	Scheduled       Status = "scheduled"
	Completed       Status = "completed"
	Cancelled       Status = "cancelled"
)

func (s Status) Validate() error {
	switch s {
	case NeedsScheduling, Scheduled, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("installation_status", fmt.Errorf("%q is not an installation status", string(s)))
	}
}

// Settle returns the status to store when current is overwritten by target:
// a scheduled installation stays scheduled while manufacturing still only
// asks for scheduling.
func Settle(current, target Status) Status {
	if target == NeedsScheduling && current == Scheduled {
		return Scheduled
	}
	return target
}

// Schedule is an installation appointment for an order.
type Schedule struct {
	id            kernel.UUID
	orderID       kernel.UUID
	scheduledFor  *time.Time
	status        Status
	isConstructed bool
}

func NewSchedule(id, orderID kernel.UUID) (*Schedule, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &Schedule{id: id, orderID: orderID, status: NeedsScheduling, isConstructed: true}, nil
}

// RestoreSchedule rebuilds a persisted schedule. Booking dates is the
// installation team's concern; this package only reads them.
func RestoreSchedule(id, orderID kernel.UUID, scheduledFor *time.Time, status Status) (*Schedule, error) {
	s, err := NewSchedule(id, orderID)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	s.scheduledFor = scheduledFor
	s.status = status
	return s, nil
}

func (s *Schedule) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrScheduleIsNotConstructed
	}
	return nil
}

func (s *Schedule) ID() kernel.UUID          { return s.id }
func (s *Schedule) OrderID() kernel.UUID     { return s.orderID }
func (s *Schedule) ScheduledFor() *time.Time { return s.scheduledFor }
func (s *Schedule) Status() Status           { return s.status }

// Apply moves the schedule to the status derived from manufacturing.
func (s *Schedule) Apply(target Status) {
	s.status = Settle(s.status, target)
}
