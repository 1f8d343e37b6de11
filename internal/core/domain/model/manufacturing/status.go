package manufacturing

import (
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// Status is the production status of a manufacturing order.
type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusPending         Status = "pending"
	StatusInProgress      Status = "in_progress"
	StatusReadyInstall    Status = "ready_install"
	StatusCompleted       Status = "completed"
	StatusDelivered       Status = "delivered"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
)

// Capability names an identity capability checked before a status change.
type Capability string

const (
	// CapabilityApprove allows moves out of pending_approval, rejection and re-approval.
	CapabilityApprove Capability = "approve-manufacturing"
	// CapabilityProgress allows forward moves out of pending and later states.
	CapabilityProgress Capability = "progress-manufacturing"
	// CapabilityOverride is the superuser equivalent: any transition except the
	// type and post-completion rules.
	CapabilityOverride Capability = "override-manufacturing"
)

// rank is the implied production ordering. Rejected and cancelled are off the
// line and have no rank.
var rank = map[Status]int{
	StatusPendingApproval: 0,
	StatusPending:         1,
	StatusInProgress:      2,
	StatusReadyInstall:    3,
	StatusCompleted:       4,
	StatusDelivered:       5,
}

func (s Status) Validate() error {
	switch s {
	case StatusPendingApproval, StatusPending, StatusInProgress, StatusReadyInstall,
		StatusCompleted, StatusDelivered, StatusRejected, StatusCancelled:
		return nil
	case "":
		return errs.NewValueIsRequiredError("status")
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a manufacturing status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether only an override may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusRejected || s == StatusCancelled
}

// pastProduction reports whether s has reached ready_install or completed.
func (s Status) pastProduction() bool {
	return s == StatusReadyInstall || s == StatusCompleted || s == StatusDelivered
}

// RequiredCapability returns the capability an actor needs to move a
// manufacturing order out of from without an override.
func RequiredCapability(from Status) Capability {
	switch {
	case from == StatusPendingApproval, from == StatusRejected:
		return CapabilityApprove
	case from.IsTerminal():
		return CapabilityOverride
	default:
		return CapabilityProgress
	}
}

// NextStatuses lists the statuses reachable from from without an override.
func NextStatuses(from Status, mtype kernel.ManufacturingType) []Status {
	switch from {
	case StatusPendingApproval:
		return []Status{StatusPending, StatusRejected, StatusCancelled}
	case StatusPending:
		return []Status{StatusInProgress, StatusCancelled}
	case StatusInProgress:
		if mtype == kernel.ManufacturingInstallation {
			return []Status{StatusReadyInstall}
		}
		return []Status{StatusCompleted}
	case StatusReadyInstall, StatusCompleted:
		return []Status{StatusDelivered}
	default:
		return nil
	}
}

// CheckTransition decides whether a manufacturing order of type mtype may move
// from one status to another.
//
// Rules, in the order they are checked:
//   - the target must differ from the current status
//   - ready_install exists only for installation orders and completed only
//     for custom and accessory orders, override or not
//   - once ready_install or completed is reached the order can no longer be
//     rejected or cancelled, override or not
//   - with override every remaining move is allowed, including backward moves
//     and leaving terminal statuses
//   - without override backward moves are refused and the target must be in
//     NextStatuses(from, mtype)
//
// Every refusal is an errs.StateConflictError carrying both statuses.
func CheckTransition(from, to Status, mtype kernel.ManufacturingType, override bool) error {
	if err := to.Validate(); err != nil {
		return err
	}
	conflict := errs.NewStateConflictError("manufacturing order", from.String(), to.String())
	if from == to {
		return conflict
	}
	if to == StatusReadyInstall && mtype != kernel.ManufacturingInstallation {
		return conflict
	}
	if to == StatusCompleted && mtype == kernel.ManufacturingInstallation {
		return conflict
	}
	if from.pastProduction() && (to == StatusRejected || to == StatusCancelled) {
		return conflict
	}
	if override {
		return nil
	}
	fromRank, fromRanked := rank[from]
	toRank, toRanked := rank[to]
	if fromRanked && toRanked && toRank < fromRank {
		return conflict
	}
	for _, allowed := range NextStatuses(from, mtype) {
		if allowed == to {
			return nil
		}
	}
	return conflict
}
