package manufacturing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrManufacturingOrderIsNotConstructed = errors.New("ManufacturingOrder must be created via NewManufacturingOrder constructor")
	// ErrRejectionNeedsReason is returned when rejected is requested as a plain transition.
	ErrRejectionNeedsReason = errs.NewValueIsRequiredError("reason")
)

// StatusChange is one entry of the status change history.
type StatusChange struct {
	From    Status
	To      Status
	ActorID kernel.UUID
	At      time.Time
	Note    string
}

// RejectionLog captures one rejection and the single reply it may receive.
type RejectionLog struct {
	ID             kernel.UUID
	PreviousStatus Status
	Reason         string
	RejectedBy     kernel.UUID
	RejectedAt     time.Time
	Reply          string
	RepliedBy      *kernel.UUID
	RepliedAt      *time.Time
	ReplyRead      bool
}

// HasReply reports whether the rejection was answered.
func (l RejectionLog) HasReply() bool {
	return l.RepliedBy != nil
}

// ManufacturingOrder tracks production of a finalized order of a manufacturable type.
//
// The aggregate owns the status, the rejection logs and the status change
// history. It knows nothing about the parent order: propagating a status change
// to the order and its installation schedules is the caller's job.
type ManufacturingOrder struct {
	id               kernel.UUID
	orderID          kernel.UUID
	mtype            kernel.ManufacturingType
	branchID         *kernel.UUID
	status           Status
	productionLineID *kernel.UUID
	rejections       []RejectionLog
	changes          []StatusChange
	createdAt        time.Time
	guard            guard.ConstructorGuard
}

// NewManufacturingOrder creates a manufacturing order in pending_approval and
// records that initial status in the history.
//
// Parameters:
//   - id: identifier of the manufacturing order
//   - orderID: the finalized order being produced
//   - mtype: installation, custom or accessory
//   - branchID: customer branch used for line auto-assignment, may be nil
//   - actor: the actor finalizing the order
func NewManufacturingOrder(id, orderID kernel.UUID, mtype kernel.ManufacturingType, branchID *kernel.UUID, actor kernel.UUID) (*ManufacturingOrder, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), mtype.Validate()); err != nil {
		return nil, err
	}
	if actor.IsZero() {
		return nil, errs.NewValueIsRequiredError("actor_id")
	}
	at := now()
	return &ManufacturingOrder{
		id:        id,
		orderID:   orderID,
		mtype:     mtype,
		branchID:  branchID,
		status:    StatusPendingApproval,
		changes:   []StatusChange{{To: StatusPendingApproval, ActorID: actor, At: at}},
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreParams carries a persisted manufacturing order back into the domain.
type RestoreParams struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	Type             kernel.ManufacturingType
	BranchID         *kernel.UUID
	Status           Status
	ProductionLineID *kernel.UUID
	Rejections       []RejectionLog
	Changes          []StatusChange
	CreatedAt        time.Time
}

func RestoreManufacturingOrder(p RestoreParams) (*ManufacturingOrder, error) {
	if err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.Type.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	return &ManufacturingOrder{
		id:               p.ID,
		orderID:          p.OrderID,
		mtype:            p.Type,
		branchID:         p.BranchID,
		status:           p.Status,
		productionLineID: p.ProductionLineID,
		rejections:       append([]RejectionLog(nil), p.Rejections...),
		changes:          append([]StatusChange(nil), p.Changes...),
		createdAt:        p.CreatedAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (m *ManufacturingOrder) Validate() error {
	if m == nil {
		return ErrManufacturingOrderIsNotConstructed
	}
	return m.guard.Validate(ErrManufacturingOrderIsNotConstructed)
}

func (m *ManufacturingOrder) ID() kernel.UUID                { return m.id }
func (m *ManufacturingOrder) OrderID() kernel.UUID           { return m.orderID }
func (m *ManufacturingOrder) Type() kernel.ManufacturingType { return m.mtype }
func (m *ManufacturingOrder) BranchID() *kernel.UUID         { return m.branchID }
func (m *ManufacturingOrder) Status() Status                 { return m.status }
func (m *ManufacturingOrder) ProductionLineID() *kernel.UUID { return m.productionLineID }
func (m *ManufacturingOrder) CreatedAt() time.Time           { return m.createdAt }

func (m *ManufacturingOrder) Rejections() []RejectionLog {
	return append([]RejectionLog(nil), m.rejections...)
}

func (m *ManufacturingOrder) Changes() []StatusChange {
	return append([]StatusChange(nil), m.changes...)
}

// LatestRejection returns the most recent rejection log, if any.
func (m *ManufacturingOrder) LatestRejection() (RejectionLog, bool) {
	if len(m.rejections) == 0 {
		return RejectionLog{}, false
	}
	return m.rejections[len(m.rejections)-1], true
}

// TransitionTo moves the order to status to and returns the previous status.
// Rejection goes through Reject because it needs a reason.
func (m *ManufacturingOrder) TransitionTo(to Status, actor kernel.UUID, override bool, note string) (Status, error) {
	if to == StatusRejected {
		return m.status, ErrRejectionNeedsReason
	}
	if err := CheckTransition(m.status, to, m.mtype, override); err != nil {
		return m.status, err
	}
	return m.move(to, actor, note), nil
}

// Reject moves a pending_approval or pending order to rejected and opens a
// rejection log that remembers the previous status.
func (m *ManufacturingOrder) Reject(rejectionID kernel.UUID, reason string, actor kernel.UUID) (Status, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return m.status, ErrRejectionNeedsReason
	}
	if err := rejectionID.Validate(); err != nil {
		return m.status, err
	}
	if m.status != StatusPendingApproval && m.status != StatusPending {
		return m.status, errs.NewStateConflictError("manufacturing order", m.status.String(), StatusRejected.String())
	}
	prev := m.move(StatusRejected, actor, reason)
	m.rejections = append(m.rejections, RejectionLog{
		ID:             rejectionID,
		PreviousStatus: prev,
		Reason:         reason,
		RejectedBy:     actor,
		RejectedAt:     m.changes[len(m.changes)-1].At,
	})
	return prev, nil
}

// Reply attaches the one reply a rejection may receive. Only the latest
// rejection of a still rejected order accepts a reply.
func (m *ManufacturingOrder) Reply(rejectionID kernel.UUID, reply string, actor kernel.UUID) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return errs.NewValueIsRequiredError("reply")
	}
	idx := m.rejectionIndex(rejectionID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("rejection", rejectionID.String())
	}
	if m.status != StatusRejected {
		return errs.NewStateConflictError("manufacturing order", m.status.String(), "reply")
	}
	if idx != len(m.rejections)-1 {
		return errs.NewStateConflictError("rejection", "superseded", "reply")
	}
	log := &m.rejections[idx]
	if log.HasReply() {
		return errs.NewStateConflictError("rejection", "replied", "reply")
	}
	at := now()
	log.Reply = reply
	log.RepliedBy = &actor
	log.RepliedAt = &at
	return nil
}

// Approve re-approves a rejected order, or approves a pending_approval one,
// moving it to pending. The rejection log is left as it is.
func (m *ManufacturingOrder) Approve(actor kernel.UUID, note string) (Status, error) {
	if m.status != StatusRejected && m.status != StatusPendingApproval {
		return m.status, errs.NewStateConflictError("manufacturing order", m.status.String(), StatusPending.String())
	}
	return m.move(StatusPending, actor, note), nil
}

// MarkReplyRead flags the reply of a rejection as read by an approver.
func (m *ManufacturingOrder) MarkReplyRead(rejectionID kernel.UUID) error {
	idx := m.rejectionIndex(rejectionID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("rejection", rejectionID.String())
	}
	if !m.rejections[idx].HasReply() {
		return errs.NewStateConflictError("rejection", "unanswered", "mark read")
	}
	m.rejections[idx].ReplyRead = true
	return nil
}

// AssignLine sets the production line. A line is assigned at most once.
func (m *ManufacturingOrder) AssignLine(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	if m.productionLineID != nil {
		return errs.NewStateConflictError("production line", m.productionLineID.String(), lineID.String())
	}
	m.productionLineID = &lineID
	return nil
}

func (m *ManufacturingOrder) move(to Status, actor kernel.UUID, note string) Status {
	prev := m.status
	m.status = to
	m.changes = append(m.changes, StatusChange{From: prev, To: to, ActorID: actor, At: now(), Note: note})
	return prev
}

func (m *ManufacturingOrder) rejectionIndex(id kernel.UUID) int {
	for i := range m.rejections {
		if m.rejections[i].ID.IsEqual(id) {
			return i
		}
	}
	return -1
}

func (m *ManufacturingOrder) String() string {
	return fmt.Sprintf("manufacturing order %s (%s, %s)", m.id, m.mtype, m.status)
}

var now = func() time.Time { return time.Now().UTC() }
