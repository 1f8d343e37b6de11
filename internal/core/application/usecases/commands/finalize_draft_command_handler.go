package commands

import (
	"context"
	"errors"
	"time"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/document"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"go.uber.org/zap"
)

// FinalizationLockTTL bounds how long a crashed finalization can block a retry.
const FinalizationLockTTL = 30 * time.Second

// FinalizeDraftCommandHandler converts a draft into an order in one transaction.
//
// Create mode inserts a new order with the draft items under their draft ids.
// Edit mode overwrites the edited order and replaces its curtains and payments.
// In both modes the draft curtains are reparented to the order, a manufacturing
// order is created for manufacturable types and its initial status is
// propagated. Document generation and the finalized event run after commit and
// never fail the call.
type FinalizeDraftCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	locker     ports.Locker
	documents  DocumentQueue
	notifier   ports.Notifier
	assigner   services.LineAssigner
	propagator services.StatusPropagator
	logger     *zap.Logger
}

func NewFinalizeDraftCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	locker ports.Locker,
	documents DocumentQueue,
	notifier ports.Notifier,
	logger *zap.Logger,
) FinalizeDraftCommandHandler {
	return FinalizeDraftCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		locker:     locker,
		documents:  documents,
		notifier:   notifier,
		assigner:   services.NewLineAssigner(),
		propagator: services.NewStatusPropagator(),
		logger:     logger.With(zap.String("component", "finalization")),
	}
}

// finalized is what the post-commit side effects need to know.
type finalized struct {
	orderID       kernel.UUID
	orderType     kernel.OrderType
	editMode      bool
	enqueueJob    bool
	manufacturing *manufacturing.ManufacturingOrder
}

func (h FinalizeDraftCommandHandler) Handle(ctx context.Context, cmd FinalizeDraftCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	release, err := h.locker.Acquire(ctx, "finalize:"+cmd.DraftID().String(), FinalizationLockTTL)
	if err != nil {
		if errors.Is(err, ports.ErrLockHeld) {
			return kernel.UUID{}, errs.NewStateConflictError("draft", "finalization in progress", "finalize")
		}
		return kernel.UUID{}, err
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
			h.logger.Warn("release finalization lock", zap.Stringer("draft_id", cmd.DraftID()), zap.Error(releaseErr))
		}
	}()

	result, err := h.finalize(ctx, cmd)
	if err != nil {
		return kernel.UUID{}, err
	}

	h.afterCommit(ctx, cmd.ActorID(), result)
	return result.orderID, nil
}

func (h FinalizeDraftCommandHandler) finalize(ctx context.Context, cmd FinalizeDraftCommand) (finalized, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return finalized{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drafts := uow.DraftRepository()
	d, err := drafts.GetForUpdate(ctx, cmd.DraftID())
	if err != nil {
		return finalized{}, err
	}
	if err = authorizeOwnerOrManager(ctx, h.identity, d.OwnerID(), cmd.ActorID(), "finalize draft "+d.ID().String()); err != nil {
		return finalized{}, err
	}
	if err = d.EnsureOpen(); err != nil {
		return finalized{}, err
	}
	if missing := d.MissingSteps(); len(missing) > 0 {
		return finalized{}, errs.NewIncompleteWizardError(missing)
	}
	if len(d.Items()) == 0 {
		return finalized{}, errs.ErrEmptyOrder
	}
	if err = d.ValidatePayment(); err != nil {
		if ve, ok := errs.AsValidation(err); ok {
			return finalized{}, ve
		}
		return finalized{}, err
	}

	o, err := h.saveOrder(ctx, uow, d, cmd)
	if err != nil {
		return finalized{}, err
	}
	result := finalized{orderID: o.ID(), orderType: o.Type(), editMode: d.IsEditMode()}

	if err = uow.CurtainRepository().TransferOwnership(ctx, d.ID(), o.ID()); err != nil {
		return finalized{}, err
	}
	if err = h.savePayment(ctx, uow.PaymentRepository(), d, o, cmd.ActorID()); err != nil {
		return finalized{}, err
	}

	schedules, err := h.ensureSchedule(ctx, uow.InstallationRepository(), o)
	if err != nil {
		return finalized{}, err
	}
	if result.manufacturing, err = h.ensureManufacturing(ctx, uow, o, cmd.ActorID(), schedules); err != nil {
		return finalized{}, err
	}
	if result.enqueueJob, err = h.ensureDocumentJob(ctx, uow.DocumentJobRepository(), o, cmd.ActorID()); err != nil {
		return finalized{}, err
	}

	if err = d.MarkCompleted(cmd.ActorID(), o.ID()); err != nil {
		return finalized{}, err
	}
	if err = drafts.Update(ctx, d); err != nil {
		return finalized{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return finalized{}, err
	}
	return result, nil
}

// saveOrder creates the order or, for an edit-mode draft, overwrites the
// edited one and clears what the draft replaces.
func (h FinalizeDraftCommandHandler) saveOrder(ctx context.Context, uow UoW, d *draft.Draft, cmd FinalizeDraftCommand) (*order.Order, error) {
	orders := uow.OrderRepository()
	if !d.IsEditMode() {
		o, err := order.NewOrderFromDraft(cmd.OrderID(), d, cmd.ActorID())
		if err != nil {
			return nil, err
		}
		if err = orders.Add(ctx, o); err != nil {
			return nil, err
		}
		return o, nil
	}

	o, err := orders.GetForUpdate(ctx, *d.EditingOrderID())
	if err != nil {
		return nil, err
	}
	if err = o.ReplaceFromDraft(d); err != nil {
		return nil, err
	}
	if err = uow.CurtainRepository().DeleteByOwner(ctx, curtain.OrderOwner(o.ID())); err != nil {
		return nil, err
	}
	if err = uow.PaymentRepository().DeleteByOrder(ctx, o.ID()); err != nil {
		return nil, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (h FinalizeDraftCommandHandler) savePayment(
	ctx context.Context,
	payments ports.PaymentRepository,
	d *draft.Draft,
	o *order.Order,
	actor kernel.UUID,
) error {
	p := d.Payment()
	if !p.PaidAmount.IsPositive() {
		return nil
	}
	payment, err := order.NewPayment(kernel.NewUUID(), o.ID(), p.PaidAmount, p.Method, p.Reference, actor, time.Now().UTC())
	if err != nil {
		return err
	}
	return payments.Add(ctx, payment)
}

// ensureSchedule gives an installation order its schedule the first time it is finalized.
func (h FinalizeDraftCommandHandler) ensureSchedule(
	ctx context.Context,
	repo ports.InstallationRepository,
	o *order.Order,
) ([]*installation.Schedule, error) {
	if o.Type() != kernel.OrderTypeInstallation {
		return nil, nil
	}
	schedules, err := repo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if len(schedules) > 0 {
		return schedules, nil
	}
	s, err := installation.NewSchedule(kernel.NewUUID(), o.ID())
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, s); err != nil {
		return nil, err
	}
	return []*installation.Schedule{s}, nil
}

// ensureManufacturing creates the manufacturing order of a manufacturable
// order that has none yet, assigns its line and propagates pending_approval.
func (h FinalizeDraftCommandHandler) ensureManufacturing(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	actor kernel.UUID,
	schedules []*installation.Schedule,
) (*manufacturing.ManufacturingOrder, error) {
	mtype, ok := o.Type().ManufacturingType()
	if !ok {
		return nil, nil
	}
	repo := uow.ManufacturingOrderRepository()
	_, err := repo.GetByOrder(ctx, o.ID())
	switch {
	case err == nil:
		return nil, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	mo, err := manufacturing.NewManufacturingOrder(kernel.NewUUID(), o.ID(), mtype, o.BranchID(), actor)
	if err != nil {
		return nil, err
	}
	lines, err := uow.ProductionLineRepository().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if _, err = h.assigner.Assign(mo, lines); err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, mo); err != nil {
		return nil, err
	}

	if err = h.propagator.Apply(mo, "", o, schedules); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	installs := uow.InstallationRepository()
	for _, s := range schedules {
		if err = installs.Update(ctx, s); err != nil {
			return nil, err
		}
	}
	return mo, nil
}

// ensureDocumentJob records a contract document request unless the order already has one.
func (h FinalizeDraftCommandHandler) ensureDocumentJob(
	ctx context.Context,
	jobs ports.DocumentJobRepository,
	o *order.Order,
	actor kernel.UUID,
) (bool, error) {
	if !o.Type().RequiresContract() {
		return false, nil
	}
	_, err := jobs.Get(ctx, o.ID())
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return false, err
	}
	job, err := document.NewJob(o.ID(), actor)
	if err != nil {
		return false, err
	}
	if err = jobs.Add(ctx, job); err != nil {
		return false, err
	}
	return true, nil
}

func (h FinalizeDraftCommandHandler) afterCommit(ctx context.Context, actor kernel.UUID, result finalized) {
	if result.enqueueJob {
		h.documents.Enqueue(result.orderID, actor)
	}

	attrs := map[string]string{
		"order_type": result.orderType.String(),
		"edit_mode":  boolString(result.editMode),
	}
	if result.manufacturing != nil {
		attrs["manufacturing_order_id"] = result.manufacturing.ID().String()
		if line := result.manufacturing.ProductionLineID(); line != nil {
			attrs["production_line_id"] = line.String()
		}
	}
	notify(ctx, h.notifier, h.logger, ports.Event{
		Type:        ports.EventOrderFinalized,
		AggregateID: result.orderID,
		ActorID:     actor,
		Attributes:  attrs,
		At:          time.Now().UTC(),
	})
}
