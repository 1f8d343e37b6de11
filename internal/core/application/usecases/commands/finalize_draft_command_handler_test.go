package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var readyPaid = decimal.NewFromInt(10)

// readyDraftWithCurtain stores an installation draft whose only curtain
// consumes quantity of item.
func readyDraftWithCurtain(t *testing.T, uow *MockUoW, owner kernel.UUID, item *draft.Item, quantity string) *draft.Draft {
	t.Helper()
	d := readyDraft(t, owner, kernel.OrderTypeInstallation, item)
	c := newCurtain(t, curtain.DraftOwner(d.ID()), 1)
	line, err := curtain.NewLine(kernel.NewUUID(), curtain.LineFabric, curtain.DraftItemRef(item.ID()), kernel.MustQuantity(quantity), "main fabric")
	require.NoError(t, err)
	require.NoError(t, c.AddLine(line))
	uow.drafts.items[d.ID()] = d
	uow.curtains.items[c.ID()] = c
	return d
}

type finalizeDeps struct {
	identity *stubIdentity
	locker   *fakeLocker
	queue    *recordingQueue
	notifier *recordingNotifier
}

func newFinalizeDeps() finalizeDeps {
	return finalizeDeps{
		identity: newStubIdentity(),
		locker:   newFakeLocker(),
		queue:    &recordingQueue{},
		notifier: &recordingNotifier{},
	}
}

func (d finalizeDeps) handler(uow *MockUoW) (commands.FinalizeDraftCommandHandler, *MockUoWFactory) {
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)
	return commands.NewFinalizeDraftCommandHandler(factory, d.identity, d.locker, d.queue, d.notifier, zap.NewNop()), factory
}

// finalizeInto finalizes d in create mode and returns the order id.
func finalizeInto(t *testing.T, uow *MockUoW, d *draft.Draft, actor kernel.UUID) kernel.UUID {
	t.Helper()
	h, _ := newFinalizeDeps().handler(uow)
	cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), actor)
	require.NoError(t, err)
	id, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return id
}

func TestFinalizeDraftCommandHandler_Handle_CreateMode(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	uow := newMockUoW().expectTx(ctx)
	fabric := newItem(t, owner, draft.ClassificationFabric, "6")
	d := readyDraftWithCurtain(t, uow, owner, fabric, "4")
	global, err := manufacturing.NewProductionLine(kernel.NewUUID(), "global", 5, true, nil)
	require.NoError(t, err)
	uow.lines.items = append(uow.lines.items, global)

	deps := newFinalizeDeps()
	h, _ := deps.handler(uow)
	cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
	require.NoError(t, err)

	orderID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), orderID)

	o := uow.orders.items[orderID]
	require.NotNil(t, o)
	require.Len(t, o.Items(), 1)
	assert.Equal(t, fabric.ID(), o.Items()[0].ID())
	assert.Equal(t, order.StatusPendingApproval, o.Status())
	assert.Equal(t, order.TrackingFactory, o.TrackingStatus())
	assert.Equal(t, installation.NeedsScheduling, o.InstallationStatus())

	assert.Zero(t, uow.curtains.lineCount(curtain.DraftOwner(d.ID())))
	moved, err := uow.curtains.ListByOwner(ctx, curtain.OrderOwner(orderID))
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.True(t, moved[0].Lines()[0].ItemRef().IsEqual(curtain.OrderItemRef(fabric.ID())))

	require.Len(t, uow.payments.items, 1)
	assert.True(t, uow.payments.items[0].Amount().Equal(readyPaid))

	mo, err := uow.mos.GetByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, manufacturing.StatusPendingApproval, mo.Status())
	assert.Equal(t, kernel.ManufacturingInstallation, mo.Type())
	require.NotNil(t, mo.ProductionLineID())
	assert.Equal(t, global.ID(), *mo.ProductionLineID())

	schedules, err := uow.installs.ListByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, installation.NeedsScheduling, schedules[0].Status())

	assert.Contains(t, uow.jobs.items, orderID)
	assert.Equal(t, []kernel.UUID{orderID}, deps.queue.orders)
	require.Len(t, deps.notifier.events, 1)
	assert.Equal(t, ports.EventOrderFinalized, deps.notifier.events[0].Type)
	assert.Equal(t, mo.ID().String(), deps.notifier.events[0].Attributes["manufacturing_order_id"])

	assert.True(t, d.IsCompleted())
	assert.Equal(t, orderID, *d.FinalOrderID())
	assert.Empty(t, deps.locker.held)

	t.Run("a second finalization conflicts", func(t *testing.T) {
		again, cmdErr := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
		require.NoError(t, cmdErr)

		_, err = h.Handle(ctx, again)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Len(t, uow.orders.items, 1)
	})
}

func TestFinalizeDraftCommandHandler_Handle_ProductsOrder(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	uow := newMockUoW().expectTx(ctx)
	d := readyDraft(t, owner, kernel.OrderTypeProducts, newItem(t, owner, draft.ClassificationProduct, "2"))
	uow.drafts.items[d.ID()] = d
	deps := newFinalizeDeps()
	h, _ := deps.handler(uow)
	cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
	require.NoError(t, err)

	orderID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	o := uow.orders.items[orderID]
	assert.Equal(t, order.StatusNew, o.Status())
	assert.Equal(t, order.TrackingNone, o.TrackingStatus())
	assert.Empty(t, o.InstallationStatus())
	assert.Empty(t, uow.mos.items)
	assert.Empty(t, uow.installs.items)
	assert.Empty(t, uow.jobs.items)
	assert.Empty(t, deps.queue.orders)
	assert.Len(t, uow.payments.items, 1)
}

func TestFinalizeDraftCommandHandler_Handle_Preconditions(t *testing.T) {
	owner := kernel.NewUUID()

	t.Run("incomplete wizard lists missing steps", func(t *testing.T) {
		uow := newMockUoW().expectTx(t.Context())
		d, err := draft.NewDraft(kernel.NewUUID(), owner, nil, nil)
		require.NoError(t, err)
		uow.drafts.items[d.ID()] = d
		h, _ := newFinalizeDeps().handler(uow)
		cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		var incomplete *errs.IncompleteWizardError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, []int{1, 2, 3, 4}, incomplete.MissingSteps)
		assert.Empty(t, uow.orders.items)
	})

	t.Run("items step missing", func(t *testing.T) {
		uow := newMockUoW().expectTx(t.Context())
		customer, branch := kernel.NewUUID(), kernel.NewUUID()
		d, err := draft.RestoreDraft(draft.RestoreParams{
			ID:             kernel.NewUUID(),
			OwnerID:        owner,
			CurrentStep:    draft.StepPayment,
			CompletedSteps: []int{draft.StepBasicInfo, draft.StepOrderType, draft.StepPayment},
			SelectedType:   kernel.OrderTypeProducts,
			CustomerID:     &customer,
			BranchID:       &branch,
			Items:          []*draft.Item{newItem(t, owner, draft.ClassificationProduct, "1")},
		})
		require.NoError(t, err)
		uow.drafts.items[d.ID()] = d
		h, _ := newFinalizeDeps().handler(uow)
		cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		var incomplete *errs.IncompleteWizardError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, []int{draft.StepItems}, incomplete.MissingSteps)
		assert.Empty(t, uow.orders.items)
		assert.Empty(t, uow.payments.items)
	})

	t.Run("paid amount above total after item removal", func(t *testing.T) {
		uow := newMockUoW().expectTx(t.Context())
		kept := newItem(t, owner, draft.ClassificationProduct, "1")
		dropped := newItem(t, owner, draft.ClassificationProduct, "1")
		d := readyDraft(t, owner, kernel.OrderTypeProducts, kept, dropped)
		require.NoError(t, d.SetPayment(owner, draft.Payment{Method: draft.PaymentCash, PaidAmount: decimal.NewFromInt(35)}))
		require.NoError(t, d.RemoveItem(owner, dropped.ID()))
		uow.drafts.items[d.ID()] = d
		deps := newFinalizeDeps()
		h, _ := deps.handler(uow)
		cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		var invalid *errs.ValidationError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Fields, "paid_amount")
		assert.Empty(t, uow.orders.items)
		assert.Empty(t, uow.payments.items)
		assert.False(t, d.IsCompleted())
		assert.Empty(t, deps.notifier.events)
	})

	t.Run("no items", func(t *testing.T) {
		uow := newMockUoW().expectTx(t.Context())
		item := newItem(t, owner, draft.ClassificationProduct, "1")
		d := readyDraft(t, owner, kernel.OrderTypeProducts, item)
		require.NoError(t, d.RemoveItem(owner, item.ID()))
		uow.drafts.items[d.ID()] = d
		h, _ := newFinalizeDeps().handler(uow)
		cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrEmptyOrder)
		assert.Empty(t, uow.orders.items)
	})

	t.Run("stranger", func(t *testing.T) {
		uow := newMockUoW().expectTx(t.Context())
		d := readyDraft(t, owner, kernel.OrderTypeProducts, newItem(t, owner, draft.ClassificationProduct, "1"))
		uow.drafts.items[d.ID()] = d
		h, _ := newFinalizeDeps().handler(uow)
		cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrAuthorization)
	})

	t.Run("finalization already running", func(t *testing.T) {
		uow := newMockUoW()
		d := readyDraft(t, owner, kernel.OrderTypeProducts, newItem(t, owner, draft.ClassificationProduct, "1"))
		uow.drafts.items[d.ID()] = d
		deps := newFinalizeDeps()
		deps.locker.held["finalize:"+d.ID().String()] = true
		h, factory := deps.handler(uow)
		cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		var conflict *errs.StateConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "finalization in progress", conflict.Current)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestFinalizeDraftCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(errBoom).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	d := readyDraft(t, owner, kernel.OrderTypeInstallation, newItem(t, owner, draft.ClassificationFabric, "1"))
	uow.drafts.items[d.ID()] = d
	deps := newFinalizeDeps()
	h, _ := deps.handler(uow)
	cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, deps.queue.orders)
	assert.Empty(t, deps.notifier.events)
	assert.Empty(t, deps.locker.held)
	uow.AssertExpectations(t)
}

func TestFinalizeDraftCommandHandler_Handle_NotifierFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	uow := newMockUoW().expectTx(ctx)
	d := readyDraft(t, owner, kernel.OrderTypeProducts, newItem(t, owner, draft.ClassificationProduct, "1"))
	uow.drafts.items[d.ID()] = d
	deps := newFinalizeDeps()
	deps.notifier.err = errBoom
	h, _ := deps.handler(uow)
	cmd, err := commands.NewFinalizeDraftCommand(d.ID(), kernel.NewUUID(), owner)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Len(t, deps.notifier.events, 1)
}

func TestFinalizeDraftCommandHandler_Handle_EditMode(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	uow := newMockUoW().expectTx(ctx)
	fabric := newItem(t, owner, draft.ClassificationFabric, "6")
	orderID := finalizeInto(t, uow, readyDraftWithCurtain(t, uow, owner, fabric, "4"), owner)

	startFactory := new(MockUoWFactory)
	startFactory.On("Create").Return(uow).Once()
	start, err := commands.NewStartOrderEditCommand(kernel.NewUUID(), orderID, owner)
	require.NoError(t, err)
	require.NoError(t, commands.NewStartOrderEditCommandHandler(startFactory, newStubIdentity(), newFakeLocker(), 5).Handle(ctx, start))

	edit := uow.drafts.items[start.DraftID()]
	extra := newItem(t, owner, draft.ClassificationProduct, "1")
	require.NoError(t, edit.AddItem(owner, extra))
	require.NoError(t, edit.SetPayment(owner, draft.Payment{Method: draft.PaymentCash, PaidAmount: decimal.NewFromInt(30)}))

	deps := newFinalizeDeps()
	h, _ := deps.handler(uow)
	cmd, err := commands.NewFinalizeDraftCommand(edit.ID(), kernel.NewUUID(), owner)
	require.NoError(t, err)

	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, orderID, got, "edit mode keeps the order id")
	assert.Len(t, uow.orders.items, 1)

	o := uow.orders.items[orderID]
	require.Len(t, o.Items(), 2)
	for i, item := range edit.Items() {
		assert.Equal(t, item.ID(), o.Items()[i].ID())
	}
	assert.Equal(t, order.StatusPendingApproval, o.Status(), "edit keeps the manufacturing driven status")

	require.Len(t, uow.payments.items, 1)
	assert.True(t, uow.payments.items[0].Amount().Equal(decimal.NewFromInt(30)))

	curtains, err := uow.curtains.ListByOwner(ctx, curtain.OrderOwner(orderID))
	require.NoError(t, err)
	require.Len(t, curtains, 1)
	require.Len(t, curtains[0].Lines(), 1)
	assert.True(t, curtains[0].Lines()[0].ItemRef().IsEqual(curtain.OrderItemRef(edit.Items()[0].ID())))

	assert.Len(t, uow.mos.items, 1, "an existing manufacturing order is kept")
	assert.Len(t, uow.installs.items, 1)
	assert.Empty(t, deps.queue.orders, "a document job already exists")
	assert.Equal(t, "true", deps.notifier.events[0].Attributes["edit_mode"])
}

func TestFinalizeDraftCommandHandler_Handle_ValidationError(t *testing.T) {
	h, factory := newFinalizeDeps().handler(newMockUoW())

	_, err := h.Handle(t.Context(), commands.FinalizeDraftCommand{})

	require.ErrorIs(t, err, commands.ErrFinalizeDraftCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
