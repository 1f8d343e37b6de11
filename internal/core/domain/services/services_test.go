package services_test

import (
	"testing"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/installation"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fabricItem(t *testing.T, quantity string) *draft.Item {
	t.Helper()
	item, err := draft.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.MustQuantity(quantity),
		decimal.NewFromInt(12), decimal.Zero, draft.ClassificationFabric, kernel.NewUUID())
	require.NoError(t, err)
	return item
}

func TestReservationValidator_CheckLine(t *testing.T) {
	validator := services.NewReservationValidator()
	item := fabricItem(t, "10")

	t.Run("fits exactly", func(t *testing.T) {
		require.NoError(t, validator.CheckLine(item, curtain.LineFabric, decimal.NewFromInt(6), kernel.MustQuantity("4")))
	})

	t.Run("over allocation reports what is available", func(t *testing.T) {
		err := validator.CheckLine(item, curtain.LineFabric, decimal.NewFromInt(6), kernel.MustQuantity("4.5"))

		require.ErrorIs(t, err, errs.ErrStateConflict)
		var over *errs.OverAllocationError
		require.ErrorAs(t, err, &over)
		assert.Equal(t, "4.5", over.Requested)
		assert.Equal(t, "4", over.Available)
	})

	t.Run("line kind must match item classification", func(t *testing.T) {
		err := validator.CheckLine(item, curtain.LineAccessory, decimal.Zero, kernel.MustQuantity("1"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

// Any sequence of accepted writes keeps the reservations within the item quantity.
func TestReservationValidator_SequenceNeverOverAllocates(t *testing.T) {
	validator := services.NewReservationValidator()
	item := fabricItem(t, "5")
	lines := map[int]decimal.Decimal{}

	reservedExcept := func(skip int) decimal.Decimal {
		sum := decimal.Zero
		for k, q := range lines {
			if k != skip {
				sum = sum.Add(q)
			}
		}
		return sum
	}

	writes := []struct {
		line     int
		quantity string
		accepted bool
	}{
		{1, "2", true},
		{2, "2", true},
		{3, "1.5", false},
		{3, "1", true},
		{1, "3", false},
		{1, "1", true},
		{3, "2", true},
	}
	for _, w := range writes {
		err := validator.CheckLine(item, curtain.LineFabric, reservedExcept(w.line), kernel.MustQuantity(w.quantity))
		if w.accepted {
			require.NoError(t, err, "line %d = %s", w.line, w.quantity)
			lines[w.line] = decimal.RequireFromString(w.quantity)
		} else {
			require.ErrorIs(t, err, errs.ErrStateConflict, "line %d = %s", w.line, w.quantity)
		}
		assert.True(t, reservedExcept(0).LessThanOrEqual(item.Quantity().Decimal()))
	}
}

func TestReservationValidator_CheckCapacity(t *testing.T) {
	validator := services.NewReservationValidator()
	item := fabricItem(t, "10")

	require.NoError(t, validator.CheckCapacity(item, kernel.MustQuantity("7"), decimal.NewFromInt(7)))
	require.ErrorIs(t, validator.CheckCapacity(item, kernel.MustQuantity("6.9"), decimal.NewFromInt(7)), errs.ErrStateConflict)
}

func newManufacturingOrder(t *testing.T, branch *kernel.UUID) *manufacturing.ManufacturingOrder {
	t.Helper()
	mo, err := manufacturing.NewManufacturingOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.ManufacturingCustom, branch, kernel.NewUUID())
	require.NoError(t, err)
	return mo
}

func newLine(t *testing.T, name string, priority int, active bool, branches ...kernel.UUID) *manufacturing.ProductionLine {
	t.Helper()
	l, err := manufacturing.NewProductionLine(kernel.NewUUID(), name, priority, active, branches)
	require.NoError(t, err)
	return l
}

func TestLineAssigner_Assign(t *testing.T) {
	branch := kernel.NewUUID()
	assigner := services.NewLineAssigner()

	t.Run("prefers the best line of the branch", func(t *testing.T) {
		global := newLine(t, "global", 100, true)
		low := newLine(t, "branch low", 1, true, branch)
		high := newLine(t, "branch high", 5, true, branch)
		inactive := newLine(t, "branch inactive", 50, false, branch)
		mo := newManufacturingOrder(t, &branch)

		got, err := assigner.Assign(mo, []*manufacturing.ProductionLine{global, low, inactive, high})

		require.NoError(t, err)
		assert.Equal(t, high.ID(), got.ID())
		assert.Equal(t, high.ID(), *mo.ProductionLineID())
	})

	t.Run("falls back to the best active line", func(t *testing.T) {
		other := kernel.NewUUID()
		a := newLine(t, "a", 3, true, other)
		b := newLine(t, "b", 7, true)
		c := newLine(t, "c", 9, false)
		mo := newManufacturingOrder(t, &branch)

		got, err := assigner.Assign(mo, []*manufacturing.ProductionLine{a, b, c})

		require.NoError(t, err)
		assert.Equal(t, b.ID(), got.ID())
	})

	t.Run("leaves the order unassigned without active lines", func(t *testing.T) {
		mo := newManufacturingOrder(t, nil)

		got, err := assigner.Assign(mo, []*manufacturing.ProductionLine{newLine(t, "off", 1, false)})

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Nil(t, mo.ProductionLineID())
	})

	t.Run("never reassigns", func(t *testing.T) {
		first := newLine(t, "first", 1, true)
		mo := newManufacturingOrder(t, &branch)
		_, err := assigner.Assign(mo, []*manufacturing.ProductionLine{first})
		require.NoError(t, err)

		got, err := assigner.Assign(mo, []*manufacturing.ProductionLine{newLine(t, "better", 10, true, branch)})

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, first.ID(), *mo.ProductionLineID())
	})
}

func installationOrder(t *testing.T) *order.Order {
	t.Helper()
	owner := kernel.NewUUID()
	d, err := draft.NewDraft(kernel.NewUUID(), owner, nil, nil)
	require.NoError(t, err)
	require.NoError(t, d.SetOrderType(owner, kernel.OrderTypeInstallation, "", "C-1"))
	require.NoError(t, d.AddItem(owner, fabricItem(t, "3")))
	o, err := order.NewOrderFromDraft(kernel.NewUUID(), d, owner)
	require.NoError(t, err)
	return o
}

func TestStatusPropagator_Apply(t *testing.T) {
	propagator := services.NewStatusPropagator()
	actor := kernel.NewUUID()

	o := installationOrder(t)
	mo, err := manufacturing.NewManufacturingOrder(kernel.NewUUID(), o.ID(), kernel.ManufacturingInstallation, nil, actor)
	require.NoError(t, err)
	schedule, err := installation.NewSchedule(kernel.NewUUID(), o.ID())
	require.NoError(t, err)
	bookedAt := mo.CreatedAt()
	booked, err := installation.RestoreSchedule(kernel.NewUUID(), o.ID(), &bookedAt, installation.Scheduled)
	require.NoError(t, err)
	schedules := []*installation.Schedule{schedule, booked}

	require.NoError(t, propagator.Apply(mo, "", o, schedules))
	assert.Equal(t, order.StatusPendingApproval, o.Status())
	assert.Equal(t, order.TrackingFactory, o.TrackingStatus())
	assert.Equal(t, installation.Scheduled, booked.Status())

	steps := []struct {
		to           manufacturing.Status
		tracking     order.TrackingStatus
		installation installation.Status
	}{
		{manufacturing.StatusPending, order.TrackingFactory, installation.NeedsScheduling},
		{manufacturing.StatusInProgress, order.TrackingFactory, installation.NeedsScheduling},
		{manufacturing.StatusReadyInstall, order.TrackingReady, installation.NeedsScheduling},
		{manufacturing.StatusDelivered, order.TrackingDelivered, installation.Completed},
	}
	for _, step := range steps {
		prev, moveErr := mo.TransitionTo(step.to, actor, false, "")
		require.NoError(t, moveErr)

		require.NoError(t, propagator.Apply(mo, prev, o, schedules))

		assert.Equal(t, services.OrderStatusFor(step.to), o.Status())
		assert.Equal(t, step.tracking, o.TrackingStatus())
		assert.Equal(t, step.installation, o.InstallationStatus())
		assert.Equal(t, step.installation, schedule.Status())
		if step.installation == installation.NeedsScheduling {
			assert.Equal(t, installation.Scheduled, booked.Status())
		}
	}
	assert.Equal(t, installation.Completed, booked.Status())
}

func TestStatusPropagator_RejectionCancelsInstallation(t *testing.T) {
	o := installationOrder(t)
	actor := kernel.NewUUID()
	mo, err := manufacturing.NewManufacturingOrder(kernel.NewUUID(), o.ID(), kernel.ManufacturingInstallation, nil, actor)
	require.NoError(t, err)
	schedule, err := installation.NewSchedule(kernel.NewUUID(), o.ID())
	require.NoError(t, err)

	prev, err := mo.Reject(kernel.NewUUID(), "no stock", actor)
	require.NoError(t, err)
	require.NoError(t, services.NewStatusPropagator().Apply(mo, prev, o, []*installation.Schedule{schedule}))

	assert.Equal(t, order.StatusRejected, o.Status())
	assert.Equal(t, order.TrackingFactory, o.TrackingStatus())
	assert.Equal(t, installation.Cancelled, o.InstallationStatus())
	assert.Equal(t, installation.Cancelled, schedule.Status())
}

func TestStatusPropagator_RejectsForeignOrder(t *testing.T) {
	o := installationOrder(t)
	mo := newManufacturingOrder(t, nil)

	err := services.NewStatusPropagator().Apply(mo, "", o, nil)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTrackingStatusFor(t *testing.T) {
	want := map[manufacturing.Status]order.TrackingStatus{
		manufacturing.StatusPendingApproval: order.TrackingFactory,
		manufacturing.StatusPending:         order.TrackingFactory,
		manufacturing.StatusInProgress:      order.TrackingFactory,
		manufacturing.StatusRejected:        order.TrackingFactory,
		manufacturing.StatusCancelled:       order.TrackingFactory,
		manufacturing.StatusReadyInstall:    order.TrackingReady,
		manufacturing.StatusCompleted:       order.TrackingReady,
		manufacturing.StatusDelivered:       order.TrackingDelivered,
	}
	for status, tracking := range want {
		assert.Equal(t, tracking, services.TrackingStatusFor(status), status)
		require.NoError(t, services.OrderStatusFor(status).Validate())
	}
}
