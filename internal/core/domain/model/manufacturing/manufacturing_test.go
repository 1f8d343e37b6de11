package manufacturing_test

import (
	"testing"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     manufacturing.Status
		to       manufacturing.Status
		mtype    kernel.ManufacturingType
		override bool
		wantErr  bool
	}{
		{"approve", manufacturing.StatusPendingApproval, manufacturing.StatusPending, kernel.ManufacturingCustom, false, false},
		{"cancel before approval", manufacturing.StatusPendingApproval, manufacturing.StatusCancelled, kernel.ManufacturingCustom, false, false},
		{"start", manufacturing.StatusPending, manufacturing.StatusInProgress, kernel.ManufacturingCustom, false, false},
		{"skip start", manufacturing.StatusPending, manufacturing.StatusCompleted, kernel.ManufacturingCustom, false, true},
		{"installation ready", manufacturing.StatusInProgress, manufacturing.StatusReadyInstall, kernel.ManufacturingInstallation, false, false},
		{"custom ready", manufacturing.StatusInProgress, manufacturing.StatusReadyInstall, kernel.ManufacturingCustom, false, true},
		{"custom completed", manufacturing.StatusInProgress, manufacturing.StatusCompleted, kernel.ManufacturingCustom, false, false},
		{"accessory completed", manufacturing.StatusInProgress, manufacturing.StatusCompleted, kernel.ManufacturingAccessory, false, false},
		{"installation completed", manufacturing.StatusInProgress, manufacturing.StatusCompleted, kernel.ManufacturingInstallation, false, true},
		{"installation completed with override", manufacturing.StatusInProgress, manufacturing.StatusCompleted, kernel.ManufacturingInstallation, true, true},
		{"deliver installation", manufacturing.StatusReadyInstall, manufacturing.StatusDelivered, kernel.ManufacturingInstallation, false, false},
		{"deliver custom", manufacturing.StatusCompleted, manufacturing.StatusDelivered, kernel.ManufacturingCustom, false, false},
		{"backward", manufacturing.StatusInProgress, manufacturing.StatusPending, kernel.ManufacturingCustom, false, true},
		{"backward with override", manufacturing.StatusInProgress, manufacturing.StatusPending, kernel.ManufacturingCustom, true, false},
		{"leave delivered", manufacturing.StatusDelivered, manufacturing.StatusInProgress, kernel.ManufacturingCustom, false, true},
		{"leave delivered with override", manufacturing.StatusDelivered, manufacturing.StatusInProgress, kernel.ManufacturingCustom, true, false},
		{"leave cancelled with override", manufacturing.StatusCancelled, manufacturing.StatusPending, kernel.ManufacturingCustom, true, false},
		{"cancel after completion", manufacturing.StatusCompleted, manufacturing.StatusCancelled, kernel.ManufacturingCustom, true, true},
		{"reject after ready", manufacturing.StatusReadyInstall, manufacturing.StatusRejected, kernel.ManufacturingInstallation, true, true},
		{"same status", manufacturing.StatusPending, manufacturing.StatusPending, kernel.ManufacturingCustom, true, true},
		{"cancel in progress", manufacturing.StatusInProgress, manufacturing.StatusCancelled, kernel.ManufacturingCustom, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manufacturing.CheckTransition(tt.from, tt.to, tt.mtype, tt.override)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrStateConflict)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRequiredCapability(t *testing.T) {
	assert.Equal(t, manufacturing.CapabilityApprove, manufacturing.RequiredCapability(manufacturing.StatusPendingApproval))
	assert.Equal(t, manufacturing.CapabilityApprove, manufacturing.RequiredCapability(manufacturing.StatusRejected))
	assert.Equal(t, manufacturing.CapabilityProgress, manufacturing.RequiredCapability(manufacturing.StatusPending))
	assert.Equal(t, manufacturing.CapabilityProgress, manufacturing.RequiredCapability(manufacturing.StatusInProgress))
	assert.Equal(t, manufacturing.CapabilityOverride, manufacturing.RequiredCapability(manufacturing.StatusDelivered))
}

func newOrder(t *testing.T, mtype kernel.ManufacturingType) (*manufacturing.ManufacturingOrder, kernel.UUID) {
	t.Helper()
	actor := kernel.NewUUID()
	mo, err := manufacturing.NewManufacturingOrder(kernel.NewUUID(), kernel.NewUUID(), mtype, nil, actor)
	require.NoError(t, err)
	return mo, actor
}

func TestNewManufacturingOrder(t *testing.T) {
	mo, actor := newOrder(t, kernel.ManufacturingCustom)

	assert.Equal(t, manufacturing.StatusPendingApproval, mo.Status())
	assert.Nil(t, mo.ProductionLineID())
	require.Len(t, mo.Changes(), 1)
	assert.Equal(t, actor, mo.Changes()[0].ActorID)

	_, err := manufacturing.NewManufacturingOrder(kernel.NewUUID(), kernel.NewUUID(), "bespoke", nil, actor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestManufacturingOrder_TransitionTo(t *testing.T) {
	mo, actor := newOrder(t, kernel.ManufacturingInstallation)

	for _, to := range []manufacturing.Status{
		manufacturing.StatusPending,
		manufacturing.StatusInProgress,
		manufacturing.StatusReadyInstall,
		manufacturing.StatusDelivered,
	} {
		prev := mo.Status()
		got, err := mo.TransitionTo(to, actor, false, "")
		require.NoError(t, err)
		assert.Equal(t, prev, got)
		assert.Equal(t, to, mo.Status())
	}
	assert.Len(t, mo.Changes(), 5)

	_, err := mo.TransitionTo(manufacturing.StatusInProgress, actor, false, "")
	require.ErrorIs(t, err, errs.ErrStateConflict)
	assert.Equal(t, manufacturing.StatusDelivered, mo.Status())

	t.Run("rejection needs a reason", func(t *testing.T) {
		fresh, freshActor := newOrder(t, kernel.ManufacturingCustom)
		_, rejectErr := fresh.TransitionTo(manufacturing.StatusRejected, freshActor, false, "")
		require.ErrorIs(t, rejectErr, errs.ErrValueIsRequired)
	})
}

func TestManufacturingOrder_RejectionWorkflow(t *testing.T) {
	mo, actor := newOrder(t, kernel.ManufacturingCustom)
	rejectionID := kernel.NewUUID()

	t.Run("empty reason", func(t *testing.T) {
		_, err := mo.Reject(kernel.NewUUID(), "   ", actor)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Empty(t, mo.Rejections())
	})

	prev, err := mo.Reject(rejectionID, "fabric out of stock", actor)
	require.NoError(t, err)
	assert.Equal(t, manufacturing.StatusPendingApproval, prev)
	assert.Equal(t, manufacturing.StatusRejected, mo.Status())

	salesperson := kernel.NewUUID()
	require.NoError(t, mo.Reply(rejectionID, "switched to another fabric", salesperson))
	require.ErrorIs(t, mo.Reply(rejectionID, "again", salesperson), errs.ErrStateConflict)

	prev, err = mo.Approve(actor, "")
	require.NoError(t, err)
	assert.Equal(t, manufacturing.StatusRejected, prev)
	assert.Equal(t, manufacturing.StatusPending, mo.Status())

	require.ErrorIs(t, mo.Reply(rejectionID, "late", salesperson), errs.ErrStateConflict)

	rejections := mo.Rejections()
	require.Len(t, rejections, 1)
	assert.Equal(t, manufacturing.StatusPendingApproval, rejections[0].PreviousStatus)
	assert.Equal(t, "switched to another fabric", rejections[0].Reply)
	assert.Equal(t, salesperson, *rejections[0].RepliedBy)

	last := mo.Changes()[len(mo.Changes())-1]
	assert.Equal(t, manufacturing.StatusRejected, last.From)
	assert.Equal(t, manufacturing.StatusPending, last.To)

	t.Run("mark reply read", func(t *testing.T) {
		require.NoError(t, mo.MarkReplyRead(rejectionID))
		assert.True(t, mo.Rejections()[0].ReplyRead)
		require.ErrorIs(t, mo.MarkReplyRead(kernel.NewUUID()), errs.ErrObjectNotFound)
	})

	t.Run("only the latest rejection accepts a reply", func(t *testing.T) {
		second := kernel.NewUUID()
		_, rejectErr := mo.Reject(second, "wrong measurements", actor)
		require.NoError(t, rejectErr)
		assert.Equal(t, manufacturing.StatusPending, mo.Rejections()[1].PreviousStatus)

		require.ErrorIs(t, mo.Reply(rejectionID, "old", actor), errs.ErrStateConflict)
		require.NoError(t, mo.Reply(second, "fixed", actor))
	})

	t.Run("reject only from pending states", func(t *testing.T) {
		_, approveErr := mo.Approve(actor, "")
		require.NoError(t, approveErr)
		_, moveErr := mo.TransitionTo(manufacturing.StatusInProgress, actor, false, "")
		require.NoError(t, moveErr)

		_, rejectErr := mo.Reject(kernel.NewUUID(), "late", actor)
		require.ErrorIs(t, rejectErr, errs.ErrStateConflict)
	})
}

func TestManufacturingOrder_AssignLine(t *testing.T) {
	mo, _ := newOrder(t, kernel.ManufacturingAccessory)
	line := kernel.NewUUID()

	require.NoError(t, mo.AssignLine(line))
	require.ErrorIs(t, mo.AssignLine(kernel.NewUUID()), errs.ErrStateConflict)
	assert.Equal(t, line, *mo.ProductionLineID())
}

func TestProductionLine_Serves(t *testing.T) {
	branch := kernel.NewUUID()
	line, err := manufacturing.NewProductionLine(kernel.NewUUID(), "sewing", 10, true, []kernel.UUID{branch})
	require.NoError(t, err)

	assert.True(t, line.Serves(&branch))
	other := kernel.NewUUID()
	assert.False(t, line.Serves(&other))
	assert.False(t, line.Serves(nil))

	_, err = manufacturing.NewProductionLine(kernel.NewUUID(), " ", 1, true, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
