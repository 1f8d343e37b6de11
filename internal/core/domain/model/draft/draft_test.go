package draft_test

import (
	"math/rand/v2"
	"testing"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T) (*draft.Draft, kernel.UUID) {
	t.Helper()
	owner := kernel.NewUUID()
	d, err := draft.NewDraft(kernel.NewUUID(), owner, nil, nil)
	require.NoError(t, err)
	return d, owner
}

func newItem(t *testing.T, actor kernel.UUID, qty, price, discount string) *draft.Item {
	t.Helper()
	item, err := draft.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.MustQuantity(qty),
		decimal.RequireFromString(price), decimal.RequireFromString(discount),
		draft.ClassificationFabric, actor,
	)
	require.NoError(t, err)
	return item
}

func restoreWithSteps(t *testing.T, orderType kernel.OrderType, steps []int) *draft.Draft {
	t.Helper()
	d, err := draft.RestoreDraft(draft.RestoreParams{
		ID:             kernel.NewUUID(),
		OwnerID:        kernel.NewUUID(),
		CurrentStep:    1,
		CompletedSteps: steps,
		SelectedType:   orderType,
	})
	require.NoError(t, err)
	return d
}

func TestNewDraft(t *testing.T) {
	t.Run("starts at step one with a creation entry", func(t *testing.T) {
		d, owner := newDraft(t)

		require.NoError(t, d.Validate())
		assert.Equal(t, draft.StepBasicInfo, d.CurrentStep())
		assert.Empty(t, d.CompletedSteps())
		require.Len(t, d.History(), 1)
		assert.Equal(t, draft.ActionCreated, d.History()[0].Action)
		assert.True(t, d.History()[0].ActorID.IsEqual(owner))
	})

	t.Run("requires ids", func(t *testing.T) {
		_, err := draft.NewDraft(kernel.UUID{}, kernel.UUID{}, nil, nil)
		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var d draft.Draft
		require.ErrorIs(t, d.Validate(), draft.ErrDraftIsNotConstructed)
	})
}

func TestMapLogicalToPhysical(t *testing.T) {
	tests := []struct {
		name         string
		orderType    kernel.OrderType
		logical      int
		physical     int
		redirected   bool
		expectScreen draft.Screen
	}{
		{"installation keeps contract", kernel.OrderTypeInstallation, 5, 5, false, draft.ScreenContract},
		{"installation review is six", kernel.OrderTypeInstallation, 6, 6, false, draft.ScreenReview},
		{"products review redirects to five", kernel.OrderTypeProducts, 6, 5, true, draft.ScreenReview},
		{"products step five is review", kernel.OrderTypeProducts, 5, 5, false, draft.ScreenReview},
		{"inspection step three is items", kernel.OrderTypeInspection, 3, 3, false, draft.ScreenItems},
		{"delivery step one", kernel.OrderTypeDelivery, 1, 1, false, draft.ScreenBasicInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := restoreWithSteps(t, tt.orderType, nil)

			physical, redirected, err := draft.MapLogicalToPhysical(d, tt.logical)
			require.NoError(t, err)
			assert.Equal(t, tt.physical, physical)
			assert.Equal(t, tt.redirected, redirected)

			screen, err := draft.ScreenAt(d, physical)
			require.NoError(t, err)
			assert.Equal(t, tt.expectScreen, screen)
		})
	}

	t.Run("rejects steps outside the wizard", func(t *testing.T) {
		d := restoreWithSteps(t, kernel.OrderTypeProducts, nil)
		for _, n := range []int{0, 7, -1} {
			_, _, err := draft.MapLogicalToPhysical(d, n)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("products has no step six", func(t *testing.T) {
		d := restoreWithSteps(t, kernel.OrderTypeProducts, nil)
		_, err := draft.ScreenAt(d, 6)
		require.Error(t, err)

		_, ok := draft.PhysicalStepOf(d, draft.ScreenContract)
		assert.False(t, ok)
		n, ok := draft.PhysicalStepOf(d, draft.ScreenReview)
		assert.True(t, ok)
		assert.Equal(t, 5, n)
	})
}

func TestCanAccessStep_RandomSubsets(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	types := []kernel.OrderType{kernel.OrderTypeInstallation, kernel.OrderTypeProducts}

	for range 500 {
		orderType := types[rng.IntN(len(types))]
		var steps []int
		for n := 1; n <= 6; n++ {
			if rng.IntN(2) == 0 {
				steps = append(steps, n)
			}
		}
		d := restoreWithSteps(t, orderType, steps)
		completed := map[int]bool{}
		for _, n := range steps {
			completed[n] = true
		}

		for n := 1; n <= d.StepCount(); n++ {
			want := true
			for prev := 1; prev < n; prev++ {
				want = want && completed[prev]
			}
			assert.Equal(t, want, draft.CanAccessStep(d, n), "type %s steps %v step %d", orderType, steps, n)
		}
		assert.False(t, draft.CanAccessStep(d, d.StepCount()+1))
	}
}

func TestMarkStepComplete(t *testing.T) {
	t.Run("advances current step", func(t *testing.T) {
		d, _ := newDraft(t)

		require.NoError(t, d.MarkStepComplete(1))

		assert.Equal(t, []int{1}, d.CompletedSteps())
		assert.Equal(t, 2, d.CurrentStep())
		assert.True(t, draft.CanAccessStep(d, 2))
		assert.False(t, draft.CanAccessStep(d, 3))
	})

	t.Run("refuses inaccessible steps", func(t *testing.T) {
		d, _ := newDraft(t)

		err := d.MarkStepComplete(3)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Empty(t, d.CompletedSteps())
	})

	t.Run("resubmission keeps the set", func(t *testing.T) {
		d, _ := newDraft(t)
		require.NoError(t, d.MarkStepComplete(1))
		require.NoError(t, d.MarkStepComplete(2))
		require.NoError(t, d.MarkStepComplete(1))

		assert.Equal(t, []int{1, 2}, d.CompletedSteps())
	})

	t.Run("last step clamps current", func(t *testing.T) {
		d := restoreWithSteps(t, kernel.OrderTypeProducts, []int{1, 2, 3, 4})

		require.NoError(t, d.MarkStepComplete(5))
		assert.Equal(t, 5, d.CurrentStep())
	})
}

func TestSetOrderType(t *testing.T) {
	t.Run("contract number required for contract types", func(t *testing.T) {
		d, owner := newDraft(t)

		err := d.SetOrderType(owner, kernel.OrderTypeInstallation, "INV-1", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Empty(t, d.SelectedType())
	})

	t.Run("flipping the contract requirement drops late steps", func(t *testing.T) {
		d, err := draft.RestoreDraft(draft.RestoreParams{
			ID:             kernel.NewUUID(),
			OwnerID:        kernel.NewUUID(),
			CurrentStep:    6,
			CompletedSteps: []int{1, 2, 3, 4, 5},
			SelectedType:   kernel.OrderTypeInstallation,
		})
		require.NoError(t, err)

		require.NoError(t, d.SetOrderType(d.OwnerID(), kernel.OrderTypeProducts, "INV-1", ""))

		assert.Equal(t, []int{1, 2, 3, 4}, d.CompletedSteps())
		assert.Equal(t, 5, d.CurrentStep())
		assert.Empty(t, d.ContractNumber())
	})

	t.Run("same requirement keeps steps", func(t *testing.T) {
		d := restoreWithSteps(t, kernel.OrderTypeInstallation, []int{1, 2, 3, 4, 5})

		require.NoError(t, d.SetOrderType(d.OwnerID(), kernel.OrderTypeDelivery, "", "C-9"))

		assert.Equal(t, []int{1, 2, 3, 4, 5}, d.CompletedSteps())
	})
}

func TestItemsAndTotals(t *testing.T) {
	d, owner := newDraft(t)
	first := newItem(t, owner, "2", "10.00", "10")
	second := newItem(t, owner, "1.5", "20.00", "0")

	require.NoError(t, d.AddItem(owner, first))
	require.NoError(t, d.AddItem(owner, second))

	totals := d.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("50")), totals.Subtotal.String())
	assert.True(t, totals.Discount.Equal(decimal.RequireFromString("2")), totals.Discount.String())
	assert.True(t, totals.Final.Equal(decimal.RequireFromString("48")), totals.Final.String())

	t.Run("update invalidates the cache", func(t *testing.T) {
		require.NoError(t, d.UpdateItem(owner, second.ID(), kernel.MustQuantity("3"), decimal.RequireFromString("20"), decimal.Zero))

		assert.True(t, d.Totals().Final.Equal(decimal.RequireFromString("78")), d.Totals().Final.String())
	})

	t.Run("remove invalidates the cache", func(t *testing.T) {
		require.NoError(t, d.RemoveItem(owner, second.ID()))

		assert.True(t, d.Totals().Final.Equal(decimal.RequireFromString("18")))
		_, err := d.Item(second.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		require.Error(t, d.AddItem(owner, first))
	})

	t.Run("discount must be a percentage", func(t *testing.T) {
		_, err := draft.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.MustQuantity("1"),
			decimal.NewFromInt(5), decimal.NewFromInt(101), draft.ClassificationProduct, owner)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestSetPayment(t *testing.T) {
	d, owner := newDraft(t)
	require.NoError(t, d.AddItem(owner, newItem(t, owner, "1", "100", "0")))

	t.Run("paid amount cannot exceed the final total", func(t *testing.T) {
		err := d.SetPayment(owner, draft.Payment{Method: draft.PaymentCash, PaidAmount: decimal.NewFromInt(101)})

		ve, ok := errs.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "paid_amount")
	})

	t.Run("non cash methods need a reference", func(t *testing.T) {
		err := d.SetPayment(owner, draft.Payment{Method: draft.PaymentCard, PaidAmount: decimal.NewFromInt(10)})

		ve, ok := errs.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "reference")
	})

	t.Run("valid payment is stored", func(t *testing.T) {
		p := draft.Payment{Method: draft.PaymentBankTransfer, PaidAmount: decimal.NewFromInt(40), Reference: "TRX-1"}

		require.NoError(t, d.SetPayment(owner, p))
		assert.Equal(t, p, d.Payment())
	})

	t.Run("saved payment is rechecked after the total drops", func(t *testing.T) {
		cheap := newItem(t, owner, "1", "10", "0")
		require.NoError(t, d.AddItem(owner, cheap))
		require.NoError(t, d.SetPayment(owner, draft.Payment{Method: draft.PaymentCash, PaidAmount: decimal.NewFromInt(105)}))
		require.NoError(t, d.ValidatePayment())

		require.NoError(t, d.RemoveItem(owner, cheap.ID()))

		require.ErrorIs(t, d.ValidatePayment(), errs.ErrValueIsOutOfRange)
	})
}

func TestHistory_OnBehalfOf(t *testing.T) {
	d, owner := newDraft(t)
	manager := kernel.NewUUID()
	customer, branch := kernel.NewUUID(), kernel.NewUUID()

	require.NoError(t, d.SetBasicInfo(manager, draft.BasicInfo{CustomerID: &customer, BranchID: &branch}))

	history := d.History()
	last := history[len(history)-1]
	assert.Equal(t, draft.ActionBasicInfoSaved, last.Action)
	assert.True(t, last.ActorID.IsEqual(manager))
	assert.Equal(t, owner.String(), last.Detail[draft.DetailOnBehalfOf])
}

func TestBasicInfo_FieldErrors(t *testing.T) {
	d, owner := newDraft(t)

	err := d.SetBasicInfo(owner, draft.BasicInfo{})

	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "customer_id")
	assert.Contains(t, ve.Fields, "branch_id")
}

func TestMarkCompleted(t *testing.T) {
	d, owner := newDraft(t)
	orderID := kernel.NewUUID()

	require.NoError(t, d.MarkCompleted(owner, orderID))

	assert.True(t, d.IsCompleted())
	assert.True(t, d.FinalOrderID().IsEqual(orderID))
	require.ErrorIs(t, d.MarkCompleted(owner, orderID), errs.ErrStateConflict)
	require.ErrorIs(t, d.AddItem(owner, newItem(t, owner, "1", "1", "0")), errs.ErrStateConflict)
}

func TestMissingSteps(t *testing.T) {
	d := restoreWithSteps(t, kernel.OrderTypeProducts, []int{1, 2, 4})

	assert.Equal(t, []int{3}, d.MissingSteps())
}

func TestNewEditDraft(t *testing.T) {
	actor := kernel.NewUUID()
	orderID := kernel.NewUUID()
	item := newItem(t, actor, "2", "15", "0")

	d, err := draft.NewEditDraft(kernel.NewUUID(), actor, draft.EditSource{
		OrderID:        orderID,
		Type:           kernel.OrderTypeInstallation,
		ContractNumber: "C-1",
		Payment:        draft.Payment{Method: draft.PaymentCash, PaidAmount: decimal.NewFromInt(5)},
		Items:          []*draft.Item{item},
	})

	require.NoError(t, err)
	assert.True(t, d.IsEditMode())
	assert.True(t, d.EditingOrderID().IsEqual(orderID))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, d.CompletedSteps())
	assert.Equal(t, 6, d.CurrentStep())
	assert.Empty(t, d.MissingSteps())
	assert.Len(t, d.Items(), 1)
}
