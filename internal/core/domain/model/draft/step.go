package draft

import (
	"slices"

	"workshop/internal/pkg/errs"
)

// Logical wizard steps. Physical numbering equals the logical one except that
// review moves to 5 when no contract is required.
const (
	StepBasicInfo = 1
	StepOrderType = 2
	StepItems     = 3
	StepPayment   = 4
	StepContract  = 5
	StepReview    = 6
)

// Screen names what the wizard renders at a physical step.
type Screen string

const (
	ScreenBasicInfo Screen = "basic_info"
	ScreenOrderType Screen = "order_type"
	ScreenItems     Screen = "items"
	ScreenPayment   Screen = "payment"
	ScreenContract  Screen = "contract"
	ScreenReview    Screen = "review"
)

// StepCount is 6 when the selected type requires a contract and 5 otherwise.
func (d *Draft) StepCount() int {
	if d.selectedType.RequiresContract() {
		return StepReview
	}
	return StepContract
}

// MapLogicalToPhysical translates a logical step number into the physical step of
// this draft. The second result is true when the caller asked for a step that does
// not exist for the draft's type and must be redirected to the returned one.
func MapLogicalToPhysical(d *Draft, logical int) (int, bool, error) {
	if logical < StepBasicInfo || logical > StepReview {
		return 0, false, errs.NewValueIsOutOfRangeError("step", logical, StepBasicInfo, StepReview)
	}
	if logical == StepReview && !d.selectedType.RequiresContract() {
		return StepContract, true, nil
	}
	return logical, false, nil
}

// ScreenAt returns the screen shown at a physical step.
func ScreenAt(d *Draft, physical int) (Screen, error) {
	if physical < StepBasicInfo || physical > d.StepCount() {
		return "", errs.NewValueIsOutOfRangeError("step", physical, StepBasicInfo, d.StepCount())
	}
	switch physical {
	case StepBasicInfo:
		return ScreenBasicInfo, nil
	case StepOrderType:
		return ScreenOrderType, nil
	case StepItems:
		return ScreenItems, nil
	case StepPayment:
		return ScreenPayment, nil
	case StepContract:
		if d.selectedType.RequiresContract() {
			return ScreenContract, nil
		}
		return ScreenReview, nil
	default:
		return ScreenReview, nil
	}
}

// PhysicalStepOf is the inverse of ScreenAt. The contract screen has no step
// when the selected type does not require a contract.
func PhysicalStepOf(d *Draft, screen Screen) (int, bool) {
	for n := StepBasicInfo; n <= d.StepCount(); n++ {
		if s, err := ScreenAt(d, n); err == nil && s == screen {
			return n, true
		}
	}
	return 0, false
}

// CanAccessStep reports whether step n may be opened: step 1 always, any other
// step only when every step before it is complete.
func CanAccessStep(d *Draft, n int) bool {
	if n < StepBasicInfo || n > d.StepCount() {
		return false
	}
	for prev := StepBasicInfo; prev < n; prev++ {
		if !d.isStepComplete(prev) {
			return false
		}
	}
	return true
}

// FirstOpenStep is the earliest step that is not complete, or the last step when
// all are. It is always accessible and is where inaccessible requests are sent.
func (d *Draft) FirstOpenStep() int {
	for n := StepBasicInfo; n <= d.StepCount(); n++ {
		if !d.isStepComplete(n) {
			return n
		}
	}
	return d.StepCount()
}

// NextStep is the physical step following n, clamped to the last step.
func (d *Draft) NextStep(n int) int {
	return min(n+1, d.StepCount())
}

// MarkStepComplete records step n as complete and moves the current step past it.
// Completing an already complete step is allowed.
func (d *Draft) MarkStepComplete(n int) error {
	if err := d.EnsureOpen(); err != nil {
		return err
	}
	if !CanAccessStep(d, n) {
		return errs.NewStateConflictError("wizard step", screenName(d, d.FirstOpenStep()), screenName(d, n))
	}
	if idx, found := slices.BinarySearch(d.completedSteps, n); !found {
		d.completedSteps = slices.Insert(d.completedSteps, idx, n)
	}
	d.currentStep = d.NextStep(n)
	d.updatedAt = now()
	return nil
}

func screenName(d *Draft, n int) string {
	s, err := ScreenAt(d, n)
	if err != nil {
		return "unknown"
	}
	return string(s)
}
