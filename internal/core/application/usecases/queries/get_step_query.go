package queries

import (
	"errors"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrGetStepQueryIsNotConstructed = errors.New(
	"GetStepQuery must be created via NewGetStepQuery constructor",
)

// GetStepQuery asks which screen a logical wizard step opens for a draft and
// whether the actor may open it yet.
type GetStepQuery struct {
	draftID kernel.UUID
	actorID kernel.UUID
	logical int
	guard   guard.ConstructorGuard
}

func NewGetStepQuery(draftID, actorID kernel.UUID, logical int) (GetStepQuery, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return GetStepQuery{}, err
	}
	if logical < draft.StepBasicInfo || logical > draft.StepReview {
		return GetStepQuery{}, errs.NewValueIsOutOfRangeError("step", logical, draft.StepBasicInfo, draft.StepReview)
	}
	return GetStepQuery{draftID: draftID, actorID: actorID, logical: logical, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStepQuery) Validate() error {
	return q.guard.Validate(ErrGetStepQueryIsNotConstructed)
}

func (q GetStepQuery) DraftID() kernel.UUID { return q.draftID }
func (q GetStepQuery) ActorID() kernel.UUID { return q.actorID }
func (q GetStepQuery) Logical() int         { return q.logical }

// GetStepQueryResponse describes the physical step behind a logical one.
// RedirectTo is set when the client must go elsewhere: to the physical step
// the logical one maps onto, or to the first open step when the requested one
// is not accessible yet.
type GetStepQueryResponse struct {
	Logical        int          `json:"logical"`
	Physical       int          `json:"physical"`
	Screen         draft.Screen `json:"screen"`
	StepCount      int          `json:"step_count"`
	Accessible     bool         `json:"accessible"`
	Completed      bool         `json:"completed"`
	CompletedSteps []int        `json:"completed_steps"`
	RedirectTo     *int         `json:"redirect_to,omitempty"`
}
