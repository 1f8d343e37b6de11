package commands

import (
	"errors"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrSubmitBasicInfoStepCommandIsNotConstructed = errors.New(
	"SubmitBasicInfoStepCommand must be created via NewSubmitBasicInfoStepCommand constructor",
)

// SubmitBasicInfoStepCommand carries the basic info screen. Field rules are
// checked by the draft so they come back as field errors.
type SubmitBasicInfoStepCommand struct {
	draftID kernel.UUID
	actorID kernel.UUID
	info    draft.BasicInfo

	guard guard.ConstructorGuard
}

func NewSubmitBasicInfoStepCommand(draftID, actorID kernel.UUID, info draft.BasicInfo) (SubmitBasicInfoStepCommand, error) {
	if err := errors.Join(draftID.Validate(), actorID.Validate()); err != nil {
		return SubmitBasicInfoStepCommand{}, err
	}
	return SubmitBasicInfoStepCommand{draftID: draftID, actorID: actorID, info: info, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitBasicInfoStepCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBasicInfoStepCommandIsNotConstructed)
}

func (c SubmitBasicInfoStepCommand) DraftID() kernel.UUID  { return c.draftID }
func (c SubmitBasicInfoStepCommand) ActorID() kernel.UUID  { return c.actorID }
func (c SubmitBasicInfoStepCommand) Info() draft.BasicInfo { return c.info }
