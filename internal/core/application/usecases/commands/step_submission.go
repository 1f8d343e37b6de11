package commands

import (
	"context"
	"strconv"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// StepResult tells the client where the wizard continues after a submitted step.
type StepResult struct {
	Step       int
	NextStep   int
	NextScreen draft.Screen
}

// submitStep runs the part every step handler shares: access check, the
// step specific save, marking the step complete and persisting the draft.
func submitStep(
	ctx context.Context,
	repo ports.DraftRepository,
	identity ports.IdentityProvider,
	draftID, actor kernel.UUID,
	screen draft.Screen,
	save func(d *draft.Draft) error,
) (StepResult, error) {
	d, err := loadOpenDraft(ctx, repo, identity, draftID, actor)
	if err != nil {
		return StepResult{}, err
	}

	n, ok := draft.PhysicalStepOf(d, screen)
	if !ok || !draft.CanAccessStep(d, n) {
		first, _ := draft.ScreenAt(d, d.FirstOpenStep())
		return StepResult{}, errs.NewStateConflictError("wizard step", string(first), string(screen))
	}

	if err = save(d); err != nil {
		return StepResult{}, asValidation(err)
	}
	if err = d.MarkStepComplete(n); err != nil {
		return StepResult{}, err
	}
	if err = d.Touch(actor, draft.ActionStepSubmitted, map[string]string{
		"step":   strconv.Itoa(n),
		"screen": string(screen),
	}); err != nil {
		return StepResult{}, err
	}
	if err = repo.Update(ctx, d); err != nil {
		return StepResult{}, err
	}

	next := d.CurrentStep()
	nextScreen, err := draft.ScreenAt(d, next)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Step: n, NextStep: next, NextScreen: nextScreen}, nil
}
