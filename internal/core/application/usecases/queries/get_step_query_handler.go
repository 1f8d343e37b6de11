package queries

import (
	"context"
	"slices"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
)

type GetStepQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	identity   ports.IdentityProvider
}

func NewGetStepQueryHandler(uowFactory ports.UnitOfWorkFactory, identity ports.IdentityProvider) GetStepQueryHandler {
	return GetStepQueryHandler{uowFactory: uowFactory, identity: identity}
}

func (h GetStepQueryHandler) Handle(ctx context.Context, query GetStepQuery) (*GetStepQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	d, err := readableDraft(ctx, h.uowFactory.Create().DraftRepository(), h.identity, query.DraftID(), query.ActorID())
	if err != nil {
		return nil, err
	}

	physical, remapped, err := draft.MapLogicalToPhysical(d, query.Logical())
	if err != nil {
		return nil, err
	}
	screen, err := draft.ScreenAt(d, physical)
	if err != nil {
		return nil, err
	}
	completed := d.CompletedSteps()

	resp := &GetStepQueryResponse{
		Logical:        query.Logical(),
		Physical:       physical,
		Screen:         screen,
		StepCount:      d.StepCount(),
		Accessible:     draft.CanAccessStep(d, physical),
		Completed:      slices.Contains(completed, physical),
		CompletedSteps: completed,
	}
	switch {
	case !resp.Accessible:
		target := d.FirstOpenStep()
		resp.RedirectTo = &target
	case remapped:
		resp.RedirectTo = &physical
	}
	return resp, nil
}
