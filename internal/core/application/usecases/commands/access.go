package commands

import (
	"context"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// authorizeOwnerOrManager lets the owner through, and any actor with
// management authority over the owner.
func authorizeOwnerOrManager(ctx context.Context, identity ports.IdentityProvider, owner, actor kernel.UUID, action string) error {
	if owner.IsEqual(actor) {
		return nil
	}
	ok, err := identity.CanManage(ctx, actor, owner)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewAuthorizationError(actor.String(), action)
	}
	return nil
}

// loadOpenDraft locks the draft row, checks the actor may edit it and that it
// is not finalized yet.
func loadOpenDraft(
	ctx context.Context,
	repo ports.DraftRepository,
	identity ports.IdentityProvider,
	draftID, actor kernel.UUID,
) (*draft.Draft, error) {
	d, err := repo.GetForUpdate(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err = authorizeOwnerOrManager(ctx, identity, d.OwnerID(), actor, "edit draft "+draftID.String()); err != nil {
		return nil, err
	}
	if err = d.EnsureOpen(); err != nil {
		return nil, err
	}
	return d, nil
}

// asValidation turns domain value errors into the field level payload returned
// to interactive clients. Other errors pass through.
func asValidation(err error) error {
	if ve, ok := errs.AsValidation(err); ok {
		return ve
	}
	return err
}
