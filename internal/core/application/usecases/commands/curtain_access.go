package commands

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// loadDraftCurtain returns a curtain only when it belongs to the draft.
func loadDraftCurtain(ctx context.Context, repo ports.CurtainRepository, draftID, curtainID kernel.UUID) (*curtain.Curtain, error) {
	c, err := repo.Get(ctx, curtainID)
	if err != nil {
		return nil, err
	}
	if !c.Owner().IsEqual(curtain.DraftOwner(draftID)) {
		return nil, errs.NewObjectNotFoundError("curtain", curtainID.String())
	}
	return c, nil
}
