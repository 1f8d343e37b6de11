package commands

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// AddDraftItemCommandHandler looks the product up in the catalog, which decides
// the item classification and the default price.
type AddDraftItemCommandHandler struct {
	uowFactory DraftUoWFactory
	identity   ports.IdentityProvider
	catalog    ports.Catalog
}

func NewAddDraftItemCommandHandler(
	uowFactory DraftUoWFactory,
	identity ports.IdentityProvider,
	catalog ports.Catalog,
) AddDraftItemCommandHandler {
	return AddDraftItemCommandHandler{uowFactory: uowFactory, identity: identity, catalog: catalog}
}

func (h AddDraftItemCommandHandler) Handle(ctx context.Context, cmd AddDraftItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	product, err := h.catalog.Product(ctx, cmd.ProductID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValidationError(map[string]string{"product_id": err.Error()})
	}
	if err != nil {
		return err
	}
	price := product.UnitPrice
	if cmd.UnitPrice() != nil {
		price = *cmd.UnitPrice()
	}

	item, err := draft.NewItem(cmd.ItemID(), product.ID, cmd.Quantity(), price, cmd.DiscountPct(), product.Classification, cmd.ActorID())
	if err != nil {
		return asValidation(err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DraftRepository()
	d, err := loadOpenDraft(ctx, repo, h.identity, cmd.DraftID(), cmd.ActorID())
	if err != nil {
		return err
	}
	if err = d.AddItem(cmd.ActorID(), item); err != nil {
		return asValidation(err)
	}
	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
