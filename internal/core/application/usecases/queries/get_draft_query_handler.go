package queries

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// GetDraftQueryHandler reads drafts through the repositories, outside any
// transaction. The owner and anyone who can manage the owner may read.
type GetDraftQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	identity   ports.IdentityProvider
}

func NewGetDraftQueryHandler(uowFactory ports.UnitOfWorkFactory, identity ports.IdentityProvider) GetDraftQueryHandler {
	return GetDraftQueryHandler{uowFactory: uowFactory, identity: identity}
}

func (h GetDraftQueryHandler) Handle(ctx context.Context, query GetDraftQuery) (*GetDraftQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	d, err := readableDraft(ctx, uow.DraftRepository(), h.identity, query.DraftID(), query.ActorID())
	if err != nil {
		return nil, err
	}
	curtains, err := uow.CurtainRepository().ListByOwner(ctx, curtain.DraftOwner(d.ID()))
	if err != nil {
		return nil, err
	}

	return draftView(d, curtains), nil
}

func readableDraft(
	ctx context.Context,
	repo ports.DraftRepository,
	identity ports.IdentityProvider,
	draftID, actor kernel.UUID,
) (*draft.Draft, error) {
	d, err := repo.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.OwnerID().IsEqual(actor) {
		return d, nil
	}
	ok, err := identity.CanManage(ctx, actor, d.OwnerID())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewAuthorizationError(actor.String(), "read draft "+draftID.String())
	}
	return d, nil
}

func draftView(d *draft.Draft, curtains []*curtain.Curtain) *GetDraftQueryResponse {
	totals := d.Totals()
	payment := d.Payment()
	view := &GetDraftQueryResponse{
		ID:             d.ID(),
		OwnerID:        d.OwnerID(),
		CurrentStep:    d.CurrentStep(),
		StepCount:      d.StepCount(),
		CompletedSteps: d.CompletedSteps(),
		SelectedType:   d.SelectedType(),
		CustomerID:     d.CustomerID(),
		BranchID:       d.BranchID(),
		SalespersonID:  d.SalespersonID(),
		InvoiceNumber:  d.InvoiceNumber(),
		ContractNumber: d.ContractNumber(),
		Notes:          d.Notes(),
		Payment: DraftPayment{
			Method:     payment.Method,
			PaidAmount: payment.PaidAmount,
			Reference:  payment.Reference,
		},
		Subtotal:       totals.Subtotal,
		Discount:       totals.Discount,
		Total:          totals.Final,
		Completed:      d.IsCompleted(),
		FinalOrderID:   d.FinalOrderID(),
		EditingOrderID: d.EditingOrderID(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
		Items:          make([]DraftItem, 0, len(d.Items())),
		Curtains:       make([]DraftCurtain, 0, len(curtains)),
		History:        make([]DraftHistoryEntry, 0, len(d.History())),
	}

	reserved := make(map[kernel.UUID]decimal.Decimal)
	for _, c := range curtains {
		m := c.Measurements()
		dc := DraftCurtain{
			ID:        c.ID(),
			Sequence:  m.Sequence,
			Room:      m.Room,
			Width:     m.Width,
			Height:    m.Height,
			MountType: string(m.MountType),
			BoxWidth:  m.BoxWidth,
			BoxDepth:  m.BoxDepth,
			Lines:     make([]DraftCurtainLine, 0, len(c.Lines())),
		}
		for _, l := range c.Lines() {
			itemID := l.ItemRef().ID()
			reserved[itemID] = reserved[itemID].Add(l.Quantity().Decimal())
			dc.Lines = append(dc.Lines, DraftCurtainLine{
				ID:       l.ID(),
				Kind:     string(l.Kind()),
				ItemID:   itemID,
				Quantity: l.Quantity().Decimal(),
				Name:     l.Name(),
			})
		}
		view.Curtains = append(view.Curtains, dc)
	}

	for _, item := range d.Items() {
		view.Items = append(view.Items, DraftItem{
			ID:             item.ID(),
			ProductID:      item.ProductID(),
			Quantity:       item.Quantity().Decimal(),
			Reserved:       reserved[item.ID()],
			UnitPrice:      item.UnitPrice(),
			DiscountPct:    item.DiscountPct(),
			Classification: item.Classification(),
		})
	}
	for _, entry := range d.History() {
		view.History = append(view.History, DraftHistoryEntry{
			ActorID: entry.ActorID,
			Action:  entry.Action,
			At:      entry.At,
			Detail:  entry.Detail,
		})
	}
	return view
}
