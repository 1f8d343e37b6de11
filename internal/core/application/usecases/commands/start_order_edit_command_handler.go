package commands

import (
	"context"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"github.com/shopspring/decimal"
)

// StartOrderEditCommandHandler copies an order into a new edit-mode draft.
//
// Items get fresh draft ids and the order's curtains are copied to the draft
// with their lines pointing at those new items. The order itself is untouched
// until the draft is finalized.
type StartOrderEditCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	locker     ports.Locker
	quota      int
}

func NewStartOrderEditCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	locker ports.Locker,
	quota int,
) StartOrderEditCommandHandler {
	if quota <= 0 {
		quota = DefaultDraftQuota
	}
	return StartOrderEditCommandHandler{uowFactory: uowFactory, identity: identity, locker: locker, quota: quota}
}

func (h StartOrderEditCommandHandler) Handle(ctx context.Context, cmd StartOrderEditCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	release, err := lockQuota(ctx, h.locker, cmd.ActorID())
	if err != nil {
		return err
	}
	defer func() {
		_ = release(context.WithoutCancel(ctx))
	}()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = authorizeOwnerOrManager(ctx, h.identity, o.CreatedBy(), cmd.ActorID(), "edit order "+o.ID().String()); err != nil {
		return err
	}
	drafts := uow.DraftRepository()
	if err = checkQuota(ctx, drafts, cmd.ActorID(), h.quota); err != nil {
		return err
	}

	payments, err := uow.PaymentRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	itemIDs := make(map[kernel.UUID]kernel.UUID, len(o.Items()))
	items := make([]*draft.Item, 0, len(o.Items()))
	for _, oi := range o.Items() {
		di, itemErr := oi.ToDraftItem(kernel.NewUUID(), cmd.ActorID())
		if itemErr != nil {
			return itemErr
		}
		itemIDs[oi.ID()] = di.ID()
		items = append(items, di)
	}

	d, err := draft.NewEditDraft(cmd.DraftID(), cmd.ActorID(), draft.EditSource{
		OrderID:        o.ID(),
		Type:           o.Type(),
		CustomerID:     o.CustomerID(),
		BranchID:       o.BranchID(),
		SalespersonID:  o.SalespersonID(),
		InvoiceNumber:  o.InvoiceNumber(),
		ContractNumber: o.ContractNumber(),
		Notes:          o.Notes(),
		Payment:        paymentOf(o, payments),
		Items:          items,
	})
	if err != nil {
		return err
	}
	if err = drafts.Add(ctx, d); err != nil {
		return err
	}

	curtains := uow.CurtainRepository()
	source, err := curtains.ListByOwner(ctx, curtain.OrderOwner(o.ID()))
	if err != nil {
		return err
	}
	for _, c := range source {
		cp, copyErr := c.CopyToDraft(kernel.NewUUID(), d.ID(), itemIDs)
		if copyErr != nil {
			return copyErr
		}
		if err = curtains.Add(ctx, cp); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// paymentOf folds the recorded payments into the single payment the wizard edits.
func paymentOf(o *order.Order, payments []*order.Payment) draft.Payment {
	p := draft.Payment{Method: o.PaymentMethod(), PaidAmount: decimal.Zero}
	for _, recorded := range payments {
		p.PaidAmount = p.PaidAmount.Add(recorded.Amount())
		p.Method = recorded.Method()
		p.Reference = recorded.Reference()
	}
	return p
}
