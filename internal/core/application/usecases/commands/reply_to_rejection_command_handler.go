package commands

import (
	"context"
	"time"

	"workshop/internal/core/ports"

	"go.uber.org/zap"
)

// ReplyToRejectionCommandHandler lets the order's salesperson, or anyone
// managing them, answer a rejection once. Approvers are notified.
type ReplyToRejectionCommandHandler struct {
	uowFactory ManufacturingUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	logger     *zap.Logger
}

func NewReplyToRejectionCommandHandler(
	uowFactory ManufacturingUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *zap.Logger,
) ReplyToRejectionCommandHandler {
	return ReplyToRejectionCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "manufacturing")),
	}
}

func (h ReplyToRejectionCommandHandler) Handle(ctx context.Context, cmd ReplyToRejectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ManufacturingOrderRepository()
	mo, err := repo.GetForUpdate(ctx, cmd.ManufacturingOrderID())
	if err != nil {
		return err
	}
	o, err := uow.OrderRepository().Get(ctx, mo.OrderID())
	if err != nil {
		return err
	}
	if err = authorizeOwnerOrManager(ctx, h.identity, o.CreatedBy(), cmd.ActorID(), "reply to rejection of "+mo.String()); err != nil {
		return err
	}

	if err = mo.Reply(cmd.RejectionID(), cmd.Reply(), cmd.ActorID()); err != nil {
		return asValidation(err)
	}
	if err = repo.Update(ctx, mo); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.notifier, h.logger, ports.Event{
		Type:        ports.EventManufacturingReplied,
		AggregateID: mo.ID(),
		ActorID:     cmd.ActorID(),
		Attributes: map[string]string{
			"order_id":     mo.OrderID().String(),
			"rejection_id": cmd.RejectionID().String(),
		},
		At: time.Now().UTC(),
	})
	return nil
}
