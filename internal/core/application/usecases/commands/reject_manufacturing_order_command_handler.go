package commands

import (
	"context"

	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"

	"go.uber.org/zap"
)

type RejectManufacturingOrderCommandHandler struct {
	uowFactory ManufacturingUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	propagator services.StatusPropagator
	logger     *zap.Logger
}

func NewRejectManufacturingOrderCommandHandler(
	uowFactory ManufacturingUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *zap.Logger,
) RejectManufacturingOrderCommandHandler {
	return RejectManufacturingOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		propagator: services.NewStatusPropagator(),
		logger:     logger.With(zap.String("component", "manufacturing")),
	}
}

func (h RejectManufacturingOrderCommandHandler) Handle(ctx context.Context, cmd RejectManufacturingOrderCommand) error {
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

	mo, err := uow.ManufacturingOrderRepository().GetForUpdate(ctx, cmd.ManufacturingOrderID())
	if err != nil {
		return err
	}
	if err = requireAnyCapability(ctx, h.identity, cmd.ActorID(), "reject "+mo.String(),
		manufacturing.CapabilityApprove, manufacturing.CapabilityOverride); err != nil {
		return err
	}

	previous, err := mo.Reject(cmd.RejectionID(), cmd.Reason(), cmd.ActorID())
	if err != nil {
		return asValidation(err)
	}
	if err = saveStatusChange(ctx, uow, h.propagator, mo, previous); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	e := statusChangedEvent(mo, previous, cmd.ActorID())
	e.Attributes["rejection_id"] = cmd.RejectionID().String()
	notify(ctx, h.notifier, h.logger, e)
	return nil
}
