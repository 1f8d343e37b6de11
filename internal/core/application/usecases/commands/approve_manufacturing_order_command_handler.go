package commands

import (
	"context"

	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"

	"go.uber.org/zap"
)

type ApproveManufacturingOrderCommandHandler struct {
	uowFactory ManufacturingUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	propagator services.StatusPropagator
	logger     *zap.Logger
}

func NewApproveManufacturingOrderCommandHandler(
	uowFactory ManufacturingUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *zap.Logger,
) ApproveManufacturingOrderCommandHandler {
	return ApproveManufacturingOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		propagator: services.NewStatusPropagator(),
		logger:     logger.With(zap.String("component", "manufacturing")),
	}
}

func (h ApproveManufacturingOrderCommandHandler) Handle(ctx context.Context, cmd ApproveManufacturingOrderCommand) error {
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
	if err = requireAnyCapability(ctx, h.identity, cmd.ActorID(), "approve "+mo.String(),
		manufacturing.CapabilityApprove, manufacturing.CapabilityOverride); err != nil {
		return err
	}

	previous, err := mo.Approve(cmd.ActorID(), cmd.Note())
	if err != nil {
		return err
	}
	if err = saveStatusChange(ctx, uow, h.propagator, mo, previous); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, h.notifier, h.logger, statusChangedEvent(mo, previous, cmd.ActorID()))
	return nil
}
