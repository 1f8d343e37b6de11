package commands

import (
	"context"

	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"

	"go.uber.org/zap"
)

// TransitionManufacturingOrderCommandHandler applies a status change after
// checking the capability the current status asks for. An override
// transition needs the override capability.
type TransitionManufacturingOrderCommandHandler struct {
	uowFactory ManufacturingUoWFactory
	identity   ports.IdentityProvider
	notifier   ports.Notifier
	propagator services.StatusPropagator
	logger     *zap.Logger
}

func NewTransitionManufacturingOrderCommandHandler(
	uowFactory ManufacturingUoWFactory,
	identity ports.IdentityProvider,
	notifier ports.Notifier,
	logger *zap.Logger,
) TransitionManufacturingOrderCommandHandler {
	return TransitionManufacturingOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		notifier:   notifier,
		propagator: services.NewStatusPropagator(),
		logger:     logger.With(zap.String("component", "manufacturing")),
	}
}

func (h TransitionManufacturingOrderCommandHandler) Handle(ctx context.Context, cmd TransitionManufacturingOrderCommand) error {
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

	action := "move " + mo.String() + " to " + cmd.To().String()
	if cmd.Override() {
		err = requireAnyCapability(ctx, h.identity, cmd.ActorID(), action, manufacturing.CapabilityOverride)
	} else {
		err = requireAnyCapability(ctx, h.identity, cmd.ActorID(), action,
			manufacturing.RequiredCapability(mo.Status()), manufacturing.CapabilityOverride)
	}
	if err != nil {
		return err
	}

	previous, err := mo.TransitionTo(cmd.To(), cmd.ActorID(), cmd.Override(), cmd.Note())
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
