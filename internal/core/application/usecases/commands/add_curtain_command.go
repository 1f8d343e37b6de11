package commands

import (
	"errors"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrAddCurtainCommandIsNotConstructed = errors.New(
	"AddCurtainCommand must be created via NewAddCurtainCommand constructor",
)

type AddCurtainCommand struct {
	draftID      kernel.UUID
	curtainID    kernel.UUID
	actorID      kernel.UUID
	measurements curtain.Measurements

	guard guard.ConstructorGuard
}

func NewAddCurtainCommand(draftID, curtainID, actorID kernel.UUID, m curtain.Measurements) (AddCurtainCommand, error) {
	if err := errors.Join(draftID.Validate(), curtainID.Validate(), actorID.Validate()); err != nil {
		return AddCurtainCommand{}, err
	}
	return AddCurtainCommand{
		draftID:      draftID,
		curtainID:    curtainID,
		actorID:      actorID,
		measurements: m,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddCurtainCommand) Validate() error {
	return c.guard.Validate(ErrAddCurtainCommandIsNotConstructed)
}

func (c AddCurtainCommand) DraftID() kernel.UUID               { return c.draftID }
func (c AddCurtainCommand) CurtainID() kernel.UUID             { return c.curtainID }
func (c AddCurtainCommand) ActorID() kernel.UUID               { return c.actorID }
func (c AddCurtainCommand) Measurements() curtain.Measurements { return c.measurements }
