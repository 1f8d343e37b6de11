package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateDraft handles POST /api/v1/drafts.
func (s *Server) CreateDraft(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req NewDraft
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	draftID := kernel.NewUUID()
	cmd, err := commands.NewCreateDraftCommand(draftID, actor, req.CustomerID, req.BranchID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateDraft.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: draftID})
}

// GetDraft handles GET /api/v1/drafts/{draftId}.
func (s *Server) GetDraft(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDraftQuery(draftID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	response, err := s.h.GetDraft.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// DeleteDraft handles DELETE /api/v1/drafts/{draftId}.
func (s *Server) DeleteDraft(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteDraftCommand(draftID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeleteDraft.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddItem handles POST /api/v1/drafts/{draftId}/items. Without a unit price
// the catalog price of the product is used.
func (s *Server) AddItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req NewItem
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	quantity, err := kernel.NewQuantity(req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddDraftItemCommand(draftID, itemID, actor, req.ProductID, quantity, req.UnitPrice, req.DiscountPct)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AddItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: itemID})
}

// UpdateItem handles PUT /api/v1/drafts/{draftId}/items/{itemId}.
func (s *Server) UpdateItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := pathUUIDs(ctx, "draftId", "itemId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req ItemUpdate
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	quantity, err := kernel.NewQuantity(req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateDraftItemCommand(ids[0], ids[1], actor, quantity, req.UnitPrice, req.DiscountPct)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.UpdateItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveItem handles DELETE /api/v1/drafts/{draftId}/items/{itemId}.
func (s *Server) RemoveItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := pathUUIDs(ctx, "draftId", "itemId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveDraftItemCommand(ids[0], ids[1], actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RemoveItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddCurtain handles POST /api/v1/drafts/{draftId}/curtains.
func (s *Server) AddCurtain(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req NewCurtain
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	curtainID := kernel.NewUUID()
	cmd, err := commands.NewAddCurtainCommand(draftID, curtainID, actor, curtain.Measurements{
		Sequence:  req.Sequence,
		Room:      req.Room,
		Width:     req.Width,
		Height:    req.Height,
		MountType: req.MountType,
		BoxWidth:  req.BoxWidth,
		BoxDepth:  req.BoxDepth,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AddCurtain.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: curtainID})
}

// RemoveCurtain handles DELETE /api/v1/drafts/{draftId}/curtains/{curtainId}.
func (s *Server) RemoveCurtain(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := pathUUIDs(ctx, "draftId", "curtainId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveCurtainCommand(ids[0], ids[1], actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RemoveCurtain.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddCurtainLine handles POST /api/v1/drafts/{draftId}/curtains/{curtainId}/lines.
func (s *Server) AddCurtainLine(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := pathUUIDs(ctx, "draftId", "curtainId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req NewCurtainLine
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	quantity, err := kernel.NewQuantity(req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	lineID := kernel.NewUUID()
	cmd, err := commands.NewAddCurtainLineCommand(ids[0], ids[1], lineID, actor, req.Kind, req.ItemID, quantity, req.Name)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AddCurtainLine.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: lineID})
}

// UpdateCurtainLine handles PUT /api/v1/drafts/{draftId}/curtains/{curtainId}/lines/{lineId}.
func (s *Server) UpdateCurtainLine(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := pathUUIDs(ctx, "draftId", "curtainId", "lineId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req CurtainLineUpdate
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	quantity, err := kernel.NewQuantity(req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCurtainLineCommand(ids[0], ids[1], ids[2], actor, quantity, req.Name)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.UpdateCurtainLine.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCurtainLine handles DELETE /api/v1/drafts/{draftId}/curtains/{curtainId}/lines/{lineId}.
func (s *Server) RemoveCurtainLine(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := pathUUIDs(ctx, "draftId", "curtainId", "lineId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveCurtainLineCommand(ids[0], ids[1], ids[2], actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RemoveCurtainLine.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
