package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Finalize handles POST /api/v1/drafts/{draftId}/finalize. A draft editing an
// order updates that order and the response carries its id.
func (s *Server) Finalize(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewFinalizeDraftCommand(draftID, kernel.NewUUID(), actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := s.h.Finalize.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Finalized{OrderID: orderID})
}

// StartOrderEdit handles POST /api/v1/orders/{orderId}/edit.
func (s *Server) StartOrderEdit(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	draftID := kernel.NewUUID()
	cmd, err := commands.NewStartOrderEditCommand(draftID, orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.StartOrderEdit.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: draftID})
}

// OrderTracking handles GET /api/v1/orders/{orderId}/tracking.
func (s *Server) OrderTracking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	response, err := s.h.OrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ManufacturingBoard handles GET /api/v1/manufacturing-orders.
func (s *Server) ManufacturingBoard(ctx echo.Context) error {
	var (
		statuses []string
		unread   *bool
		limit    *int
	)
	params := ctx.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &statuses); err != nil {
		return s.fail(ctx, bindError{err: err})
	}
	if err := runtime.BindQueryParameter("form", true, false, "unread", params, &unread); err != nil {
		return s.fail(ctx, bindError{err: err})
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		return s.fail(ctx, bindError{err: err})
	}

	filter := make([]manufacturing.Status, 0, len(statuses))
	for _, st := range statuses {
		filter = append(filter, manufacturing.Status(st))
	}
	query, err := queries.NewGetManufacturingBoardQuery(filter, unread != nil && *unread, deref(limit))
	if err != nil {
		return s.fail(ctx, err)
	}
	entries, err := s.h.ManufacturingBoard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, entries)
}

// TransitionManufacturingOrder handles POST /api/v1/manufacturing-orders/{manufacturingOrderId}/transitions.
func (s *Server) TransitionManufacturingOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	moID, err := pathUUID(ctx, "manufacturingOrderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req Transition
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionManufacturingOrderCommand(moID, actor, req.To, req.Override, req.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.Transition.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectManufacturingOrder handles POST /api/v1/manufacturing-orders/{manufacturingOrderId}/reject.
func (s *Server) RejectManufacturingOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	moID, err := pathUUID(ctx, "manufacturingOrderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req Rejection
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	rejectionID := kernel.NewUUID()
	cmd, err := commands.NewRejectManufacturingOrderCommand(moID, rejectionID, actor, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.Reject.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: rejectionID})
}

// ReplyToRejection handles POST /api/v1/manufacturing-orders/{manufacturingOrderId}/reply.
func (s *Server) ReplyToRejection(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	moID, err := pathUUID(ctx, "manufacturingOrderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req RejectionReply
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReplyToRejectionCommand(moID, req.RejectionID, actor, req.Reply)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.Reply.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ApproveManufacturingOrder handles POST /api/v1/manufacturing-orders/{manufacturingOrderId}/approve.
func (s *Server) ApproveManufacturingOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	moID, err := pathUUID(ctx, "manufacturingOrderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req Approval
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewApproveManufacturingOrderCommand(moID, actor, req.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.Approve.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkReplyRead handles POST /api/v1/manufacturing-orders/{manufacturingOrderId}/rejections/{rejectionId}/read.
func (s *Server) MarkReplyRead(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := pathUUIDs(ctx, "manufacturingOrderId", "rejectionId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkReplyReadCommand(ids[0], ids[1], actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.MarkReplyRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
