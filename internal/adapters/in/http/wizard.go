package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/draft"

	"github.com/labstack/echo/v4"
)

// GetStep handles GET /api/v1/drafts/{draftId}/steps/{step}. The step in the
// path is logical; the response says which physical step and screen it maps
// to and where to redirect when it is not accessible yet.
func (s *Server) GetStep(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}
	step, err := pathInt(ctx, "step")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetStepQuery(draftID, actor, step)
	if err != nil {
		return s.fail(ctx, err)
	}
	response, err := s.h.GetStep.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SubmitBasicInfo handles POST /api/v1/drafts/{draftId}/steps/basic-info.
func (s *Server) SubmitBasicInfo(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req BasicInfo
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitBasicInfoStepCommand(draftID, actor, draft.BasicInfo{
		CustomerID:    req.CustomerID,
		BranchID:      req.BranchID,
		SalespersonID: req.SalespersonID,
		Notes:         req.Notes,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.BasicInfoStep.Handle(ctx.Request().Context(), cmd)
	return s.stepResult(ctx, result, err)
}

// SubmitOrderType handles POST /api/v1/drafts/{draftId}/steps/order-type.
func (s *Server) SubmitOrderType(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req OrderTypeStep
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitOrderTypeStepCommand(draftID, actor, req.OrderType, req.InvoiceNumber, req.ContractNumber)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.OrderTypeStep.Handle(ctx.Request().Context(), cmd)
	return s.stepResult(ctx, result, err)
}

// SubmitItems handles POST /api/v1/drafts/{draftId}/steps/items.
func (s *Server) SubmitItems(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitItemsStepCommand(draftID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.ItemsStep.Handle(ctx.Request().Context(), cmd)
	return s.stepResult(ctx, result, err)
}

// SubmitPayment handles POST /api/v1/drafts/{draftId}/steps/payment.
func (s *Server) SubmitPayment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req PaymentStep
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitPaymentStepCommand(draftID, actor, draft.Payment{
		Method:     req.Method,
		PaidAmount: req.PaidAmount,
		Reference:  req.Reference,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.PaymentStep.Handle(ctx.Request().Context(), cmd)
	return s.stepResult(ctx, result, err)
}

// SubmitContract handles POST /api/v1/drafts/{draftId}/steps/contract.
func (s *Server) SubmitContract(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitContractStepCommand(draftID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.ContractStep.Handle(ctx.Request().Context(), cmd)
	return s.stepResult(ctx, result, err)
}

// SubmitReview handles POST /api/v1/drafts/{draftId}/steps/review.
func (s *Server) SubmitReview(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	draftID, err := pathUUID(ctx, "draftId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitReviewStepCommand(draftID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.ReviewStep.Handle(ctx.Request().Context(), cmd)
	return s.stepResult(ctx, result, err)
}

func (s *Server) stepResult(ctx echo.Context, result commands.StepResult, err error) error {
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, StepResult{
		Step:       result.Step,
		NextStep:   result.NextStep,
		NextScreen: result.NextScreen,
	})
}
