package http

import (
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"

	"go.uber.org/zap"
)

// Handlers bundles the use cases the HTTP API exposes.
type Handlers struct {
	// Draft store
	CreateDraft commands.CreateDraftCommandHandler
	DeleteDraft commands.DeleteDraftCommandHandler
	GetDraft    queries.GetDraftQueryHandler

	// Wizard steps
	GetStep       queries.GetStepQueryHandler
	BasicInfoStep commands.SubmitBasicInfoStepCommandHandler
	OrderTypeStep commands.SubmitOrderTypeStepCommandHandler
	ItemsStep     commands.SubmitItemsStepCommandHandler
	PaymentStep   commands.SubmitPaymentStepCommandHandler
	ContractStep  commands.SubmitContractStepCommandHandler
	ReviewStep    commands.SubmitReviewStepCommandHandler

	// Items and curtains
	AddItem           commands.AddDraftItemCommandHandler
	UpdateItem        commands.UpdateDraftItemCommandHandler
	RemoveItem        commands.RemoveDraftItemCommandHandler
	AddCurtain        commands.AddCurtainCommandHandler
	RemoveCurtain     commands.RemoveCurtainCommandHandler
	AddCurtainLine    commands.AddCurtainLineCommandHandler
	UpdateCurtainLine commands.UpdateCurtainLineCommandHandler
	RemoveCurtainLine commands.RemoveCurtainLineCommandHandler

	// Orders
	Finalize       commands.FinalizeDraftCommandHandler
	StartOrderEdit commands.StartOrderEditCommandHandler
	OrderTracking  queries.GetOrderTrackingQueryHandler

	// Manufacturing
	ManufacturingBoard queries.GetManufacturingBoardQueryHandler
	Transition         commands.TransitionManufacturingOrderCommandHandler
	Reject             commands.RejectManufacturingOrderCommandHandler
	Reply              commands.ReplyToRejectionCommandHandler
	Approve            commands.ApproveManufacturingOrderCommandHandler
	MarkReplyRead      commands.MarkReplyReadCommandHandler
}

// Server turns HTTP requests into commands and queries. Every route under
// /api/v1 needs an actor, put on the context by HeaderActor or JWTActor.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{h: handlers, logger: logger.With(zap.String("component", "http"))}
}
