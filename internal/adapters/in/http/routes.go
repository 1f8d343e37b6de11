package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// NewEcho builds the echo instance with recovery and request logging into zap.
func NewEcho(logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

// Register mounts the API under /api/v1. actor resolves the acting user and
// extra runs after it, e.g. the OpenAPI request validator.
func (s *Server) Register(e *echo.Echo, actor echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1", append([]echo.MiddlewareFunc{actor}, extra...)...)

	api.POST("/drafts", s.CreateDraft)
	api.GET("/drafts/:draftId", s.GetDraft)
	api.DELETE("/drafts/:draftId", s.DeleteDraft)

	api.GET("/drafts/:draftId/steps/:step", s.GetStep)
	api.POST("/drafts/:draftId/steps/basic-info", s.SubmitBasicInfo)
	api.POST("/drafts/:draftId/steps/order-type", s.SubmitOrderType)
	api.POST("/drafts/:draftId/steps/items", s.SubmitItems)
	api.POST("/drafts/:draftId/steps/payment", s.SubmitPayment)
	api.POST("/drafts/:draftId/steps/contract", s.SubmitContract)
	api.POST("/drafts/:draftId/steps/review", s.SubmitReview)

	api.POST("/drafts/:draftId/items", s.AddItem)
	api.PUT("/drafts/:draftId/items/:itemId", s.UpdateItem)
	api.DELETE("/drafts/:draftId/items/:itemId", s.RemoveItem)

	api.POST("/drafts/:draftId/curtains", s.AddCurtain)
	api.DELETE("/drafts/:draftId/curtains/:curtainId", s.RemoveCurtain)
	api.POST("/drafts/:draftId/curtains/:curtainId/lines", s.AddCurtainLine)
	api.PUT("/drafts/:draftId/curtains/:curtainId/lines/:lineId", s.UpdateCurtainLine)
	api.DELETE("/drafts/:draftId/curtains/:curtainId/lines/:lineId", s.RemoveCurtainLine)

	api.POST("/drafts/:draftId/finalize", s.Finalize)
	api.POST("/orders/:orderId/edit", s.StartOrderEdit)
	api.GET("/orders/:orderId/tracking", s.OrderTracking)

	api.GET("/manufacturing-orders", s.ManufacturingBoard)
	api.POST("/manufacturing-orders/:manufacturingOrderId/transitions", s.TransitionManufacturingOrder)
	api.POST("/manufacturing-orders/:manufacturingOrderId/reject", s.RejectManufacturingOrder)
	api.POST("/manufacturing-orders/:manufacturingOrderId/reply", s.ReplyToRejection)
	api.POST("/manufacturing-orders/:manufacturingOrderId/approve", s.ApproveManufacturingOrder)
	api.POST("/manufacturing-orders/:manufacturingOrderId/rejections/:rejectionId/read", s.MarkReplyRead)
}
