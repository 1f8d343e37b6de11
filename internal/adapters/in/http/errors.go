package http

import (
	"errors"
	"net/http"

	"workshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed response.
type Error struct {
	Code         int               `json:"code"`
	Message      string            `json:"message"`
	Fields       map[string]string `json:"fields,omitempty"`
	MissingSteps []int             `json:"missing_steps,omitempty"`
	Requested    string            `json:"requested,omitempty"`
	Available    string            `json:"available,omitempty"`
}

// bindError marks a request that could not be decoded at all.
type bindError struct {
	err error
}

func (e bindError) Error() string { return e.err.Error() }
func (e bindError) Unwrap() error { return e.err }

// errorBody maps an application error to a status code and response body.
// The boolean is false for errors the caller did not anticipate.
func errorBody(err error) (Error, bool) {
	var (
		bind       bindError
		over       *errs.OverAllocationError
		incomplete *errs.IncompleteWizardError
	)
	switch {
	case errors.As(err, &bind):
		return Error{Code: http.StatusBadRequest, Message: bind.Error()}, true
	case errors.Is(err, errNoActor):
		return Error{Code: http.StatusUnauthorized, Message: err.Error()}, true
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}, true
	case errors.Is(err, errs.ErrAuthorization):
		return Error{Code: http.StatusForbidden, Message: err.Error()}, true
	case errors.As(err, &over):
		return Error{
			Code:      http.StatusConflict,
			Message:   err.Error(),
			Requested: over.Requested,
			Available: over.Available,
		}, true
	case errors.As(err, &incomplete):
		return Error{Code: http.StatusConflict, Message: err.Error(), MissingSteps: incomplete.MissingSteps}, true
	case errors.Is(err, errs.ErrStateConflict), errors.Is(err, errs.ErrEmptyOrder):
		return Error{Code: http.StatusConflict, Message: err.Error()}, true
	case errors.Is(err, errs.ErrQuotaExceeded):
		return Error{Code: http.StatusTooManyRequests, Message: err.Error()}, true
	}
	if ve, ok := errs.AsValidation(err); ok {
		return Error{Code: http.StatusUnprocessableEntity, Message: errs.ErrValidation.Error(), Fields: ve.Fields}, true
	}
	return Error{Code: http.StatusInternalServerError, Message: "Internal server error"}, false
}

func (s *Server) fail(ctx echo.Context, err error) error {
	body, known := errorBody(err)
	if !known {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err))
	}
	return ctx.JSON(body.Code, body)
}
