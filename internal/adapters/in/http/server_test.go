package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestErrorBody(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  int
		known bool
	}{
		{"bind", bindError{err: errors.New("bad json")}, http.StatusBadRequest, true},
		{"no actor", errNoActor, http.StatusUnauthorized, true},
		{"not found", errs.NewObjectNotFoundError("draft", "x"), http.StatusNotFound, true},
		{"wrapped not found", fmt.Errorf("load: %w", errs.NewObjectNotFoundError("draft", "x")), http.StatusNotFound, true},
		{"authorization", errs.NewAuthorizationError("a", "delete draft"), http.StatusForbidden, true},
		{"state conflict", errs.NewStateConflictError("draft", "completed", "edit"), http.StatusConflict, true},
		{"empty order", errs.ErrEmptyOrder, http.StatusConflict, true},
		{"quota", errs.NewQuotaExceededError(5, 5), http.StatusTooManyRequests, true},
		{"validation", errs.NewValidationError(map[string]string{"customer_id": "required"}), http.StatusUnprocessableEntity, true},
		{"value errors", errors.Join(errs.NewValueIsRequiredError("room"), errs.NewValueIsInvalidError("width")), http.StatusUnprocessableEntity, true},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, known := errorBody(tt.err)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.known, known)
		})
	}

	t.Run("over allocation carries the numbers", func(t *testing.T) {
		body, _ := errorBody(errs.NewOverAllocationError("item", "4.5", "4"))
		assert.Equal(t, http.StatusConflict, body.Code)
		assert.Equal(t, "4.5", body.Requested)
		assert.Equal(t, "4", body.Available)
	})

	t.Run("incomplete wizard lists the missing steps", func(t *testing.T) {
		body, _ := errorBody(errs.NewIncompleteWizardError([]int{3, 5}))
		assert.Equal(t, http.StatusConflict, body.Code)
		assert.Equal(t, []int{3, 5}, body.MissingSteps)
	})

	t.Run("value errors become fields", func(t *testing.T) {
		body, _ := errorBody(errs.NewValueIsRequiredError("room"))
		assert.Contains(t, body.Fields, "room")
	})
}

func echoActor(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return ctx.String(http.StatusOK, actor.String())
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHeaderActor(t *testing.T) {
	e := echo.New()
	e.GET("/me", echoActor, HeaderActor())
	actor := kernel.NewUUID()

	t.Run("missing header", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(ActorHeader, "not-a-uuid")
		rec := serve(e, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("nil uuid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(ActorHeader, "00000000-0000-0000-0000-000000000000")
		rec := serve(e, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("actor on the context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(ActorHeader, actor.String())
		rec := serve(e, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, actor.String(), rec.Body.String())
	})
}

type subjects map[string]kernel.UUID

func (s subjects) ResolveSubject(_ context.Context, subject string) (kernel.UUID, error) {
	id, ok := s[subject]
	if !ok {
		return kernel.UUID{}, errs.NewObjectNotFoundError("actor", subject)
	}
	return id, nil
}

func TestTokenActor(t *testing.T) {
	actor := kernel.NewUUID()
	validate := func(_ context.Context, token string) (any, error) {
		if token == "broken" {
			return nil, errors.New("signature mismatch")
		}
		return &validator.ValidatedClaims{RegisteredClaims: validator.RegisteredClaims{Subject: token}}, nil
	}
	e := echo.New()
	e.GET("/me", echoActor, tokenActor(validate, subjects{"auth0|anna": actor}))

	request := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		return serve(e, req)
	}

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request("").Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request("broken").Code)
	})

	t.Run("unknown subject", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request("auth0|bob").Code)
	})

	t.Run("known subject", func(t *testing.T) {
		rec := request("auth0|anna")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, actor.String(), rec.Body.String())
	})
}

func TestPathUUID(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	ctx.SetParamNames("draftId", "itemId")
	id := kernel.NewUUID()
	ctx.SetParamValues(id.String(), "nope")

	got, err := pathUUID(ctx, "draftId")
	require.NoError(t, err)
	assert.True(t, got.IsEqual(id))

	_, err = pathUUIDs(ctx, "draftId", "itemId")
	var bind bindError
	require.ErrorAs(t, err, &bind)
}

func TestOpenAPI(t *testing.T) {
	doc, err := LoadOpenAPI(context.Background())
	require.NoError(t, err)

	t.Run("swagger serves the document", func(t *testing.T) {
		require.NoError(t, RegisterSwagger(doc))
		raw, readErr := swag.ReadDoc()
		require.NoError(t, readErr)
		assert.Contains(t, raw, "/api/v1/drafts/{draftId}/finalize")
	})

	validate, err := RequestValidator(doc)
	require.NoError(t, err)
	e := echo.New()
	ok := func(ctx echo.Context) error { return ctx.NoContent(http.StatusNoContent) }
	e.POST("/api/v1/drafts/:draftId/steps/order-type", ok, validate)
	e.GET("/unlisted", ok, validate)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/drafts/"+kernel.NewUUID().String()+"/steps/order-type", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return serve(e, req)
	}

	t.Run("valid body passes", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, post(`{"order_type":"installation","contract_number":"C-1"}`).Code)
	})

	t.Run("unknown order type is refused", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post(`{"order_type":"rental"}`).Code)
	})

	t.Run("missing required property is refused", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post(`{"invoice_number":"INV-1"}`).Code)
	})

	t.Run("undocumented paths pass through", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/unlisted", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
