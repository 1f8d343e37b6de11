package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
)

// ActorHeader carries the acting user when no identity provider is configured.
const ActorHeader = "X-Actor-ID"

const actorKey = "actor_id"

var errNoActor = errors.New("request has no actor")

// SubjectResolver maps a token subject to a registered actor.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, subject string) (kernel.UUID, error)
}

// HeaderActor trusts the X-Actor-ID header. Use it behind a gateway that has
// already authenticated the caller.
func HeaderActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw := ctx.Request().Header.Get(ActorHeader)
			if raw == "" {
				return unauthorized(ctx, ActorHeader+" header is required")
			}
			id, err := kernel.UUIDFromString(raw)
			if err == nil {
				err = id.Validate()
			}
			if err != nil {
				return unauthorized(ctx, ActorHeader+" header is not a valid actor id")
			}
			ctx.Set(actorKey, id)
			return next(ctx)
		}
	}
}

// AuthConfig configures bearer token validation against an Auth0 tenant.
type AuthConfig struct {
	Domain   string
	Audience string
}

// JWTActor validates RS256 bearer tokens issued by the Auth0 tenant and
// resolves the token subject to an actor.
func JWTActor(cfg AuthConfig, resolver SubjectResolver) (echo.MiddlewareFunc, error) {
	issuerURL, err := url.Parse("https://" + cfg.Domain + "/")
	if err != nil {
		return nil, err
	}
	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}
	return tokenActor(jwtValidator.ValidateToken, resolver), nil
}

func tokenActor(validate jwtmiddleware.ValidateToken, resolver SubjectResolver) echo.MiddlewareFunc {
	checker := jwtmiddleware.New(validate, jwtmiddleware.WithErrorHandler(
		func(w http.ResponseWriter, _ *http.Request, _ error) {
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"message":"Failed to validate JWT."}`))
		},
	))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			var result error
			inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
				if !ok {
					result = unauthorized(ctx, "token has no claims")
					return
				}
				id, err := resolver.ResolveSubject(r.Context(), claims.RegisteredClaims.Subject)
				if err != nil {
					if errors.Is(err, errs.ErrObjectNotFound) {
						result = ctx.JSON(http.StatusForbidden, Error{
							Code:    http.StatusForbidden,
							Message: "subject is not a registered actor",
						})
						return
					}
					result = err
					return
				}
				ctx.SetRequest(r)
				ctx.Set(actorKey, id)
				result = next(ctx)
			})
			checker.CheckJWT(inner).ServeHTTP(ctx.Response(), ctx.Request())
			return result
		}
	}
}

func actorFrom(ctx echo.Context) (kernel.UUID, error) {
	id, ok := ctx.Get(actorKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, errNoActor
	}
	return id, nil
}

func unauthorized(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: msg})
}
