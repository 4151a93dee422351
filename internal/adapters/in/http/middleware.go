package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	actorKey  = "actor"
	claimsKey = "claims"
)

// Authenticator resolves the bearer token of a request into an access.Actor.
type Authenticator struct {
	tokens      ports.TokenService
	revocations ports.TokenRevocations
}

func NewAuthenticator(tokens ports.TokenService, revocations ports.TokenRevocations) Authenticator {
	return Authenticator{tokens: tokens, revocations: revocations}
}

// Middleware rejects requests without a valid, unrevoked bearer token.
func (a Authenticator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return errs.NewUnauthenticatedError("missing bearer token")
		}

		claims, err := a.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			return err
		}

		revoked, err := a.revocations.IsRevoked(c.Request().Context(), claims.TokenID)
		if err != nil {
			return err
		}
		if revoked {
			return errs.NewUnauthenticatedError("token has been revoked")
		}

		userID, err := kernel.UUIDFromString(claims.UserID)
		if err != nil {
			return errs.NewUnauthenticatedErrorWithCause("invalid token subject", err)
		}

		c.Set(claimsKey, claims)
		c.Set(actorKey, access.Actor{
			UserID:    userID,
			Username:  claims.Username,
			Role:      claims.Role,
			IPAddress: c.RealIP(),
		})
		return next(c)
	}
}

// RequirePermission allows the request only when the actor's role may perform
// action on resource.
func RequirePermission(policy *access.Policy, resource access.Resource, action access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFrom(c)
			if err != nil {
				return err
			}
			if err := policy.Authorize(actor, resource, action); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (access.Actor, error) {
	actor, ok := c.Get(actorKey).(access.Actor)
	if !ok {
		return access.Actor{}, errs.NewUnauthenticatedError("request is not authenticated")
	}
	return actor, nil
}

func claimsFrom(c echo.Context) (ports.Claims, error) {
	claims, ok := c.Get(claimsKey).(ports.Claims)
	if !ok {
		return ports.Claims{}, errs.NewUnauthenticatedError("request is not authenticated")
	}
	return claims, nil
}

// RequestValidator checks requests against the OpenAPI document. Requests for
// paths the document does not describe pass through untouched.
type RequestValidator struct {
	router routers.Router
}

func NewRequestValidator(doc *openapi3.T) (RequestValidator, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return RequestValidator{}, err
	}
	return RequestValidator{router: router}, nil
}

func (v RequestValidator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		route, pathParams, err := v.router.FindRoute(req)
		if err != nil {
			var routeErr *routers.RouteError
			if errors.As(err, &routeErr) {
				return next(c)
			}
			return err
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("request", err)
		}
		return next(c)
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if actor, err := actorFrom(c); err == nil {
				attrs = append(attrs, "user", actor.Username)
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "Request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}

// CORS allows the configured front-end origin with credentials.
func CORS(origin string) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	})
}
