package titulacion

import (
	"context"

	"github.com/goliatone/go-router"
	"github.com/uide-sgt/titulacion-api/middleware/jwtware"
)

// RouteAuthenticator bridges the Authenticator into the HTTP layer: it
// builds the gate middleware for protected route groups.
type RouteAuthenticator struct {
	auth   Authenticator
	cfg    Config
	Logger Logger
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) *RouteAuthenticator {
	return &RouteAuthenticator{
		auth:   auther,
		cfg:    cfg,
		Logger: defLogger{},
	}
}

func (a *RouteAuthenticator) WithLogger(l Logger) *RouteAuthenticator {
	a.Logger = l
	return a
}

// ProtectedRoute returns the gate middleware: bearer extraction, token
// validation, claims into the request context. It runs once per matching
// request with no caching of the verification result.
func (a *RouteAuthenticator) ProtectedRoute() router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		TokenValidator: validatorAdapter{a.auth.TokenService()},
		ContextKey:     a.cfg.GetContextKey(),
		TokenLookup:    a.cfg.GetTokenLookup(),
		AuthScheme:     a.cfg.GetAuthScheme(),
		ErrorHandler:   a.MakeAuthErrorHandler(),
		ContextEnricher: func(ctx context.Context, claims jwtware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(ctx, ac)
			}
			return ctx
		},
	})
}

// MakeAuthErrorHandler collapses every gate failure (missing header,
// malformed token, bad signature, expiry) into the same 401 JSON response.
func (a *RouteAuthenticator) MakeAuthErrorHandler() func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		switch {
		case IsTokenExpiredError(err):
			a.Logger.Debug("rejected expired token", "error", err)
		case IsMalformedError(err):
			a.Logger.Debug("rejected malformed or missing token", "error", err)
		default:
			a.Logger.Warn("token verification failed", "error", err)
		}

		return ctx.JSON(router.StatusUnauthorized, map[string]string{
			"message": "No autenticado",
		})
	}
}

// validatorAdapter lifts the root TokenValidator into the jwtware contract.
type validatorAdapter struct {
	validator TokenValidator
}

func (v validatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
