package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "jobify/internal/errors"
	"jobify/internal/metrics"
)

// ClaimsContextKey is the echo.Context key holding *Claims for admitted requests.
const ClaimsContextKey = "claims"

// Guard admits requests that carry a valid, unexpired bearer token and rejects
// everything else before the route handler runs.
type Guard struct {
	tokens  *JWTService
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

// NewGuard creates a Guard that verifies tokens with the same secret they were issued with.
func NewGuard(tokens *JWTService, m *metrics.Metrics, log logrus.FieldLogger) *Guard {
	return &Guard{tokens: tokens, metrics: m, log: log}
}

// Middleware returns the echo middleware for a protected route group.
// A missing or non-Bearer Authorization header fails during extraction, so no
// signature work is done for it.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  ClaimsContextKey,
		ParseTokenFunc: func(_ echo.Context, auth string) (interface{}, error) {
			return g.tokens.Verify(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims := c.Get(ClaimsContextKey).(*Claims)
			req := c.Request()
			c.SetRequest(req.WithContext(WithSubject(req.Context(), claims.Subject)))
		},
		ErrorHandler: g.reject,
	})
}

func (g *Guard) reject(c echo.Context, err error) error {
	var cause error
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		cause = apperrors.ErrTokenExpired
	case errors.Is(err, apperrors.ErrInvalidToken):
		cause = apperrors.ErrInvalidToken
	default:
		// only the extractor can fail without one of our token errors
		cause = apperrors.ErrMissingToken
	}

	httpErr := apperrors.MapErrorToHTTP(cause)
	g.metrics.GuardRejection(httpErr.Code)
	if g.log != nil {
		g.log.WithFields(logrus.Fields{
			"path":  c.Request().URL.Path,
			"cause": httpErr.Code,
		}).Debug("request rejected by token guard")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
