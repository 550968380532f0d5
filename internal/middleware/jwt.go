package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SubjectContextKey is the echo context key holding the authenticated username.
const SubjectContextKey = "subject"

// Authorizer turns a raw token into the subject it was issued to.
type Authorizer interface {
	Authorize(token string) (string, error)
}

// RequireToken rejects requests without a valid token with 401. The token is
// read from cookieName first, then from an "Authorization: Bearer" header.
func RequireToken(authorizer Authorizer, cookieName string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + cookieName + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  SubjectContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return authorizer.Authorize(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Debug().Err(err).Str("uri", c.Request().RequestURI).Msg("[RequireToken] Request rejected")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		},
	})
}

// SubjectFromContext returns the username stored by RequireToken, or "".
func SubjectFromContext(c echo.Context) string {
	subject, _ := c.Get(SubjectContextKey).(string)
	return subject
}
