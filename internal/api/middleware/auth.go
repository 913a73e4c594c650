package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

const (
	sessionContextKey = "session"
	roleContextKey    = "role"

	// SessionCookieName carries the token for browser page navigation,
	// where no Authorization header is available.
	SessionCookieName = "yala_session"
)

// SessionFromContext returns the session resolved by Session or Auth, or
// nil for an anonymous request.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// Session resolves the request's session if a valid token is present and
// injects it into context. It never rejects: page routes stay reachable
// anonymously so the guard can decide the redirect.
func Session(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess := resolveSession(c, jwtSecret, sessions); sess != nil {
				c.Set(sessionContextKey, sess)
				c.Set(roleContextKey, string(sess.Role()))
			}
			return next(c)
		}
	}
}

// Auth requires a valid session and injects it into context. API routes use
// this; a missing or revoked token is a hard 401.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := resolveSession(c, jwtSecret, sessions)
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
			}

			c.Set(sessionContextKey, sess)
			c.Set(roleContextKey, string(sess.Role()))
			return next(c)
		}
	}
}

// resolveSession parses the bearer token (header first, cookie fallback),
// verifies the signature and looks the session up in the store so sign-out
// revocation is honored before the token expires.
func resolveSession(c echo.Context, jwtSecret string, sessions ports.SessionStore) *domain.Session {
	token := bearerToken(c)
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil
	}

	sess, err := sessions.Get(c.Request().Context(), sid)
	if err != nil {
		return nil
	}
	return &sess
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
