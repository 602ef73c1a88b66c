package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.convislabs.com/registration/core"
)

type SessionContextKeyType string

const DEFAULT_SESSION_CONTEXT_KEY SessionContextKeyType = "session"

type FindAuthTokenFunc func(r *http.Request) string

// FindAuthToken checks the Authorization header first, then the session
// cookie, then the query parameter.
func FindAuthToken(r *http.Request, cookieName string, queryParam string) string {
	authHeader := ParseAuthTokenHeader(r.Header)

	if authHeader != "" {
		return authHeader
	}

	if cookie, err := r.Cookie(cookieName); cookie != nil && err == nil {
		return cookie.Value
	}

	return r.FormValue(queryParam)
}

func ParseAuthTokenHeader(headers http.Header) string {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	authHeader = strings.TrimPrefix(authHeader, "Bearer ")
	authHeader = strings.TrimPrefix(authHeader, "bearer ")

	return authHeader
}

type AuthMiddlewareOptions struct {
	Context   core.Context
	FindToken FindAuthTokenFunc
}

func AuthMiddleware(options AuthMiddlewareOptions) func(http.Handler) http.Handler {
	config := options.Context.Config()

	if options.FindToken == nil {
		options.FindToken = func(r *http.Request) string {
			return FindAuthToken(r, core.AUTH_COOKIE_NAME, core.AUTH_TOKEN_NAME)
		}
	}

	secret := []byte(config.Config().Core.JWT.Secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authToken := options.FindToken(r)

			if authToken == "" {
				http.Error(w, core.ErrJWTInvalid.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := core.JWTVerifyToken(authToken, secret)
			if err != nil {
				http.Error(w, core.ErrJWTInvalid.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), DEFAULT_SESSION_CONTEXT_KEY, claims)
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext returns the verified claims stored by
// AuthMiddleware, or nil when the request was not authenticated.
func GetSessionFromContext(ctx context.Context) *core.SessionClaims {
	claims, ok := ctx.Value(DEFAULT_SESSION_CONTEXT_KEY).(*core.SessionClaims)
	if !ok {
		return nil
	}

	return claims
}
