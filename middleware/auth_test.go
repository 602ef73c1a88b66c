package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.convislabs.com/registration/config"
	"go.convislabs.com/registration/core"
)

const testJWTSecret = "test-secret"

type staticConfig struct {
	cfg *config.Config
}

func (s *staticConfig) Init() error            { return nil }
func (s *staticConfig) Config() *config.Config { return s.cfg }
func (s *staticConfig) Save() error            { return nil }

func newTestContext(t *testing.T) core.Context {
	t.Helper()

	cm := &staticConfig{cfg: &config.Config{}}
	cm.cfg.Core.JWT.Secret = testJWTSecret

	ctx, err := core.NewContext(cm, core.NewLogger(nil))
	require.NoError(t, err)

	return ctx
}

func TestParseAuthTokenHeader(t *testing.T) {
	headers := http.Header{}
	assert.Empty(t, ParseAuthTokenHeader(headers))

	headers.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ParseAuthTokenHeader(headers))

	headers.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", ParseAuthTokenHeader(headers))
}

func TestFindAuthTokenPrecedence(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?auth_token=fromquery", nil)
	r.AddCookie(&http.Cookie{Name: core.AUTH_COOKIE_NAME, Value: "fromcookie"})
	r.Header.Set("Authorization", "Bearer fromheader")

	assert.Equal(t, "fromheader", FindAuthToken(r, core.AUTH_COOKIE_NAME, core.AUTH_TOKEN_NAME))

	r.Header.Del("Authorization")
	assert.Equal(t, "fromcookie", FindAuthToken(r, core.AUTH_COOKIE_NAME, core.AUTH_TOKEN_NAME))

	r = httptest.NewRequest(http.MethodGet, "/?auth_token=fromquery", nil)
	assert.Equal(t, "fromquery", FindAuthToken(r, core.AUTH_COOKIE_NAME, core.AUTH_TOKEN_NAME))
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	ctx := newTestContext(t)
	handler := AuthMiddleware(AuthMiddlewareOptions{Context: ctx})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	ctx := newTestContext(t)
	handler := AuthMiddleware(AuthMiddlewareOptions{Context: ctx})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareStoresClaims(t *testing.T) {
	ctx := newTestContext(t)

	token, err := core.JWTGenerateToken([]byte(testJWTSecret), "65f1a0000000000000000001", "user@example.com")
	require.NoError(t, err)

	var claims *core.SessionClaims
	handler := AuthMiddleware(AuthMiddlewareOptions{Context: ctx})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims = GetSessionFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "65f1a0000000000000000001", claims.ClientID)
}

func TestGetSessionFromContextMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetSessionFromContext(r.Context()))
}
