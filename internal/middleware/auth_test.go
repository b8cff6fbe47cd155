package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/utils"
)

const testSecret = "test-secret"

func echoHandler(t *testing.T) echo.HandlerFunc {
	t.Helper()
	return func(c echo.Context) error {
		uid, ok := UserID(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"user_id": uid})
	}
}

func doRequest(t *testing.T, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	decorate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(echoHandler(t))
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuthBearerHeader(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, 5)
	require.NoError(t, err)

	rec := doRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+access.Token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
}

func TestJWTAuthCookieFallback(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 7, 5)
	require.NoError(t, err)

	rec := doRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: access.Token})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := doRequest(t, func(r *http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	access, err := utils.NewAccessToken("another-secret", 42, 5)
	require.NoError(t, err)

	rec := doRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+access.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, -5)
	require.NoError(t, err)

	rec := doRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+access.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec := doRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not.a.jwt")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
