package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/repository"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		ResetTTLMin:    30,
		BcryptCost:     4,
	}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func authRequest(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var userRowColumns = []string{"id", "email", "username", "password_hash", "created_at", "updated_at"}

// The registration response must carry the timestamps the database
// assigned, not ones made up at response time.
func TestRegisterReturnsStoredCreatedAt(t *testing.T) {
	h, mock := newAuthHandler(t)
	created := time.Date(2025, 4, 12, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("frodo@shire.net", "frodo", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=? LIMIT 1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(7, "frodo@shire.net", "frodo", "irrelevant", created, created))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(7, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := authRequest(echo.New(), `{"email":"frodo@shire.net","username":"frodo","password":"second-breakfast"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"created_at":"2025-04-12T09:30:00Z"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The reset flow logs that a token was issued but never the token
// itself; the hash is all that may be written down server-side.
func TestForgotPasswordDoesNotLogToken(t *testing.T) {
	h, mock := newAuthHandler(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=? LIMIT 1")).
		WithArgs("frodo@shire.net").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(8, "frodo@shire.net", "frodo", "irrelevant", now, now))
	mock.ExpectExec("INSERT INTO password_resets").
		WithArgs(8, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := echo.New()
	var buf bytes.Buffer
	e.Logger.SetOutput(&buf)
	e.Logger.SetLevel(log.INFO)

	c, rec := authRequest(e, `{"email":"frodo@shire.net"}`)
	require.NoError(t, h.ForgotPassword(c))
	require.Equal(t, http.StatusAccepted, rec.Code)

	logged := buf.String()
	assert.Contains(t, logged, "user_id=8")
	assert.NotContains(t, logged, "token=")
	// A raw reset token is 64 hex characters; nothing of that shape may
	// appear in the log.
	assert.NotRegexp(t, "[0-9a-f]{64}", logged)
	assert.NoError(t, mock.ExpectationsWereMet())
}
