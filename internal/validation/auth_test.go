package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("valid input is normalized", func(t *testing.T) {
		req := RegisterRequest{Email: "  User@Example.COM ", Password: "hunter22", Username: " alice "}
		errs := req.Validate()
		assert.True(t, errs.Empty())
		assert.Equal(t, "user@example.com", req.Email)
		assert.Equal(t, "alice", req.Username)
	})

	t.Run("missing everything", func(t *testing.T) {
		req := RegisterRequest{}
		errs := req.Validate()
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
		assert.Contains(t, errs, "username")
	})

	t.Run("bad email format", func(t *testing.T) {
		req := RegisterRequest{Email: "not-an-email", Password: "hunter22", Username: "alice"}
		errs := req.Validate()
		assert.Contains(t, errs, "email")
	})

	t.Run("short password", func(t *testing.T) {
		req := RegisterRequest{Email: "a@b.co", Password: "short", Username: "alice"}
		errs := req.Validate()
		assert.Contains(t, errs, "password")
	})
}

func TestLoginRequestValidate(t *testing.T) {
	req := LoginRequest{Email: "A@B.CO", Password: "x"}
	errs := req.Validate()
	assert.True(t, errs.Empty())
	assert.Equal(t, "a@b.co", req.Email)

	req = LoginRequest{}
	errs = req.Validate()
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestResetPasswordRequestValidate(t *testing.T) {
	req := ResetPasswordRequest{Token: " tok ", Password: "longenough"}
	errs := req.Validate()
	assert.True(t, errs.Empty())
	assert.Equal(t, "tok", req.Token)

	req = ResetPasswordRequest{Token: "", Password: "short"}
	errs = req.Validate()
	assert.Contains(t, errs, "token")
	assert.Contains(t, errs, "password")
}
