package validation

import "strings"

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Validate normalizes and checks the registration payload.
func (r *RegisterRequest) Validate() Errors {
	errs := Errors{}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)

	if r.Email == "" {
		errs.Add("email", "email is required")
	} else if !validEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	} else if len(r.Password) > 100 {
		errs.Add("password", "password cannot exceed 100 characters")
	}
	if r.Username == "" {
		errs.Add("username", "username is required")
	} else if len(r.Username) > 50 {
		errs.Add("username", "username cannot exceed 50 characters")
	}
	return errs
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (r *LoginRequest) Validate() Errors {
	errs := Errors{}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		errs.Add("email", "email is required")
	} else if !validEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Password == "" {
		errs.Add("password", "password is required")
	}
	return errs
}

// ForgotPasswordRequest is the body of POST /v1/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() Errors {
	errs := Errors{}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		errs.Add("email", "email is required")
	} else if !validEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	return errs
}

// ResetPasswordRequest is the body of POST /v1/auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r *ResetPasswordRequest) Validate() Errors {
	errs := Errors{}
	r.Token = strings.TrimSpace(r.Token)
	if r.Token == "" {
		errs.Add("token", "token is required")
	}
	if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	} else if len(r.Password) > 100 {
		errs.Add("password", "password cannot exceed 100 characters")
	}
	return errs
}
