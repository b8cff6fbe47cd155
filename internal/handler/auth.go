package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/middleware"
	"github.com/deckforge/deckforge/internal/repository"
	"github.com/deckforge/deckforge/internal/utils"
	"github.com/deckforge/deckforge/internal/validation"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	User    userJSON  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// issuePair creates an access/refresh pair, persists the refresh hash
// and sets the session cookie. remember extends the cookie to the
// refresh lifetime; otherwise it dies with the access token.
func (h *AuthHandler) issuePair(c echo.Context, userID uint64, remember bool) (utils.AccessToken, utils.OpaqueToken, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return utils.AccessToken{}, utils.OpaqueToken{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return utils.AccessToken{}, utils.OpaqueToken{}, err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashTokenRaw(refresh.Raw), refresh.Exp); err != nil {
		return utils.AccessToken{}, utils.OpaqueToken{}, err
	}

	cookieExp := access.Exp
	if remember {
		cookieExp = refresh.Exp
	}
	h.setAuthCookie(c, access.Token, cookieExp)
	return access, refresh, nil
}

func (h *AuthHandler) setAuthCookie(c echo.Context, token string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
	})
}

// Register creates a user and signs them in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req validation.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Username, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusConflict, "email_exists", "an account with this email already exists")
		}
		return failRepo(c, err, "user")
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return failRepo(c, err, "user")
	}

	access, refresh, err := h.issuePair(c, uid, false)
	if err != nil {
		return failRepo(c, err, "session")
	}

	return c.JSON(http.StatusCreated, authResp{
		User:    toUserJSON(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Login verifies credentials and returns a fresh token pair. A wrong
// password and an unknown email produce the same 401 so the endpoint
// does not leak which addresses are registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req validation.LoginRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		}
		return failRepo(c, err, "user")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	}

	access, refresh, err := h.issuePair(c, u.ID, req.RememberMe)
	if err != nil {
		return failRepo(c, err, "session")
	}

	return c.JSON(http.StatusOK, authResp{
		User:    toUserJSON(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Refresh rotates a refresh token: the presented token is revoked and
// a new pair is issued, so each refresh token works exactly once.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "invalid_body", "refresh_token is required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hash := utils.HashTokenRaw(req.RefreshToken)
	uid, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "invalid_token", "refresh token is invalid or expired")
		}
		return failRepo(c, err, "session")
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return failRepo(c, err, "session")
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return failRepo(c, err, "user")
	}

	access, refresh, err := h.issuePair(c, uid, false)
	if err != nil {
		return failRepo(c, err, "session")
	}

	return c.JSON(http.StatusOK, authResp{
		User:    toUserJSON(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Logout revokes every refresh token of the caller and clears the
// session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return failRepo(c, err, "session")
	}
	h.clearAuthCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword stores a hashed reset token when the account exists.
// The response is 202 either way so the endpoint cannot be used to
// enumerate registered addresses. The raw token never reaches the log;
// delivery happens out of band.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req validation.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	accepted := func() error {
		return c.JSON(http.StatusAccepted, echo.Map{
			"message": "if the account exists, a reset token has been issued",
		})
	}

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return accepted()
		}
		return failRepo(c, err, "user")
	}

	reset, err := utils.NewResetToken(h.Cfg.ResetTTLMin)
	if err != nil {
		return failRepo(c, err, "reset token")
	}
	if err := h.Tokens.StoreReset(ctx, u.ID, utils.HashTokenRaw(reset.Raw), reset.Exp); err != nil {
		return failRepo(c, err, "reset token")
	}

	c.Logger().Infof("password reset issued for user_id=%d expires=%s", u.ID, reset.Exp.Format(time.RFC3339))
	return accepted()
}

// ResetPassword consumes a single-use reset token, rehashes the
// password and revokes all standing refresh tokens so stolen sessions
// die with the old credential.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req validation.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return failBind(c)
	}
	if errs := req.Validate(); !errs.Empty() {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Tokens.ConsumeReset(ctx, utils.HashTokenRaw(req.Token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusBadRequest, "invalid_token", "reset token is invalid, expired or already used")
		}
		return failRepo(c, err, "reset token")
	}

	if err := h.Users.UpdatePassword(ctx, uid, req.Password, h.Cfg.BcryptCost); err != nil {
		return failRepo(c, err, "user")
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return failRepo(c, err, "session")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password has been reset"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return failRepo(c, err, "user")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserJSON(u)})
}
