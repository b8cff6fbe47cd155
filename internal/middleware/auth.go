package middleware // reusable HTTP middleware for the API

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AccessTokenCookie is the HTTP-only cookie the browser flow stores the
// access token in. API clients send the same token as a Bearer header.
const AccessTokenCookie = "access_token"

// JWTAuth returns an Echo middleware that validates an HS256 access
// token and injects its subject into the request context. The token is
// read from the Authorization header first and falls back to the
// session cookie, so both API clients and browsers pass through the
// same gate. Handlers behind it read the caller via c.Get("user_id"),
// which holds a uint64.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":   "unauthorized",
					"message": "authentication required",
					"status":  http.StatusUnauthorized,
				})
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":   "unauthorized",
					"message": "invalid or expired token",
					"status":  http.StatusUnauthorized,
				})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":   "unauthorized",
					"message": "invalid token claims",
					"status":  http.StatusUnauthorized,
				})
			}
			uid, ok := subjectID(claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":   "unauthorized",
					"message": "invalid token subject",
					"status":  http.StatusUnauthorized,
				})
			}

			c.Set("user_id", uid)
			return next(c)
		}
	}
}

// tokenFromRequest extracts the raw token from the Bearer header or,
// failing that, from the session cookie.
func tokenFromRequest(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if ck, err := c.Cookie(AccessTokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	return ""
}

// subjectID coerces the sub claim into a user id. JSON numbers decode
// as float64, so that is the common case.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		if v < 1 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, v >= 1
	case int64:
		if v < 1 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// UserID reads the authenticated user id set by JWTAuth. The second
// return is false when the route was not wrapped by the middleware.
func UserID(c echo.Context) (uint64, bool) {
	v, ok := c.Get("user_id").(uint64)
	return v, ok
}
