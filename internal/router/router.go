// Package router maps HTTP routes onto handlers and decides which
// middleware guards each group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/handler"
	"github.com/deckforge/deckforge/internal/middleware"
)

// RegisterRoutes registers the unauthenticated infrastructure routes.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitors probe this endpoint.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Register, login,
// refresh and the password-reset flow are open; logout and /v1/me need
// a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.POST("/auth/logout", a.Logout)
	auth.GET("/me", a.Me)
}

// RegisterDecks registers the deck aggregate and its card entries.
// Everything here is owner-scoped, so the whole group sits behind the
// JWT middleware.
func RegisterDecks(e *echo.Echo, d *handler.DeckHandler, dc *handler.DeckCardHandler, jwtSecret string) {
	g := e.Group("/v1/decks", middleware.JWTAuth(jwtSecret))

	g.GET("", d.List)
	g.POST("", d.Create)
	g.GET("/:id", d.Get)
	g.PUT("/:id", d.Update)
	g.DELETE("/:id", d.Delete)
	g.GET("/:id/statistics", d.Statistics)

	g.GET("/:id/cards", dc.List)
	g.POST("/:id/cards", dc.Add)
	g.PUT("/:id/cards/:cardId", dc.Update)
	g.DELETE("/:id/cards/:cardId", dc.Remove)
}

// RegisterCards registers the local card store. Reads and writes both
// require a session; the store only exists to back deck building.
func RegisterCards(e *echo.Echo, h *handler.CardHandler, jwtSecret string) {
	g := e.Group("/v1/cards", middleware.JWTAuth(jwtSecret))

	g.POST("", h.Create)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterCatalog registers the external catalog proxy. The routes are
// public and read-only; the supplied middleware (normally the Redis
// response cache) wraps the whole group.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/catalog", mw...)

	g.GET("/search", h.Search)
	g.GET("/cards/random", h.Random)
	g.GET("/cards/:id", h.Card)
}
