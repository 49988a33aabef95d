// Package router maps URLs to handlers and attaches the auth, role and cache
// middleware per route group.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/cinema-scheduler/internal/handler"
	"github.com/iliyamo/cinema-scheduler/internal/middleware"
)

// Handlers groups everything the API routes need.
type Handlers struct {
	Auth        *handler.AuthHandler
	Directors   *handler.DirectorHandler
	Genres      *handler.GenreHandler
	Movies      *handler.MovieHandler
	Cinemas     *handler.CinemaHandler
	Auditoriums *handler.AuditoriumHandler
	Functions   *handler.FunctionHandler
}

// RegisterRoutes registers the unversioned operational endpoints and the API
// docs.
func RegisterRoutes(e *echo.Echo, deps map[string]handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(deps))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	RegisterSwagger(e)
}

// Register mounts the whole /v1 API. cache wraps public catalog reads only.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	RegisterAuth(e, h.Auth, jwtSecret)
	RegisterCatalog(e, h, jwtSecret, cache)
	RegisterFunctions(e, h.Functions, jwtSecret)
}

// RegisterAuth registers the token endpoints under /v1/auth and /v1/me.
// Logout stays public so a client with an expired access token can still
// revoke its refresh token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}
