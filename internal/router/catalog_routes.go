package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/middleware"
	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// RegisterCatalog registers directors, genres, movies, cinemas and
// auditoriums. Reads are public and cached; writes need STAFF or ADMIN,
// except cinemas which need ADMIN.
func RegisterCatalog(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1", cache)

	staff := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff, model.RoleAdmin),
	)
	admin := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Directors ----
	pub.GET("/directors", h.Directors.List)
	pub.GET("/directors/:id", h.Directors.Get)
	staff.POST("/directors", h.Directors.Create)
	staff.PUT("/directors/:id", h.Directors.Update)
	staff.DELETE("/directors/:id", h.Directors.Delete)

	// ---- Genres ----
	pub.GET("/genres", h.Genres.List)
	pub.GET("/genres/:id", h.Genres.Get)
	pub.GET("/genres/by-name/:name", h.Genres.GetByName)
	pub.GET("/genres/:id/movies", h.Movies.ListByGenre)
	staff.POST("/genres", h.Genres.Create)
	staff.PUT("/genres/:id", h.Genres.Update)
	staff.DELETE("/genres/:id", h.Genres.Delete)

	// ---- Movies ----
	pub.GET("/movies", h.Movies.List)
	pub.GET("/movies/search", h.Movies.Search)
	pub.GET("/movies/by-title/:title", h.Movies.GetByTitle)
	pub.GET("/movies/:id", h.Movies.Get)
	staff.POST("/movies", h.Movies.Create)
	staff.PUT("/movies/:id", h.Movies.Update)
	staff.DELETE("/movies/:id", h.Movies.Delete)

	// ---- Cinemas ----
	pub.GET("/cinemas", h.Cinemas.List)
	pub.GET("/cinemas/:id", h.Cinemas.Get)
	pub.GET("/cinemas/:id/auditoriums", h.Cinemas.ListAuditoriums)
	admin.POST("/cinemas", h.Cinemas.Create)
	admin.PUT("/cinemas/:id", h.Cinemas.Update)
	admin.DELETE("/cinemas/:id", h.Cinemas.Delete)

	// ---- Auditoriums ----
	pub.GET("/auditoriums", h.Auditoriums.List)
	pub.GET("/auditoriums/:id", h.Auditoriums.Get)
	staff.POST("/auditoriums", h.Auditoriums.Create)
	staff.PUT("/auditoriums/:id", h.Auditoriums.Update)
	staff.DELETE("/auditoriums/:id", h.Auditoriums.Delete)
}
