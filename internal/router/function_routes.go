package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/handler"
	"github.com/iliyamo/cinema-scheduler/internal/middleware"
	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// RegisterFunctions registers the scheduling endpoints. None of them go
// through the response cache.
func RegisterFunctions(e *echo.Echo, f *handler.FunctionHandler, jwtSecret string) {
	e.GET("/v1/functions/all", f.List)
	e.GET("/v1/functions/:id", f.Get)
	e.GET("/v1/auditoriums/:id/functions", f.ByAuditorium)

	g := e.Group("/v1/functions",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff, model.RoleAdmin),
	)
	g.GET("", f.Active)
	g.GET("/active", f.Active)
	g.POST("", f.Create)
	g.POST("/check", f.Check)
	g.PUT("/:id", f.Update)
	g.DELETE("/:id", f.Delete)
}
