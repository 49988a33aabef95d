package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/iliyamo/cinema-scheduler/docs"
)

// RegisterSwagger serves the Swagger UI at /swagger/index.html and the
// OpenAPI document at /swagger/doc.json.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
