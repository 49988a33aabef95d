// Package handler holds the HTTP handlers. Handlers bind and validate the
// request, call a repository or the scheduler and translate sentinel errors
// into status codes. Every error body has the shape {"error": "..."}.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
)

const requestTimeout = 5 * time.Second

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// pageRequest reads ?page=&size=. Missing or malformed values fall back to
// the defaults.
func pageRequest(c echo.Context) model.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return model.NewPageRequest(page, size)
}

// bind decodes the body into dst and runs the echo validator. When it
// returns false the 400 response has been written and the handler returns
// err as is.
func bind(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(dst); err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verrs})
		}
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return true, nil
}

// respondErr maps repository sentinels to status codes. Anything else is a
// 500 with the given message.
func respondErr(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrDirectorNotFound),
		errors.Is(err, repository.ErrGenreNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrCinemaNotFound),
		errors.Is(err, repository.ErrAuditoriumNotFound),
		errors.Is(err, repository.ErrFunctionNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNameTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "resource is still referenced"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "request timed out"})
	}
	c.Logger().Errorf("%s: %v", fallback, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}

func respondPage[T any](c echo.Context, items []T, total int, req model.PageRequest) error {
	return c.JSON(http.StatusOK, model.NewPage(items, total, req))
}
