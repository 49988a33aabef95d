package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/handler"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/utils"
)

const secret = "router-secret"

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// newEcho wires every route with nil stores. Requests that get past the
// auth middleware would panic, so these tests only exercise rejections and
// the route table.
func newEcho() *echo.Echo {
	e := echo.New()
	h := Handlers{
		Auth:        handler.NewAuthHandler(config.Config{JWTSecret: secret}, nil, nil),
		Directors:   handler.NewDirectorHandler(nil),
		Genres:      handler.NewGenreHandler(nil),
		Movies:      handler.NewMovieHandler(nil, nil),
		Cinemas:     handler.NewCinemaHandler(nil, nil),
		Auditoriums: handler.NewAuditoriumHandler(nil),
		Functions:   handler.NewFunctionHandler(nil),
	}
	RegisterRoutes(e, nil)
	Register(e, h, secret, passThrough)
	return e
}

func TestRoutesRegistered(t *testing.T) {
	e := newEcho()
	have := map[string]bool{}
	for _, r := range e.Routes() {
		have[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /metrics",
		"POST /v1/auth/register",
		"GET /v1/me",
		"GET /v1/genres/by-name/:name",
		"GET /v1/genres/:id/movies",
		"GET /v1/movies/search",
		"GET /v1/cinemas/:id/auditoriums",
		"POST /v1/functions",
		"POST /v1/functions/check",
		"GET /v1/functions/all",
		"GET /v1/functions",
		"GET /v1/functions/active",
		"GET /swagger/*",
		"PUT /v1/functions/:id",
		"DELETE /v1/functions/:id",
		"GET /v1/auditoriums/:id/functions",
	} {
		assert.True(t, have[want], "missing route %s", want)
	}
}

func TestWriteRoutesAreGuarded(t *testing.T) {
	e := newEcho()
	token := func(role string) string {
		tok, err := utils.NewAccessToken(secret, "u1", role, 5)
		require.NoError(t, err)
		return "Bearer " + tok.Token
	}

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"anonymous director write", http.MethodPost, "/v1/directors", "", http.StatusUnauthorized},
		{"user director write", http.MethodPost, "/v1/directors", token(model.RoleUser), http.StatusForbidden},
		{"staff cinema write", http.MethodPost, "/v1/cinemas", token(model.RoleStaff), http.StatusForbidden},
		{"user schedules function", http.MethodPost, "/v1/functions", token(model.RoleUser), http.StatusForbidden},
		{"anonymous active listing", http.MethodGet, "/v1/functions/active", "", http.StatusUnauthorized},
		{"user active listing", http.MethodGet, "/v1/functions/active", token(model.RoleUser), http.StatusForbidden},
		{"anonymous function root listing", http.MethodGet, "/v1/functions", "", http.StatusUnauthorized},
		{"user function root listing", http.MethodGet, "/v1/functions", token(model.RoleUser), http.StatusForbidden},
		{"anonymous cancel", http.MethodDelete, "/v1/functions/f1", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newEcho().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSwaggerDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	newEcho().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	for path, method := range map[string]string{
		"/v1/functions":       "post",
		"/v1/functions/check": "post",
		"/v1/functions/{id}":  "put",
		"/v1/auth/login":      "post",
		"/healthz":            "get",
	} {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, "%s %s", method, path)
	}
}
