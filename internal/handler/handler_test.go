package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// call runs h against a fresh echo context. params are name, value pairs for
// path parameters.
func call(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := newRequest(method, target, body)
	rec := newRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	require.NoError(t, h(c))
	return rec
}

func newRequest(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newRecorder() *httptest.ResponseRecorder { return httptest.NewRecorder() }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestValidatorReportsJSONFieldNames(t *testing.T) {
	err := NewValidator().Validate(&createDirectorReq{Name: "   "})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "name", verrs[0].Field)
}

func TestRespondErrTimeout(t *testing.T) {
	rec := call(t, func(c echo.Context) error {
		return respondErr(c, context.DeadlineExceeded, "x")
	}, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestPageRequestDefaults(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=abc&size=500", nil), httptest.NewRecorder())
	req := pageRequest(c)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 100, req.Size)
}
