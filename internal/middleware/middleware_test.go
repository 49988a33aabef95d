package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/logger"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/utils"
)

const secret = "test-secret"

func whoami(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user_id": UserID(c), "role": Role(c)})
}

func serve(e *echo.Echo, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, role string) map[string]string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, "u1", role, 5)
	require.NoError(t, err)
	return map[string]string{echo.HeaderAuthorization: "Bearer " + tok.Token}
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/me", whoami, JWTAuth(secret))

	rec := serve(e, http.MethodGet, "/me", bearer(t, model.RoleStaff))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"u1","role":"STAFF"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged, err := utils.NewAccessToken("other-secret", "u1", model.RoleAdmin, 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodGet, "/me", map[string]string{echo.HeaderAuthorization: "Bearer " + forged.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	g := e.Group("", JWTAuth(secret))
	g.POST("/functions", whoami, RequireRole(model.RoleStaff, model.RoleAdmin))
	g.POST("/cinemas", whoami, RequireRole(model.RoleAdmin))

	tests := []struct {
		role   string
		target string
		status int
	}{
		{model.RoleUser, "/functions", http.StatusForbidden},
		{model.RoleStaff, "/functions", http.StatusOK},
		{model.RoleAdmin, "/functions", http.StatusOK},
		{model.RoleStaff, "/cinemas", http.StatusForbidden},
		{model.RoleAdmin, "/cinemas", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.role+tt.target, func(t *testing.T) {
			rec := serve(e, http.MethodPost, tt.target, bearer(t, tt.role))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func fixClock(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	now := at
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })
	return &now
}

var rlCfg = config.RateLimitConfig{
	Enabled:        true,
	Capacity:       2,
	RefillTokens:   1,
	RefillInterval: time.Second,
	TTL:            10 * time.Minute,
	KeyStrategy:    "ip",
	Prefix:         "rl",
}

func TestTokenBucketLocalFallback(t *testing.T) {
	now := fixClock(t, time.Date(2025, 9, 25, 12, 0, 0, 0, time.UTC))
	e := echo.New()
	e.Use(NewTokenBucket(rlCfg, nil))
	e.GET("/movies", whoami)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/movies", nil).Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/movies", nil).Code)

	rec := serve(e, http.MethodGet, "/movies", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	*now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/movies", nil).Code)
}

func TestTokenBucketRedis(t *testing.T) {
	now := fixClock(t, time.Date(2025, 9, 25, 12, 0, 0, 0, time.UTC))
	rdb, mock := redismock.NewClientMock()
	e := echo.New()
	e.Use(NewTokenBucket(rlCfg, rdb))
	e.GET("/movies", whoami)

	key := "rl:ip:192.0.2.1"
	mock.ExpectEvalSha(limiterScript.Hash(), []string{key}, now.UnixMilli(), 2, 1, int64(1000), int64(600)).
		SetVal([]interface{}{int64(1), int64(1), int64(0)})
	mock.ExpectEvalSha(limiterScript.Hash(), []string{key}, now.UnixMilli(), 2, 1, int64(1000), int64(600)).
		SetVal([]interface{}{int64(0), int64(0), int64(1500)})

	rec := serve(e, http.MethodGet, "/movies", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serve(e, http.MethodGet, "/movies", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenBucketRedisErrorFailsOpen(t *testing.T) {
	fixClock(t, time.Date(2025, 9, 25, 12, 0, 0, 0, time.UTC))
	rdb, mock := redismock.NewClientMock()
	e := echo.New()
	e.Use(NewTokenBucket(rlCfg, rdb))
	e.GET("/movies", whoami)

	mock.ExpectEvalSha(limiterScript.Hash(), []string{"rl:ip:192.0.2.1"},
		timeNow().UnixMilli(), 2, 1, int64(1000), int64(600)).SetErr(assert.AnError)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/movies", nil).Code)
}

func TestCacheHitReplaysStoredResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}
	e := echo.New()
	e.GET("/genres", func(c echo.Context) error {
		t.Fatal("handler must not run on a cache hit")
		return nil
	}, NewRedisCache(cfg, rdb))

	req := httptest.NewRequest(http.MethodGet, "/genres?page=1", nil)
	key := cacheKey(cfg, e.NewContext(req, httptest.NewRecorder()))
	hdr := http.Header{}
	hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(payload))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, `{"items":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)
}

func TestRequestLoggerAndMetricsPassErrorsToEcho(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger(logger.Nop()), Metrics())
	e.GET("/boom", func(c echo.Context) error { return echo.ErrTeapot })

	rec := serve(e, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
