package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"riverside/config"
	otelMocks "riverside/infras/otel/mocks"
	cacheMocks "riverside/shared/cache/mocks"
	"riverside/shared/constant"
	"riverside/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		enable    bool
		count     int64
		cacheErr  error
		code      int
		remaining string
	}{
		{name: "disabled", enable: false, code: http.StatusNoContent},
		{name: "first request", enable: true, count: 1, code: http.StatusNoContent, remaining: "1"},
		{name: "last allowed", enable: true, count: 2, code: http.StatusNoContent, remaining: "0"},
		{name: "over the limit", enable: true, count: 3, code: http.StatusTooManyRequests, remaining: "0"},
		{name: "redis down", enable: true, cacheErr: errors.New("connection refused"), code: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.enable {
				redisCache.EXPECT().
					Incr(gomock.Any(), "limiter:10.0.0.1:curl/8.0", 60).
					Return(tt.count, tt.cacheErr)
			}

			mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(tt.enable), redisCache)

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "curl/8.0")

			rec := httptest.NewRecorder()
			mw.RateLimit()(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.remaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestRequestID(t *testing.T) {
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	rec := httptest.NewRecorder()
	mw.RequestID(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(constant.RequestHeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constant.RequestHeaderRequestID, "req-42")

	rec = httptest.NewRecorder()
	mw.RequestID(ok).ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(constant.RequestHeaderRequestID))
}

func TestTracing(t *testing.T) {
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	rec := httptest.NewRecorder()
	mw.Tracing(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
