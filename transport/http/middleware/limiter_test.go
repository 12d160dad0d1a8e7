package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stayengine/config"
	otelMocks "stayengine/infras/otel/mocks"
	cacheMocks "stayengine/shared/cache/mocks"
	"stayengine/shared/constant"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		count         int64
		err           error
		wantCode      int
		wantRemaining string
		wantRetry     string
	}{
		{name: "disabled", wantCode: http.StatusOK},
		{name: "first request", enabled: true, count: 1, wantCode: http.StatusOK, wantRemaining: "2"},
		{name: "last allowed request", enabled: true, count: 3, wantCode: http.StatusOK, wantRemaining: "0"},
		{name: "over the limit", enabled: true, count: 4, wantCode: http.StatusTooManyRequests, wantRemaining: "0", wantRetry: "60"},
		{name: "counter unavailable fails open", enabled: true, err: errors.New("connection refused"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			if tt.enabled {
				cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7", 60).Return(tt.count, tt.err)
			}

			m := NewAppMiddleware(otelMocks.NewOtel(), cfg, cache)
			handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
			req.RemoteAddr = "10.0.0.7:51234"

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
			assert.Equal(t, tt.wantRetry, rec.Header().Get(headerRetryAfter))
		})
	}
}
