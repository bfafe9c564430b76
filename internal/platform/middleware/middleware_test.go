// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	"github.com/taibuivan/vidtube/internal/platform/sec"
)

func newCodec(t *testing.T) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec(
		"access-secret-access-secret-access-secret",
		"refresh-secret-refresh-secret-refresh-secret",
		15*time.Minute, 240*time.Hour, "vidtube.test",
	)
	require.NoError(t, err)
	return codec
}

// echoActor writes the resolved identity id, or "anonymous".
var echoActor = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	actor := ctxutil.ActorID(request.Context())
	if actor == "" {
		actor = "anonymous"
	}
	_, _ = writer.Write([]byte(actor))
})

func TestAuthenticate(t *testing.T) {
	codec := newCodec(t)
	access, _, err := codec.IssueAccessToken("user-1")
	require.NoError(t, err)
	refresh, _, err := codec.IssueRefreshToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{"anonymous", func(r *http.Request) {}, http.StatusOK, "anonymous"},
		{"bearer_header", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+access)
		}, http.StatusOK, "user-1"},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: access})
		}, http.StatusOK, "user-1"},
		{"refresh_token_rejected", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+refresh)
		}, http.StatusUnauthorized, ""},
		{"malformed_header", func(r *http.Request) {
			r.Header.Set("Authorization", "Token abc")
		}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(request)
			recorder := httptest.NewRecorder()

			middleware.Authenticate(codec)(echoActor).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(echoActor)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "user-2"}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-2", recorder.Body.String())
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

func TestRateLimit_RejectsBurstOverflow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 1)(echoActor)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestRateLimit_SetsRetryAfterPerClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.5, 1)(echoActor)

	fromIP := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, fromIP("10.0.0.1").Code)

	limited := fromIP("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "2", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), "TOO_MANY_REQUESTS")

	assert.Equal(t, http.StatusOK, fromIP("10.0.0.2").Code)
}

type corsConfig struct {
	development bool
	extra       []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.extra }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{extra: []string{"https://studio.example.com"}})(echoActor)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://vidtube.app", true},
		{"https://www.vidtube.app", true},
		{"https://studio.example.com", true},
		{"https://evilvidtube.app", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/api/v1/videos", nil)
	preflight.Header.Set(constants.HeaderOrigin, "https://vidtube.app")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestRequestID_RejectsOversizedClientValue(t *testing.T) {
	handler := middleware.RequestID()(echoActor)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, strings.Repeat("x", 200))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Len(t, recorder.Header().Get(constants.HeaderXRequestID), 36)

	kept := httptest.NewRequest(http.MethodGet, "/", nil)
	kept.Header.Set(constants.HeaderXRequestID, "edge-abc-123")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, kept)
	assert.Equal(t, "edge-abc-123", recorder.Header().Get(constants.HeaderXRequestID))
}
