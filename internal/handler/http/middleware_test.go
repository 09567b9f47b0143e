package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/mock"
	"github.com/MKhiriev/vitascope/internal/utils"
	"github.com/MKhiriev/vitascope/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// withTraceID
// ─────────────────────────────────────────────

// runTraceID passes a request with the given X-Trace-ID through withTraceID
// and returns the response and the request seen by the next handler.
func runTraceID(t *testing.T, incoming string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	h := &Handler{logger: logger.Nop()}
	var seen *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)

	require.NotNil(t, seen, "next handler was not called")
	return rec, seen
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "reuses incoming id", incoming: "my-custom-trace-id", wantSame: true},
		{name: "reuses incoming uuid", incoming: "550e8400-e29b-41d4-a716-446655440000", wantSame: true},
		{name: "generates when missing", incoming: ""},
		{name: "replaces id with spaces", incoming: "bad trace id"},
		{name: "replaces control characters", incoming: "abc\x01def"},
		{name: "replaces oversized id", incoming: strings.Repeat("a", maxTraceIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := runTraceID(t, tt.incoming)

			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "expected generated uuid, got %q", got)
		})
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-42"`)
	assert.Contains(t, buf.String(), `"message":"inside"`)
}

// ─────────────────────────────────────────────
// withLogging
// ─────────────────────────────────────────────

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantLevel string
		wantParts []string
	}{
		{
			name: "implicit 200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("OK"))
			},
			wantLevel: "info",
			wantParts: []string{`"status":200`, `"size":2`, `"method":"GET"`, `"uri":"/path?q=1"`, `"remote_ip":"192.0.2.1"`},
		},
		{
			name: "no body",
			handler: func(http.ResponseWriter, *http.Request) {
			},
			wantLevel: "info",
			wantParts: []string{`"status":200`, `"size":0`},
		},
		{
			name: "client error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantLevel: "warn",
			wantParts: []string{`"status":404`},
		},
		{
			name: "server error keeps first status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.WriteHeader(http.StatusOK)
			},
			wantLevel: "error",
			wantParts: []string{`"status":502`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			req := httptest.NewRequest(http.MethodGet, "/path?q=1", nil)
			req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
			h.withLogging(tt.handler).ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, out, `"duration":`)
			for _, part := range tt.wantParts {
				assert.Contains(t, out, part)
			}
		})
	}
}

// ─────────────────────────────────────────────
// withGZip
// ─────────────────────────────────────────────

func gunzip(t *testing.T, b []byte) string {
	t.Helper()

	zr, err := gzip.NewReader(bytes.NewReader(b))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

func TestWithGZip_CompressesResponse(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success"}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
	assert.Equal(t, `{"status":"success"}`, gunzip(t, rec.Body.Bytes()))
}

func TestWithGZip_PlainWithoutAcceptEncoding(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("plain"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", rec.Body.String())
}

func TestWithGZip_NoContentStaysUncompressed(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestWithGZip_InflatesRequestBody(t *testing.T) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write([]byte(`{"heartRate":72}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var got string
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got = string(b)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/data", &compressed)
	req.Header.Set("Content-Encoding", "gzip")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"heartRate":72}`, got)
}

func TestWithGZip_RejectsBrokenRequestBody(t *testing.T) {
	called := false
	handler := withGZip(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodPost, "/api/data", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

// ─────────────────────────────────────────────
// CheckHTTPMethod
// ─────────────────────────────────────────────

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/items", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Post("/items/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/items", http.StatusOK},
		{http.MethodPost, "/items", http.StatusNotFound},
		{http.MethodDelete, "/items", http.StatusNotFound},
		{http.MethodPost, "/items/7", http.StatusCreated},
		{http.MethodGet, "/items/7", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCheckHTTPMethod_DelegatesMatchingMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/items", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })

	rec := httptest.NewRecorder()
	CheckHTTPMethod(router)(rec, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

// ─────────────────────────────────────────────
// withRateLimit
// ─────────────────────────────────────────────

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestWithRateLimit_UsesRouteAndClientKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockRateLimiter(ctrl)
	h := &Handler{logger: logger.Nop(), limiter: limiter}

	limiter.EXPECT().Allow(gomock.Any(), "login:203.0.113.9", 10, time.Hour).
		Return(models.RateDecision{Allowed: true, Remaining: 9}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	rec := httptest.NewRecorder()
	h.withRateLimit("login", 10, time.Hour)(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestWithRateLimit_Rejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockRateLimiter(ctrl)
	h := &Handler{logger: logger.Nop(), limiter: limiter}

	limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), 5, 5*time.Minute).
		Return(models.RateDecision{Allowed: false, RetryAfter: 90500 * time.Millisecond}, nil)

	rec := httptest.NewRecorder()
	h.withRateLimit("verify-otp", 5, 5*time.Minute)(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify-otp", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "91", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())
}

func TestWithRateLimit_LimiterFailureLetsRequestThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockRateLimiter(ctrl)
	h := &Handler{logger: logger.Nop(), limiter: limiter}

	limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.RateDecision{}, errors.New("redis down"))

	rec := httptest.NewRecorder()
	h.withRateLimit("login", 10, time.Hour)(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithRateLimit_DisabledLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := &Handler{logger: logger.Nop(), limiter: mock.NewMockRateLimiter(ctrl)}

	rec := httptest.NewRecorder()
	h.withRateLimit("login", 0, time.Hour)(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(-time.Second))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 60, retryAfterSeconds(time.Minute))
	assert.Equal(t, 61, retryAfterSeconds(time.Minute+time.Millisecond))
}

// ─────────────────────────────────────────────
// withSession
// ─────────────────────────────────────────────

// captureSession runs withSession over a handler that captures the request
// state.
func captureSession(t *testing.T, h *Handler, cookie string) *models.RequestState {
	t.Helper()

	var state *models.RequestState
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		state, ok = utils.GetRequestStateFromContext(r.Context())
		require.True(t, ok)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie})
	}
	h.withSession(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, state)
	return state
}

func TestWithSession_Anonymous(t *testing.T) {
	env := newTestEnv(t)

	state := captureSession(t, env.handler, "")

	assert.Equal(t, models.Anonymous{}, state.Identity)
	assert.NotEmpty(t, state.Session.ID)
	assert.Equal(t, "192.0.2.1", state.ClientIP)
}

func TestWithSession_ForgedCookie(t *testing.T) {
	env := newTestEnv(t)

	state := captureSession(t, env.handler, "not-a-jwt")

	assert.Equal(t, models.Anonymous{}, state.Identity)
	assert.Zero(t, state.Session.UserID)
}

func TestWithSession_ResolvesUser(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, alice)

	state := captureSession(t, env.handler, env.cookie.Value)

	user, ok := models.CurrentUser(state.Identity)
	require.True(t, ok)
	assert.Equal(t, alice, user)
}

func TestWithSession_DropsUserThatIsGone(t *testing.T) {
	env := newTestEnv(t)
	env.seedSession(t, func(s *models.Session) { s.UserID = 9 })
	env.auth.EXPECT().Identify(gomock.Any(), int64(9)).Return(models.Anonymous{}, nil)

	state := captureSession(t, env.handler, env.cookie.Value)

	assert.Equal(t, models.Anonymous{}, state.Identity)
	assert.Zero(t, state.Session.UserID)
}

func TestWithSession_KeepsUserOnLookupFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedSession(t, func(s *models.Session) { s.UserID = 9 })
	env.auth.EXPECT().Identify(gomock.Any(), int64(9)).Return(models.Anonymous{}, errors.New("db down"))

	state := captureSession(t, env.handler, env.cookie.Value)

	assert.Equal(t, models.Anonymous{}, state.Identity)
	assert.Equal(t, int64(9), state.Session.UserID)
}

func TestSaveSession_CookieAttributes(t *testing.T) {
	env := newTestEnv(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestState(r).Session.AddFlash(models.FlashInfo, "hello")
		env.handler.saveSession(w, r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	env.handler.withSession(next).ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, sessionCookieName, c.Name)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.Expires, time.Minute)

	loaded, err := env.sessions.Load(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Equal(t, []models.Flash{{Category: models.FlashInfo, Message: "hello"}}, loaded.Flashes)
}

func TestRequestState_OutsideSessionGroup(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	state := requestState(req)

	assert.Equal(t, models.Anonymous{}, state.Identity)
	require.NotNil(t, state.Session)
	assert.Equal(t, "192.0.2.1", state.ClientIP)
}

// ─────────────────────────────────────────────
// withRealIP
// ─────────────────────────────────────────────

// remoteAddrHandler echoes the address the rest of the chain sees.
func remoteAddrHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(r.RemoteAddr))
}

func TestWithRealIP(t *testing.T) {
	h := &Handler{
		logger: logger.Nop(),
		trustedProxies: []netip.Prefix{
			netip.MustParsePrefix("10.0.0.0/8"),
			netip.MustParsePrefix("::1/128"),
		},
	}

	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{name: "untrusted peer keeps its address", remoteAddr: "203.0.113.7:40000", want: "203.0.113.7:40000"},
		{name: "trusted ipv4 proxy", remoteAddr: "10.1.2.3:5000", want: "198.51.100.9"},
		{name: "trusted ipv6 proxy", remoteAddr: "[::1]:5000", want: "198.51.100.9"},
		{name: "unparsable peer", remoteAddr: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", "198.51.100.9")

			rec := httptest.NewRecorder()
			h.withRealIP(http.HandlerFunc(remoteAddrHandler)).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestWithRealIP_NoTrustedProxies(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	req.Header.Set("X-Real-IP", "198.51.100.9")

	rec := httptest.NewRecorder()
	h.withRealIP(http.HandlerFunc(remoteAddrHandler)).ServeHTTP(rec, req)

	assert.Equal(t, "127.0.0.1:1234", rec.Body.String())
}
