package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
)

func TestBackendResolvesPerRequest(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOverrides = []string{"local", "https://staging.example.org"}
	var got, override string
	h := Backend(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, override = BaseURL(r.Context()), Override(r.Context())
	}))

	cases := []struct{ target, host, want, override string }{
		{"/vouchers", "mayelewoo.com", "https://mayelewoo-back.onrender.com", ""},
		{"/vouchers", "localhost:8080", "http://localhost:3000", ""},
		{"/vouchers?backend=local", "mayelewoo.com", "http://localhost:3000", "local"},
		{"/vouchers?backend=https://staging.example.org/", "mayelewoo.com", "https://staging.example.org", "https://staging.example.org/"},
		{"/vouchers?backend=https://evil.example.net", "mayelewoo.com", "https://mayelewoo-back.onrender.com", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.target, nil)
		req.Host = tc.host
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tc.want, got, tc.target+" "+tc.host)
		assert.Equal(t, tc.override, override, tc.target)
	}
}

func TestDefaultBackendIgnoresOverride(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOverrides = []string{"local"}
	var got, override string
	h := DefaultBackend(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, override = BaseURL(r.Context()), Override(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/login?backend=local", nil)
	req.Host = "mayelewoo.com"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "https://mayelewoo-back.onrender.com", got)
	assert.Empty(t, override)
}

func TestVisitorCookie(t *testing.T) {
	var id string
	h := Visitor(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = VisitorID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, VisitorCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, id)

	first := id
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, first, id)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRecoveryAndLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := Logger(log)(chimw.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "PANIC: recovered")
	assert.Contains(t, buf.String(), "kaboom")
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), `"path":"/admin"`)
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS([]string{"https://mayelewoo.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "/vouchers", nil)
	req.Header.Set("Origin", "https://mayelewoo.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://mayelewoo.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.False(t, called)

	req = httptest.NewRequest(http.MethodOptions, "/vouchers", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
