package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"nutritrack/internal/domain"
	"nutritrack/internal/http/handlers"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/profile"
)

type emptyKV struct{}

func (emptyKV) Get(context.Context, string) ([]byte, error) { return nil, domain.ErrNotFound }
func (emptyKV) Put(context.Context, string, []byte) error   { return nil }

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	policy, err := nutrition.NewTablePolicy(nil)
	if err != nil {
		t.Fatalf("NewTablePolicy: %v", err)
	}
	app := &handlers.App{
		Profiles: profile.NewStore(emptyKV{}, "userProfile", nil),
		Targets:  policy,
	}
	return NewRouter(app, Options{
		Logger:         zerolog.Nop(),
		AllowedOrigins: []string{"https://app.example.com"},
		DefaultLocale:  "fr",
		RateLimit:      100,
	})
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if rec.Header().Get("Content-Language") != "fr" {
		t.Fatalf("Content-Language = %q", rec.Header().Get("Content-Language"))
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/profile", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouterRecommendations(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations?age=65&sex=homme", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
