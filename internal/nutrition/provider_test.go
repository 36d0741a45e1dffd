package nutrition

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
)

func TestNewTargetProviderCustomTable(t *testing.T) {
	row := `{"calories": 1500, "proteins": 40, "carbohydrates": 180, "fat": 50, "fiber": 20, "salt": 5}`
	group := `{"18-40": ` + row + `, "41-60": ` + row + `, "61+": ` + row + `}`
	path := filepath.Join(t.TempDir(), "table.json")
	if err := os.WriteFile(path, []byte(`{"male": `+group+`, "female": `+group+`}`), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	provider, err := NewTargetProvider(&infra.Config{
		RecommendationSource:    infra.RecommendationSourceTable,
		RecommendationTablePath: path,
	}, nil)
	if err != nil {
		t.Fatalf("NewTargetProvider: %v", err)
	}
	got, err := provider.Targets(context.Background(), domain.DefaultProfile())
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}
	if got.Calories != 1500 {
		t.Fatalf("calories = %v, want table value 1500", got.Calories)
	}
}

func TestNewTargetProviderRemoteFallsBackToTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	provider, err := NewTargetProvider(&infra.Config{
		RecommendationSource: infra.RecommendationSourceRemote,
		RecommendationURL:    srv.URL,
	}, nil)
	if err != nil {
		t.Fatalf("NewTargetProvider: %v", err)
	}
	if _, ok := provider.(FallbackProvider); !ok {
		t.Fatalf("provider = %T, want FallbackProvider", provider)
	}
	got, err := provider.Targets(context.Background(), domain.DefaultProfile())
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}
	if got.Calories != 2500 {
		t.Fatalf("calories = %v, want default table value", got.Calories)
	}
}

func TestNewTargetProviderErrors(t *testing.T) {
	if _, err := NewTargetProvider(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	_, err := NewTargetProvider(&infra.Config{RecommendationTablePath: filepath.Join(t.TempDir(), "missing.json")}, nil)
	if err == nil || !strings.Contains(err.Error(), "open recommendation table") {
		t.Fatalf("missing table error = %v", err)
	}
	if _, err := NewTargetProvider(&infra.Config{RecommendationSource: infra.RecommendationSourceRemote}, nil); err == nil {
		t.Fatal("expected error for remote source without url")
	}
}
