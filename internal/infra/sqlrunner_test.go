package infra

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestExtractMarker(t *testing.T) {
	marker, body, err := extractMarker("\n--sql 0b6c1d1e-8f0e-4b7b-9a55-2f0c3b3f5a10\nselect 1;\n")
	if err != nil {
		t.Fatalf("extractMarker error: %v", err)
	}
	if marker != "0b6c1d1e-8f0e-4b7b-9a55-2f0c3b3f5a10" {
		t.Fatalf("marker = %q", marker)
	}
	if body != "select 1;" {
		t.Fatalf("body = %q", body)
	}
}

func TestExtractMarkerRejectsMissingMarker(t *testing.T) {
	for _, q := range []string{"select 1;", "--sql not-a-uuid\nselect 1;", "   "} {
		if _, _, err := extractMarker(q); err == nil {
			t.Fatalf("extractMarker(%q) expected error", q)
		}
	}
	if _, _, err := extractMarker("select 1;"); !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("expected ErrMissingMarker, got %v", err)
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)) {
		t.Fatal("expected wrapped ErrNoRows to match")
	}
	if IsNoRows(errors.New("other")) {
		t.Fatal("unexpected match")
	}
}
