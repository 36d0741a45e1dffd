package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLintReportsMissingAndDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.go", "package q\n\nconst QOne = `--sql 0b3c2f6e-1d7a-4c55-9a61-2f0c8e4d9b10\nselect 1`\n\nconst QBare = `select 2`\n")
	writeSource(t, dir, "b.go", "package q\n\nconst QTwo = `--sql 0b3c2f6e-1d7a-4c55-9a61-2f0c8e4d9b10\ndelete from consumption`\n\nconst Label = \"entry removed\"\n")

	violations, err := lint([]string{dir})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("violations = %v, want 2", violations)
	}
	byName := map[string]string{}
	for _, v := range violations {
		byName[v.name] = v.message
	}
	if !strings.Contains(byName["QBare"], "missing") {
		t.Fatalf("QBare message = %q", byName["QBare"])
	}
	if !strings.Contains(byName["QTwo"], "QOne") {
		t.Fatalf("QTwo message = %q", byName["QTwo"])
	}
}

func TestRunCleanPackage(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.go", "package q\n\nconst QOk = `--sql 7d1e4a90-5b2c-4e8f-a3d6-91c0b7e25f44\nselect key from user_settings`\n")
	writeSource(t, dir, "ok_test.go", "package q\n\nconst qFixture = `select 1`\n")

	var stderr bytes.Buffer
	if code := run([]string{dir}, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr.String())
	}
}

func TestRunMissingTarget(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{filepath.Join(t.TempDir(), "missing")}, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestSQLInlineMarkers(t *testing.T) {
	violations, err := lint([]string{filepath.Join("..", "..", "sqlinline")})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	for _, v := range violations {
		t.Errorf("%s", v)
	}
}
