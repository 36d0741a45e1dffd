package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nutritrack/internal/domain"
	"nutritrack/internal/nutrition"
)

func ptr(v float64) *float64 { return &v }

type sinceJournal struct {
	domain.JournalRepository
	entries []domain.Entry
	since   time.Time
	err     error
}

func (j *sinceJournal) ListSince(_ context.Context, since time.Time) ([]domain.Entry, error) {
	j.since = since
	return j.entries, j.err
}

func TestWriteHistoryText(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	// 03:00 UTC is still the previous evening at UTC-7.
	journal := &sinceJournal{entries: []domain.Entry{
		{ID: 1, Quantity: 100, EnergyKcal100g: ptr(250), Timestamp: time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)},
	}}

	var out bytes.Buffer
	if err := writeHistory(context.Background(), &out, journal, loc, 7, "text"); err != nil {
		t.Fatalf("writeHistory: %v", err)
	}
	if !strings.Contains(out.String(), "2024-04-30") || strings.Contains(out.String(), "2024-05-01") {
		t.Fatalf("history table = %q", out.String())
	}
	if journal.since.Location() != loc || journal.since.Hour() != 0 {
		t.Fatalf("since = %v, want local midnight", journal.since)
	}
}

func TestWriteHistoryErrors(t *testing.T) {
	var out bytes.Buffer
	if err := writeHistory(context.Background(), &out, &sinceJournal{}, time.UTC, 1, "pdf"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unsupported format error = %v", err)
	}
	boom := errors.New("db down")
	if err := writeHistory(context.Background(), &out, &sinceJournal{err: boom}, time.UTC, 1, "csv"); !errors.Is(err, boom) {
		t.Fatalf("journal error = %v", err)
	}
}

func TestPrintSummary(t *testing.T) {
	policy, err := nutrition.NewTablePolicy(nil)
	if err != nil {
		t.Fatalf("NewTablePolicy: %v", err)
	}
	profile := domain.Profile{Age: 45, Sex: domain.SexFemale}
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.Entry{{Quantity: 100, EnergyKcal100g: ptr(1900)}}

	var out bytes.Buffer
	printSummary(&out, nutrition.Summarize(profile, policy.Recommend(profile), entries, day))
	got := out.String()
	for _, want := range []string{"Daily summary 2024-05-01", "group 41-60", "100.0%", "1 product(s) logged"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary output missing %q:\n%s", want, got)
		}
	}
}
