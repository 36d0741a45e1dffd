package nutrition

import (
	"testing"
	"time"

	"nutritrack/internal/domain"
)

func TestDailyTotals(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 20, 0, 0, 0, time.UTC)
	entries := []domain.Entry{
		{Quantity: 100, EnergyKcal100g: ptr(200), Timestamp: day1},
		{Quantity: 50, EnergyKcal100g: ptr(100), Timestamp: day1.Add(time.Hour)},
		{Quantity: 200, EnergyKcal100g: ptr(50), Proteins100g: ptr(3.5), Timestamp: day2},
	}

	got := DailyTotals(entries, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
	if got[0].Date != "2024-05-02" || got[1].Date != "2024-05-01" {
		t.Fatalf("days not newest first: %s, %s", got[0].Date, got[1].Date)
	}
	if got[1].TotalKcal != 250 || got[1].NumProducts != 2 {
		t.Fatalf("unexpected day1 totals %+v", got[1])
	}
	if got[0].TotalProteins != 7 {
		t.Fatalf("unexpected day2 proteins %v", got[0].TotalProteins)
	}

	if out := DailyTotals(nil, time.UTC); len(out) != 0 {
		t.Fatalf("expected no days, got %+v", out)
	}
}

func TestNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	entries := []domain.Entry{{ID: 1, Timestamp: base}, {ID: 2, Timestamp: base.Add(2 * time.Hour)}, {ID: 3, Timestamp: base.Add(time.Hour)}}
	got := NewestFirst(entries)
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("unexpected order %+v", got)
	}
	if entries[0].ID != 1 {
		t.Fatal("input must not be reordered")
	}
}

func TestDailyTotalsLocation(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 03:00 UTC on May 1st is still April 30th in Los Angeles.
	late := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	entries := []domain.Entry{
		{Quantity: 100, EnergyKcal100g: ptr(300), Timestamp: late},
		{Quantity: 100, EnergyKcal100g: ptr(100), Timestamp: late.Add(12 * time.Hour)},
	}

	got := DailyTotals(entries, la)
	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %+v", got)
	}
	if got[1].Date != "2024-04-30" || got[1].TotalKcal != 300 {
		t.Fatalf("late entry grouped under %s (%v kcal), want 2024-04-30", got[1].Date, got[1].TotalKcal)
	}
	if got[0].Date != "2024-05-01" || got[0].TotalKcal != 100 {
		t.Fatalf("unexpected newest day %+v", got[0])
	}

	if utc := DailyTotals(entries, time.UTC); len(utc) != 1 || utc[0].Date != "2024-05-01" {
		t.Fatalf("utc grouping = %+v", utc)
	}
}

func TestInLocation(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	ts := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	entries := []domain.Entry{{ID: 1, Timestamp: ts}}

	got := InLocation(entries, paris)
	if got[0].Timestamp.Format(DateLayout) != "2024-05-02" || !got[0].Timestamp.Equal(ts) {
		t.Fatalf("converted timestamp = %v", got[0].Timestamp)
	}
	if entries[0].Timestamp.Location() != time.UTC {
		t.Fatal("input must not be modified")
	}
}
