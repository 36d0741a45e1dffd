package nutrition

import (
	"sort"
	"time"

	"nutritrack/internal/domain"
)

// DailyTotals groups entries by the calendar day of their timestamp in loc
// and aggregates each day. A nil loc keeps each timestamp's own location.
// Days are returned newest first; days without entries are omitted.
func DailyTotals(entries []domain.Entry, loc *time.Location) []Totals {
	byDay := make(map[string][]domain.Entry)
	for _, e := range entries {
		ts := e.Timestamp
		if loc != nil {
			ts = ts.In(loc)
		}
		day := ts.Format(DateLayout)
		byDay[day] = append(byDay[day], e)
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	out := make([]Totals, 0, len(days))
	for _, day := range days {
		t := Aggregate(byDay[day])
		t.Date = day
		out = append(out, t)
	}
	return out
}

// NewestFirst returns a copy of entries ordered by descending timestamp.
func NewestFirst(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// InLocation returns a copy of entries with timestamps expressed in loc.
func InLocation(entries []domain.Entry, loc *time.Location) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	if loc == nil {
		return out
	}
	for i := range out {
		out[i].Timestamp = out[i].Timestamp.In(loc)
	}
	return out
}
