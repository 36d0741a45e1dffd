package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nutritrack/internal/domain"
	"nutritrack/internal/export"
	"nutritrack/internal/nutrition"
)

const defaultHistoryDays = 7

func (a *App) History(w http.ResponseWriter, r *http.Request) {
	entries, days, err := a.loadHistory(r)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	views := make([]entryView, 0, len(entries))
	for _, e := range nutrition.NewestFirst(entries) {
		views = append(views, viewOf(e))
	}
	a.ok(w, envelope{
		"history": views,
		"count":   len(views),
		"days":    nutrition.DailyTotals(entries, a.location()),
		"window":  days,
	})
}

func (a *App) HistoryExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	entries, _, err := a.loadHistory(r)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	now := a.now()
	var buf bytes.Buffer
	if err := export.Write(&buf, format, export.NewHistory(entries, a.location()), now); err != nil {
		a.fail(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename(now)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// loadHistory reads the entries of the last N days, today included, with
// timestamps in the app location. N comes from the days query parameter,
// clamped to [1, HistoryMaxDays].
func (a *App) loadHistory(r *http.Request) ([]domain.Entry, int, error) {
	days := defaultHistoryDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: days must be an integer", domain.ErrValidation)
		}
		days = n
	}
	maxDays := a.HistoryMaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	if days < 1 {
		days = 1
	}
	if days > maxDays {
		days = maxDays
	}

	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -(days - 1))
	entries, err := a.Journal.ListSince(r.Context(), since)
	if err != nil {
		return nil, 0, journalErr(err)
	}
	return nutrition.InLocation(entries, a.location()), days, nil
}
