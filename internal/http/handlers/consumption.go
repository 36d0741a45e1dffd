package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"nutritrack/internal/domain"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/realtime"
)

const defaultQuantity = 100.0

type addConsumptionRequest struct {
	Barcode  string   `json:"barcode"`
	Quantity *float64 `json:"quantity"`
}

type entryView struct {
	domain.Entry
	ConsumedKcal float64 `json:"consumed_kcal"`
}

func (a *App) AddConsumption(w http.ResponseWriter, r *http.Request) {
	var req addConsumptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgInvalidInput, "malformed JSON body"))
		return
	}
	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" {
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgInvalidInput, "barcode is required"))
		return
	}
	quantity := defaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgInvalidInput, "quantity must be a positive number"))
		return
	}

	product, err := a.Catalog.Product(r.Context(), barcode)
	if err != nil {
		a.fail(w, r, err, tr(r, msgProductNotFound, barcode))
		return
	}
	entry := domain.NewEntry(*product, quantity, a.now())
	if err := a.Journal.Add(r.Context(), &entry); err != nil {
		a.fail(w, r, journalErr(err), "")
		return
	}
	a.publish(realtime.Event{
		Type:    realtime.EventJournalChanged,
		Action:  "added",
		Date:    entry.Timestamp.Format(nutrition.DateLayout),
		EntryID: entry.ID,
	})
	a.json(w, http.StatusCreated, envelope{
		"success": true,
		"message": tr(r, msgProductAdded, entry.ProductName, quantity),
		"entry":   viewOf(entry),
	})
}

func (a *App) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgInvalidInput, "id must be a positive integer"))
		return
	}
	consumedAt, err := a.Journal.Delete(r.Context(), id)
	if err != nil {
		a.fail(w, r, journalErr(err), tr(r, msgEntryNotFound, id))
		return
	}
	date := consumedAt.In(a.location()).Format(nutrition.DateLayout)
	a.publish(realtime.Event{Type: realtime.EventJournalChanged, Action: "deleted", Date: date, EntryID: id})
	a.ok(w, envelope{"message": tr(r, msgEntryDeleted), "id": id})
}

func (a *App) DeleteDay(w http.ResponseWriter, r *http.Request) {
	day, err := a.requestDay(r)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	n, err := a.Journal.DeleteDay(r.Context(), day)
	if err != nil {
		a.fail(w, r, journalErr(err), "")
		return
	}
	date := day.Format(nutrition.DateLayout)
	a.publish(realtime.Event{Type: realtime.EventJournalChanged, Action: "cleared", Date: date, Count: n})
	a.ok(w, envelope{"message": tr(r, msgDayCleared, n), "date": date, "deleted": n})
}

func (a *App) DailyEntries(w http.ResponseWriter, r *http.Request) {
	day, err := a.requestDay(r)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	entries, err := a.Journal.ListByDay(r.Context(), day)
	if err != nil {
		a.fail(w, r, journalErr(err), "")
		return
	}
	views := make([]entryView, 0, len(entries))
	for _, e := range nutrition.InLocation(entries, a.location()) {
		views = append(views, viewOf(e))
	}
	a.ok(w, envelope{"date": day.Format(nutrition.DateLayout), "entries": views, "count": len(views)})
}

// requestDay parses the optional date query parameter in the app location,
// defaulting to today.
func (a *App) requestDay(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return a.now(), nil
	}
	day, err := time.ParseInLocation(nutrition.DateLayout, raw, a.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must use YYYY-MM-DD", domain.ErrValidation)
	}
	return day, nil
}

func viewOf(e domain.Entry) entryView {
	return entryView{Entry: e, ConsumedKcal: nutrition.Round1(e.ConsumedKcal())}
}
