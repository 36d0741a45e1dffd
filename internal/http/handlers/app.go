package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/realtime"
)

// ProfileStore is the profile persistence the handlers depend on.
type ProfileStore interface {
	Load(ctx context.Context) domain.Profile
	Update(ctx context.Context, age int, sex string) (domain.Profile, error)
}

// Publisher receives journal change events.
type Publisher interface {
	Broadcast(ev realtime.Event)
}

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the dependencies shared by every handler.
type App struct {
	Profiles       ProfileStore
	Targets        nutrition.TargetProvider
	Journal        domain.JournalRepository
	Catalog        domain.ProductCatalog
	Events         Publisher
	DB             Pinger
	Logger         *infra.Logger
	Location       *time.Location
	Now            func() time.Time
	HistoryMaxDays int
	SearchPageSize int
}

type envelope map[string]any

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) ok(w http.ResponseWriter, body envelope) {
	body["success"] = true
	a.json(w, http.StatusOK, body)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, envelope{"success": false, "error": code, "message": message})
}

// fail maps a domain error onto the response envelope. notFound is the
// already localized message used for domain.ErrNotFound.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgInvalidInput, reason(err)))
	case errors.Is(err, domain.ErrNotFound):
		if notFound == "" {
			notFound = tr(r, msgNotFound)
		}
		a.error(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrUpstream):
		a.log().Warn().Err(err).Str("path", r.URL.Path).Msg("upstream failure")
		a.error(w, http.StatusBadGateway, "upstream", tr(r, msgUpstream))
	case errors.Is(err, domain.ErrDataUnavailable):
		a.log().Error().Err(err).Str("path", r.URL.Path).Msg("data unavailable")
		a.error(w, http.StatusServiceUnavailable, "unavailable", tr(r, msgUnavailable))
	default:
		a.log().Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", tr(r, msgInternal))
	}
}

func (a *App) log() *infra.Logger {
	if a.Logger == nil {
		return infra.NopLogger()
	}
	return a.Logger
}

func (a *App) now() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return now().In(a.location())
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) publish(ev realtime.Event) {
	if a.Events != nil {
		a.Events.Broadcast(ev)
	}
}

// journalErr classifies a repository failure: not found and validation
// errors pass through, anything else means the journal is unavailable.
func journalErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrDataUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
}

// reason strips the sentinel prefix from a wrapped validation error.
func reason(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}
