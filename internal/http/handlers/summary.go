package handlers

import (
	"net/http"

	"nutritrack/internal/nutrition"
)

// DailySummary aggregates the day's journal against the profile's targets.
// A journal failure degrades to zero totals instead of failing the request.
func (a *App) DailySummary(w http.ResponseWriter, r *http.Request) {
	profile, err := a.requestProfile(r)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	day, err := a.requestDay(r)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	target, err := a.Targets.Targets(r.Context(), profile)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}

	body := envelope{}
	entries, err := a.Journal.ListByDay(r.Context(), day)
	if err != nil {
		a.log().Error().Err(err).Str("date", day.Format(nutrition.DateLayout)).Msg("daily summary: journal unavailable")
		entries = nil
		body["degraded"] = true
		body["message"] = tr(r, msgJournalUnavailable)
	}

	s := nutrition.Summarize(profile, target, entries, day)
	body["summary"] = s.Summary
	body["recommendations"] = s.Recommendations
	body["percentages"] = s.Percentages
	body["indicators"] = s.Indicators
	body["user_profile"] = s.UserProfile
	a.ok(w, body)
}
