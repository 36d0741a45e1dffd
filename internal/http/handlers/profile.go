package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"nutritrack/internal/domain"
)

type profileRequest struct {
	Age *int   `json:"age"`
	Sex string `json:"sex"`
}

func (a *App) GetProfile(w http.ResponseWriter, r *http.Request) {
	a.ok(w, envelope{"profile": a.Profiles.Load(r.Context())})
}

func (a *App) PutProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgInvalidInput, "malformed JSON body"))
		return
	}
	if req.Age == nil {
		a.error(w, http.StatusBadRequest, "bad_request", tr(r, msgInvalidInput, "age is required"))
		return
	}
	p, err := a.Profiles.Update(r.Context(), *req.Age, req.Sex)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	a.ok(w, envelope{"profile": p, "message": tr(r, msgProfileSaved)})
}

func (a *App) Recommendations(w http.ResponseWriter, r *http.Request) {
	profile, err := a.requestProfile(r)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	target, err := a.Targets.Targets(r.Context(), profile)
	if err != nil {
		a.fail(w, r, err, "")
		return
	}
	a.ok(w, envelope{"recommendations": target, "user_profile": profile})
}

// requestProfile starts from the stored profile and applies the optional
// age and sex query overrides. Overrides are never persisted; ages below the
// profile minimum are accepted here and fall into the youngest bucket.
func (a *App) requestProfile(r *http.Request) (domain.Profile, error) {
	profile := a.Profiles.Load(r.Context())
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("age")); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("%w: age must be an integer", domain.ErrValidation)
		}
		if age < 0 || age > domain.MaxProfileAge {
			return domain.Profile{}, fmt.Errorf("%w: age must be between 0 and %d", domain.ErrValidation, domain.MaxProfileAge)
		}
		profile.Age = age
	}
	if raw := strings.TrimSpace(q.Get("sex")); raw != "" {
		sex, err := domain.ParseSex(raw)
		if err != nil {
			return domain.Profile{}, err
		}
		profile.Sex = sex
	}
	return profile, nil
}
