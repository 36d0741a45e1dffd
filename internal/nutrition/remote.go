package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
)

// RemoteOptions configures a RemoteProvider.
type RemoteOptions struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
	// SexLabels maps profile values onto the query values the upstream
	// understands. Defaults to the french labels of the legacy backend.
	SexLabels map[domain.Sex]string
}

// RemoteProvider asks an upstream recommendations endpoint for targets.
type RemoteProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
	sexLabels  map[domain.Sex]string
}

type remoteResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	Recommendations *struct {
		Intake
		AgeGroup string `json:"age_group"`
	} `json:"recommendations"`
}

// NewRemoteProvider validates options and applies defaults.
func NewRemoteProvider(opts RemoteOptions) (*RemoteProvider, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("recommendations: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("recommendations: invalid base url: %w", err)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	labels := opts.SexLabels
	if labels == nil {
		labels = map[domain.Sex]string{domain.SexMale: "homme", domain.SexFemale: "femme"}
	}
	return &RemoteProvider{baseURL: baseURL, httpClient: httpClient, logger: logger, sexLabels: labels}, nil
}

// Targets implements TargetProvider.
func (p *RemoteProvider) Targets(ctx context.Context, profile domain.Profile) (Target, error) {
	q := url.Values{}
	q.Set("age", strconv.Itoa(profile.Age))
	sex := p.sexLabels[profile.Sex]
	if sex == "" {
		sex = string(profile.Sex)
	}
	q.Set("sex", sex)
	endpoint := p.baseURL + "/api/recommendations?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Target{}, fmt.Errorf("recommendations: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Target{}, fmt.Errorf("%w: recommendations: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Target{}, fmt.Errorf("%w: recommendations: read response: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode >= 300 {
		return Target{}, fmt.Errorf("%w: recommendations: status %d: %s", domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var decoded remoteResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Target{}, fmt.Errorf("%w: recommendations: decode response: %v", domain.ErrDataUnavailable, err)
	}
	if !decoded.Success || decoded.Recommendations == nil {
		return Target{}, fmt.Errorf("%w: recommendations: %s", domain.ErrDataUnavailable, decoded.Message)
	}
	rec := decoded.Recommendations
	if rec.Calories <= 0 {
		return Target{}, fmt.Errorf("%w: recommendations: missing calories", domain.ErrDataUnavailable)
	}
	group := AgeGroup(rec.AgeGroup)
	if group == "" {
		group = AgeGroupFor(profile.Age)
	}
	p.logger.Debug().
		Int("age", profile.Age).
		Str("sex", string(profile.Sex)).
		Str("age_group", string(group)).
		Msg("recommendations: fetched remote target")
	return Target{Intake: rec.Intake, AgeGroup: group, Sex: profile.Sex}, nil
}

var _ TargetProvider = (*RemoteProvider)(nil)
