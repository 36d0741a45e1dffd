package nutrition

import (
	"context"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
)

// FallbackProvider serves targets from Primary and falls back to Secondary
// when the primary fails.
type FallbackProvider struct {
	Primary   TargetProvider
	Secondary TargetProvider
	Logger    *infra.Logger
}

// Targets implements TargetProvider.
func (f FallbackProvider) Targets(ctx context.Context, p domain.Profile) (Target, error) {
	t, err := f.Primary.Targets(ctx, p)
	if err == nil {
		return t, nil
	}
	if f.Secondary == nil {
		return Target{}, err
	}
	if f.Logger != nil {
		f.Logger.Warn().Err(err).Msg("recommendations: primary provider failed, using fallback")
	}
	return f.Secondary.Targets(ctx, p)
}

var _ TargetProvider = FallbackProvider{}
