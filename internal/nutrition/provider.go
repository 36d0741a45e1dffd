package nutrition

import (
	"fmt"
	"os"

	"nutritrack/internal/infra"
)

// NewTargetProvider builds the configured recommendation source. The local
// table is always loaded, from RecommendationTablePath when set; with the
// remote source it serves as the fallback.
func NewTargetProvider(cfg *infra.Config, logger *infra.Logger) (TargetProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	table := DefaultTable()
	if cfg.RecommendationTablePath != "" {
		f, err := os.Open(cfg.RecommendationTablePath)
		if err != nil {
			return nil, fmt.Errorf("open recommendation table: %w", err)
		}
		defer f.Close()
		if table, err = LoadTable(f); err != nil {
			return nil, err
		}
	}
	policy, err := NewTablePolicy(table)
	if err != nil {
		return nil, err
	}
	if cfg.RecommendationSource != infra.RecommendationSourceRemote {
		return policy, nil
	}
	remote, err := NewRemoteProvider(RemoteOptions{
		BaseURL: cfg.RecommendationURL,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return FallbackProvider{Primary: remote, Secondary: policy, Logger: logger}, nil
}
