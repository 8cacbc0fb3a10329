package llm

import (
	"fmt"

	"github.com/sowonlabs/bunryu/internal/common"
)

// NewClient creates a provider client for the given model spec. The two
// provider variants conform to the same Client contract; callers stay
// agnostic to which transport is in play.
func NewClient(spec ModelSpec, cfg Config) (Client, error) {
	switch spec.Provider {
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	case ProviderOpenAICompatible:
		if cfg.APIKeyHeader == "" {
			cfg.APIKeyHeader = spec.APIKeyHeader
		}
		return newOpenAICompatibleClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", common.ErrUnknownModel, spec.Provider)
	}
}
