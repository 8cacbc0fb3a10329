package llm

// Provider identifies how a model is reached.
type Provider string

// Supported providers.
const (
	// ProviderAnthropic calls the Anthropic messages API natively.
	ProviderAnthropic Provider = "anthropic"
	// ProviderOpenAICompatible posts to any OpenAI-style chat completions
	// endpoint and reads choices[0].message.content.
	ProviderOpenAICompatible Provider = "openai-compatible"
)

// ModelSpec describes a selectable model and how to reach it.
type ModelSpec struct {
	ID           string
	Name         string
	Provider     Provider
	Description  string
	ModelID      string // provider-side model identifier (Anthropic)
	BaseURL      string // endpoint URL (OpenAI-compatible)
	APIKeyHeader string // header carrying the API key (OpenAI-compatible)
	APIKeyEnv    string // environment variable holding the API key
}

// DefaultModelID is used when the caller does not select a model.
const DefaultModelID = "claude-sonnet"

var models = []ModelSpec{
	{
		ID:          "claude-sonnet",
		Name:        "Claude Sonnet 4",
		Provider:    ProviderAnthropic,
		Description: "Anthropic Claude Sonnet - 높은 정확도",
		ModelID:     "claude-sonnet-4-20250514",
		APIKeyEnv:   "ANTHROPIC_API_KEY",
	},
	{
		ID:           "exaone-35-7-8b",
		Name:         "EXAONE 3.5 7.8B",
		Provider:     ProviderOpenAICompatible,
		Description:  "LG AI Research EXAONE - 빠른 응답",
		APIKeyHeader: "x-api-key",
		APIKeyEnv:    "EXAONE_API_KEY",
	},
}

// Models returns the built-in model registry.
func Models() []ModelSpec {
	out := make([]ModelSpec, len(models))
	copy(out, models)
	return out
}

// Lookup finds a model spec by registry id.
func Lookup(id string) (ModelSpec, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelSpec{}, false
}
