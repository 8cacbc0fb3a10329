// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sowonlabs/bunryu/internal/llm"
)

// ExpandPath expands a leading ~ and $VAR style environment variables in a
// file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

// DBPath resolves the database path from config, defaulting under
// XDG-style local share.
func DBPath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = "$HOME/.local/share/bunryu/bunryu.db"
	}
	return ExpandPath(path)
}

// LLMConfig assembles provider client configuration for a model spec.
// The API key comes from the model's environment variable, with a viper
// key as fallback so config files work too.
func LLMConfig(spec llm.ModelSpec) llm.Config {
	apiKey := os.Getenv(spec.APIKeyEnv)
	if apiKey == "" {
		apiKey = viper.GetString("llm." + spec.ID + ".api_key")
	}

	baseURL := spec.BaseURL
	if baseURL == "" {
		baseURL = viper.GetString("llm." + spec.ID + ".api_url")
	}
	if baseURL == "" && spec.Provider == llm.ProviderOpenAICompatible {
		baseURL = os.Getenv("EXAONE_API_URL")
	}

	return llm.Config{
		APIKey:       apiKey,
		BaseURL:      baseURL,
		APIKeyHeader: spec.APIKeyHeader,
		MaxTokens:    viper.GetInt("llm.max_tokens"),
		RateLimit:    viper.GetInt("llm.rate_limit"),
		MaxRetries:   viper.GetInt("llm.max_retries"),
		RetryDelay:   viper.GetDuration("llm.retry_delay"),
	}
}

// Temperature returns the configured sampling temperature. Low by default:
// classification wants responses as deterministic as the provider allows.
func Temperature() float64 {
	if !viper.IsSet("llm.temperature") {
		return 0
	}
	return viper.GetFloat64("llm.temperature")
}

// ExampleLimit returns how many recent confirmed examples feed the prompt.
func ExampleLimit() int {
	limit := viper.GetInt("classification.example_limit")
	if limit <= 0 {
		return 10
	}
	return limit
}

// SetDefaults registers config defaults shared by all commands.
func SetDefaults() {
	viper.SetDefault("llm.max_tokens", 1024)
	viper.SetDefault("llm.rate_limit", 60)
	viper.SetDefault("llm.max_retries", 3)
	viper.SetDefault("llm.retry_delay", time.Second)
	viper.SetDefault("classification.example_limit", 10)
	viper.SetDefault("classification.group_size", 5)
}
