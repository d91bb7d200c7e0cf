package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects one provider and how to call it.
type Config struct {
	Provider string
	APIKey   string
	// Model is a friendly name or a provider model ID. Empty selects the
	// provider default.
	Model   string
	BaseURL string
	Retry   RetryConfig
	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// providerSpec describes where a provider's settings come from.
type providerSpec struct {
	name         string
	keyEnv       string // SABI_* variable
	fallbackEnv  string // vendor variable probed by DiscoverConfig
	defaultModel string
}

// providerSpecs is in discovery priority order.
var providerSpecs = []providerSpec{
	{ProviderGemini, "SABI_GEMINI_API_KEY", "GEMINI_API_KEY", "gemini-flash"},
	{ProviderOpenAI, "SABI_OPENAI_API_KEY", "OPENAI_API_KEY", "gpt-4o-mini"},
	{ProviderAnthropic, "SABI_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY", "claude-haiku"},
	{ProviderOpenRouter, "SABI_OPENROUTER_API_KEY", "OPENROUTER_API_KEY", "google/gemini-2.0-flash-001"},
}

func specFor(provider string) (providerSpec, bool) {
	for _, s := range providerSpecs {
		if s.name == provider {
			return s, true
		}
	}
	return providerSpec{}, false
}

// DefaultConfig returns retry and timeout defaults with no provider.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config for the provider named by
// SABI_LLM_PROVIDER. SABI_LLM_MODEL and SABI_LLM_BASE_URL override the
// model and endpoint.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Provider = os.Getenv("SABI_LLM_PROVIDER")
	if spec, ok := specFor(cfg.Provider); ok {
		cfg.APIKey = os.Getenv(spec.keyEnv)
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv(spec.fallbackEnv)
		}
		cfg.Model = spec.defaultModel
	}
	if m := os.Getenv("SABI_LLM_MODEL"); m != "" {
		cfg.Model = m
	}
	cfg.BaseURL = os.Getenv("SABI_LLM_BASE_URL")
	return cfg
}

// DiscoverConfig returns a Config for the first provider with an API key
// set, checking SABI_* variables before the vendor ones
// (Gemini → OpenAI → Anthropic → OpenRouter).
func DiscoverConfig() (Config, bool) {
	if cfg, ok := discover(func(s providerSpec) string { return s.keyEnv }); ok {
		return cfg, true
	}
	return discover(func(s providerSpec) string { return s.fallbackEnv })
}

func discover(envOf func(providerSpec) string) (Config, bool) {
	for _, spec := range providerSpecs {
		if k := os.Getenv(envOf(spec)); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = spec.name
			cfg.APIKey = k
			cfg.Model = spec.defaultModel
			return cfg, true
		}
	}
	return Config{}, false
}

// LoadConfig uses SABI_LLM_PROVIDER when set and discovery otherwise.
// ok is false when no provider is configured.
func LoadConfig() (cfg Config, ok bool) {
	if os.Getenv("SABI_LLM_PROVIDER") != "" {
		return ConfigFromEnv(), true
	}
	return DiscoverConfig()
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	spec, ok := specFor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", spec.keyEnv, c.Provider)
	}
	return nil
}
