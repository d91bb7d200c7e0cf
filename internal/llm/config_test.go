package llm

import (
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SABI_LLM_PROVIDER", "SABI_LLM_MODEL", "SABI_LLM_BASE_URL"} {
		t.Setenv(k, "")
	}
	for _, s := range providerSpecs {
		t.Setenv(s.keyEnv, "")
		t.Setenv(s.fallbackEnv, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Retry.MaxAttempts != 3 || cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("SABI_LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "vendor-key")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderAnthropic || cfg.APIKey != "vendor-key" || cfg.Model != "claude-haiku" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	t.Setenv("SABI_ANTHROPIC_API_KEY", "sabi-key")
	t.Setenv("SABI_LLM_MODEL", "claude-sonnet")
	t.Setenv("SABI_LLM_BASE_URL", "http://localhost:9999")
	cfg = ConfigFromEnv()
	if cfg.APIKey != "sabi-key" || cfg.Model != "claude-sonnet" || cfg.BaseURL != "http://localhost:9999" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider")
	}

	t.Setenv("OPENAI_API_KEY", "vendor-openai")
	t.Setenv("ANTHROPIC_API_KEY", "vendor-anthropic")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected openai by priority, got %+v", cfg)
	}

	// SABI_* keys win over any vendor key.
	t.Setenv("SABI_OPENROUTER_API_KEY", "sabi-or")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenRouter || cfg.APIKey != "sabi-or" {
		t.Fatalf("expected openrouter from SABI key, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("SABI_LLM_PROVIDER", "mock")
	t.Setenv("GEMINI_API_KEY", "g")

	cfg, ok := LoadConfig()
	if !ok || cfg.Provider != ProviderMock {
		t.Fatalf("explicit provider should win, got %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock needs nothing", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "nope"}, true},
		{"missing key", Config{Provider: ProviderGemini}, true},
		{"ok", Config{Provider: ProviderOpenAI, APIKey: "k"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
