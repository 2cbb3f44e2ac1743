package service

import (
	"github.com/hallgate/adminbase/internal/admin/config"
)

// ProviderStatus describes one configured LLM provider. Only a
// truncated key preview ever leaves the process; the key itself is
// never logged or returned.
type ProviderStatus struct {
	APIKeyAvailable bool    `json:"api_key_available"`
	Model           string  `json:"model"`
	APIKeyPreview   *string `json:"api_key_preview"`
}

// LLMStatus is the /api/llm-status payload.
type LLMStatus struct {
	DefaultProvider    string          `json:"default_provider"`
	AvailableProviders []string        `json:"available_providers"`
	APIKeysAvailable   map[string]bool `json:"api_keys_available"`
	OpenAI             ProviderStatus  `json:"openai"`
	Anthropic          ProviderStatus  `json:"anthropic"`
}

// LLMService probes optional external LLM provider configuration. It
// only inspects local configuration; it never calls out, so a probe can
// degrade but not fail the process.
type LLMService struct {
	Resolver *config.Resolver
}

// Status reports which providers are configured and with which models.
func (s *LLMService) Status() LLMStatus {
	openaiKey := config.Env("OPENAI_API_KEY", "")
	anthropicKey := config.Env("ANTHROPIC_API_KEY", "")

	status := LLMStatus{
		DefaultProvider:    s.Resolver.GetString("llm.default_provider", "openai"),
		AvailableProviders: []string{},
		APIKeysAvailable: map[string]bool{
			"openai":    openaiKey != "",
			"anthropic": anthropicKey != "",
		},
		OpenAI: ProviderStatus{
			APIKeyAvailable: openaiKey != "",
			Model:           config.Env("OPENAI_MODEL", "gpt-4o-mini"),
			APIKeyPreview:   keyPreview(openaiKey),
		},
		Anthropic: ProviderStatus{
			APIKeyAvailable: anthropicKey != "",
			Model:           config.Env("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
			APIKeyPreview:   keyPreview(anthropicKey),
		},
	}

	if openaiKey != "" {
		status.AvailableProviders = append(status.AvailableProviders, "openai")
	}
	if anthropicKey != "" {
		status.AvailableProviders = append(status.AvailableProviders, "anthropic")
	}
	return status
}

func keyPreview(key string) *string {
	if key == "" {
		return nil
	}
	if len(key) > 20 {
		key = key[:20]
	}
	preview := key + "..."
	return &preview
}
