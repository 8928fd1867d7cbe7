package ai

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "openai" or "ollama"

	// OpenAI config
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"

	// Dynamic Ollama config; when both getters are set they take precedence
	// over the static values, so runtime settings updates reach the service
	OllamaBaseURLGetter func() string
	OllamaModelGetter   func() string
}

func (cfg Config) ollamaService() *OllamaService {
	if cfg.OllamaBaseURLGetter != nil && cfg.OllamaModelGetter != nil {
		return NewOllamaServiceWithGetters(cfg.OllamaBaseURLGetter, cfg.OllamaModelGetter)
	}
	return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel)
}

// NewService creates a Service based on the config
// This is the factory function - switch AI provider by changing config.Provider
func NewService(cfg Config) Service {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	case ProviderOllama:
		return cfg.ollamaService()

	default:
		// Default to OpenAI with Ollama fallback when an API key is
		// available, otherwise Ollama alone
		ollama := cfg.ollamaService()
		if cfg.OpenAIAPIKey == "" {
			return ollama
		}
		openai := NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		return NewFallbackService(openai, ollama)
	}
}
