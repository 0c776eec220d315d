package models

// Config represents the service configuration
type Config struct {
	// Server config
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// AI config
	AI AIConfig `yaml:"ai"`

	// Defaults applied when seeding a new analysis
	Analysis AnalysisConfig `yaml:"analysis"`
}

// AIConfig represents AI provider configuration
type AIConfig struct {
	// OpenAI
	OpenAI OpenAIConfig `yaml:"openai"`

	// Gemini
	Gemini GeminiConfig `yaml:"gemini"`

	// Ollama (local)
	Ollama OllamaConfig `yaml:"ollama"`

	// Default provider
	DefaultProvider string `yaml:"default_provider"` // "openai", "gemini", "ollama"
}

// OpenAIConfig for OpenAI/Azure OpenAI
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // For custom endpoints
	Model   string `yaml:"model"`              // Default: "gpt-4"
}

// GeminiConfig for Google Gemini
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-1.5-flash"
}

// OllamaConfig for local Ollama (OpenAI-compatible endpoint)
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"` // Default: "http://localhost:11434/v1"
	Model   string `yaml:"model"`    // e.g., "mistral", "llama3"
}

// AnalysisConfig holds the default simulation parameters
type AnalysisConfig struct {
	VatPercent         string `yaml:"vat_percent"`         // Default: "21"
	MaxEconomicScore   string `yaml:"max_economic_score"`  // Default: "40"
	CompetitorDiscount string `yaml:"competitor_discount"` // Default: "15"
}

// DefaultSettings builds the initial competition settings from config,
// before the tender budget is known.
func (c *Config) DefaultSettings() CompetitionSettings {
	vat := c.Analysis.VatPercent
	if vat == "" {
		vat = "21"
	}
	maxScore := c.Analysis.MaxEconomicScore
	if maxScore == "" {
		maxScore = "40"
	}
	return CompetitionSettings{
		MaxEconomicScore: maxScore,
		VatPercent:       vat,
	}
}
