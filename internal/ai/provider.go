package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/licitaIA/tender-analysis-service/internal/models"
)

// Provider abstracts the LLM backends. GenerateJSON asks for a structured
// JSON reply (used by the document analysis), GenerateText for free text
// (used by the chat).
type Provider interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// NewProvider builds the configured provider. providerName overrides the
// config default when non-empty, modelOverride the provider's model.
func NewProvider(ctx context.Context, cfg models.AIConfig, providerName, modelOverride string) (Provider, error) {
	name := providerName
	if name == "" {
		name = cfg.DefaultProvider
	}

	switch name {
	case "gemini":
		apiKey := cfg.Gemini.APIKey
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key not configured")
		}
		model := cfg.Gemini.Model
		if modelOverride != "" {
			model = modelOverride
		}
		if model == "" {
			model = "gemini-1.5-flash"
		}
		return NewGeminiProvider(ctx, apiKey, model)

	case "openai":
		apiKey := cfg.OpenAI.APIKey
		if apiKey == "" {
			return nil, fmt.Errorf("openai API key not configured")
		}
		model := cfg.OpenAI.Model
		if modelOverride != "" {
			model = modelOverride
		}
		if model == "" {
			model = "gpt-4o-mini"
		}
		return NewOpenAIProvider(apiKey, cfg.OpenAI.BaseURL, model), nil

	case "ollama":
		baseURL := cfg.Ollama.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		model := cfg.Ollama.Model
		if modelOverride != "" {
			model = modelOverride
		}
		if model == "" {
			model = "llama3"
		}
		return NewOllamaProvider(baseURL, model), nil
	}
	return nil, fmt.Errorf("unknown AI provider: %s", name)
}

// GeminiProvider talks to Google Gemini through the official SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.1)
	return p.generate(ctx, model, prompt)
}

func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.3)
	return p.generate(ctx, model, prompt)
}

func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return sb.String(), nil
}

// OpenAIProvider covers OpenAI and any OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	name     string
	jsonMode bool
}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		name:     "openai",
		jsonMode: true,
	}
}

// NewOllamaProvider reuses the OpenAI client against Ollama's compatible
// endpoint. Ollama ignores the JSON response format flag on some models,
// so the fence stripping downstream stays necessary either way.
func NewOllamaProvider(baseURL, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = baseURL
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		name:   "ollama",
	}
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if p.jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return p.complete(ctx, req)
}

func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return p.complete(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

func (p *OpenAIProvider) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.name)
	}
	return resp.Choices[0].Message.Content, nil
}
