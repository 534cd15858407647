package infra

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"miaoyou/pkg/utils"
)

const (
	DefaultCompletionBaseURL = "https://api.siliconflow.cn/v1"
	DefaultCompletionModel   = "Qwen/Qwen3-235B-A22B"
	DefaultGeminiModel       = "gemini-1.5-flash"
	DefaultCompletionTimeout = 120 * time.Second
	defaultMaxTokens         = 8192

	completionTemperature = 0.6
	completionTopP        = 0.7
)

// CompletionClient produces the raw itinerary text. Both implementations
// request JSON mode, but the content is still not guaranteed to be valid
// JSON and must go through the recovery parser.
type CompletionClient interface {
	CreateJSONCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type CompletionConfig struct {
	Provider  string // "openai" (OpenAI-compatible endpoint) or "gemini"
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewCompletionClient selects the provider implementation from config.
func NewCompletionClient(cfg CompletionConfig, logger *zap.Logger) (CompletionClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAICompletionClient(cfg, logger), nil
	case "gemini":
		return NewGeminiCompletionClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}

type openAICompletionClient struct {
	client *openai.Client
	cfg    CompletionConfig
	logger *zap.Logger
}

// NewOpenAICompletionClient talks to any OpenAI-compatible chat completion
// endpoint; the default base URL points at SiliconFlow.
func NewOpenAICompletionClient(cfg CompletionConfig, logger *zap.Logger) CompletionClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultCompletionBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultCompletionModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultCompletionTimeout
	}

	conf := openai.DefaultConfig(cfg.APIKey)
	conf.BaseURL = cfg.BaseURL
	conf.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &openAICompletionClient{
		client: openai.NewClientWithConfig(conf),
		cfg:    cfg,
		logger: logger,
	}
}

func (c *openAICompletionClient) CreateJSONCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: completionTemperature,
		TopP:        completionTopP,
	})
	if err != nil {
		return "", translateOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", utils.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// translateOpenAIError maps go-openai error types onto ProviderError so the
// retry executor can classify them by HTTP status. Transport errors pass
// through untouched; IsRetryable already understands those.
func translateOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return utils.NewProviderError("completion", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return utils.NewProviderError("completion", reqErr.HTTPStatusCode, reqErr.Error())
	}
	return err
}

// translateGeminiError maps googleapi errors onto ProviderError the same way
// the OpenAI path does, so Gemini 5xx responses stay retryable.
func translateGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return utils.NewProviderError("gemini", apiErr.Code, apiErr.Message)
	}
	return err
}

type geminiCompletionClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiCompletionClient(cfg CompletionConfig, logger *zap.Logger) (CompletionClient, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiCompletionClient{client: client, model: model, logger: logger}, nil
}

func (c *geminiCompletionClient) CreateJSONCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(completionTemperature)
	m.SetTopP(completionTopP)

	resp, err := m.GenerateContent(ctx, genai.Text(systemPrompt+"\n\n"+userPrompt))
	if err != nil {
		return "", translateGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", utils.ErrEmptyCompletion
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
