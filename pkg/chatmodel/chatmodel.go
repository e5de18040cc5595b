package chatmodel

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DriverEino = "eino"
	DriverSDK  = "sdk"
)

type Builder interface {
	New(ctx context.Context) (model.BaseChatModel, error)
}

var _ Builder = (*Config)(nil)

// Config describes one OpenAI-compatible chat completion endpoint.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://integrate.api.nvidia.com/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"mistralai/mixtral-8x22b-instruct-v0.1"`
	MaxCompletionToken *int          `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1024"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	Driver             string        `envconfig:"DRIVER" split_words:"true" default:"eino"`
}

// New builds the chat model for the configured driver. Both drivers speak
// the same wire protocol; "sdk" goes through the official openai-go client.
func (c *Config) New(ctx context.Context) (model.BaseChatModel, error) {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "", DriverEino:
		return c.newEinoModel(ctx)
	case DriverSDK:
		client := NewClient(*c)
		if client == nil {
			return nil, fmt.Errorf("chatmodel: api key is required")
		}
		return NewSDKChatModel(client, *c), nil
	default:
		return nil, fmt.Errorf("chatmodel: unsupported driver %q", c.Driver)
	}
}

func (c *Config) newEinoModel(ctx context.Context) (model.BaseChatModel, error) {
	temperature := c.Temperature
	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(c.Model),
		MaxTokens:   c.MaxCompletionToken,
		Temperature: &temperature,
		Timeout:     c.Timeout,
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("chatmodel: create chat model: %w", err)
	}
	return m, nil
}

// NewClient creates an OpenAI SDK client for the configured endpoint.
func NewClient(cfg Config) *openaisdk.Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}

	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed+"/"))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}
