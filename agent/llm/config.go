package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
	chatmodelx "github.com/tanpawarit/Chative-Banking-Support/pkg/chatmodel"
)

// Config is decoded once at startup under the LLM prefix and handed to the
// agent registry. Per-agent model and temperature override the defaults; a
// negative temperature means "inherit".
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://integrate.api.nvidia.com/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"mistralai/mixtral-8x22b-instruct-v0.1"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1024"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	Driver             string        `envconfig:"DRIVER" split_words:"true" default:"eino"`

	ClassifierModel        string  `envconfig:"CLASSIFIER_MODEL" split_words:"true"`
	AccountModel           string  `envconfig:"ACCOUNT_MODEL" split_words:"true"`
	TransactionModel       string  `envconfig:"TRANSACTION_MODEL" split_words:"true"`
	ClassifierTemperature  float32 `envconfig:"CLASSIFIER_TEMPERATURE" split_words:"true" default:"-1"`
	AccountTemperature     float32 `envconfig:"ACCOUNT_TEMPERATURE" split_words:"true" default:"-1"`
	TransactionTemperature float32 `envconfig:"TRANSACTION_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: llm api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	if c.MaxCompletionToken <= 0 {
		return fmt.Errorf("%w: max completion token must be > 0", contractx.ErrValidation)
	}
	return nil
}

func (c *Config) ChatModelFor(agentType contractx.AgentType) chatmodelx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(name string, t float32) {
		if v := strings.TrimSpace(name); v != "" {
			modelName = v
		}
		if t >= 0 {
			temp = t
		}
	}

	switch agentType {
	case contractx.AgentTypeClassifier:
		override(c.ClassifierModel, c.ClassifierTemperature)
	case contractx.AgentTypeAccountInfo:
		override(c.AccountModel, c.AccountTemperature)
	case contractx.AgentTypeTransaction:
		override(c.TransactionModel, c.TransactionTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return chatmodelx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		Driver:             c.Driver,
	}
}
