package llm

import (
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
)

func baseConfig() Config {
	return Config{
		APIKey:                 "key",
		Model:                  "base-model",
		MaxCompletionToken:     512,
		Temperature:            0.2,
		Driver:                 "eino",
		ClassifierTemperature:  -1,
		AccountTemperature:     -1,
		TransactionTemperature: -1,
	}
}

func TestChatModelForInheritsDefaults(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	got := cfg.ChatModelFor(contractx.AgentTypeAccountInfo)
	if got.Model != "base-model" || got.Temperature != 0.2 {
		t.Fatalf("unexpected config: model=%s temp=%v", got.Model, got.Temperature)
	}
	if got.MaxCompletionToken == nil || *got.MaxCompletionToken != 512 {
		t.Fatalf("unexpected max tokens: %v", got.MaxCompletionToken)
	}
}

func TestChatModelForAppliesOverrides(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.ClassifierModel = "small-model"
	cfg.ClassifierTemperature = 0
	cfg.TransactionModel = "tx-model"

	classifier := cfg.ChatModelFor(contractx.AgentTypeClassifier)
	if classifier.Model != "small-model" || classifier.Temperature != 0 {
		t.Fatalf("classifier override not applied: %+v", classifier)
	}

	tx := cfg.ChatModelFor(contractx.AgentTypeTransaction)
	if tx.Model != "tx-model" || tx.Temperature != 0.2 {
		t.Fatalf("transaction override not applied: %+v", tx)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.APIKey = " "
	if err := cfg.Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	cfg = baseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
