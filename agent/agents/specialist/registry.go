package specialist

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
	llmx "github.com/tanpawarit/Chative-Banking-Support/agent/llm"
	promptx "github.com/tanpawarit/Chative-Banking-Support/agent/prompt"
)

type registryImpl struct {
	classifier  contractx.IntentClassifier
	accountInfo contractx.ToolSelector
	transaction contractx.ToolSelector
}

func (r *registryImpl) Classifier() contractx.IntentClassifier {
	return r.classifier
}

func (r *registryImpl) AccountInfo() contractx.ToolSelector {
	return r.accountInfo
}

func (r *registryImpl) Transaction() contractx.ToolSelector {
	return r.transaction
}

// Models groups the chat model used by each LLM-backed agent.
type Models struct {
	Classifier  einomodel.BaseChatModel
	AccountInfo einomodel.BaseChatModel
	Transaction einomodel.BaseChatModel
}

func NewRegistry(ctx context.Context, cfg *llmx.Config) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var models Models
	for _, target := range []struct {
		agentType contractx.AgentType
		dst       *einomodel.BaseChatModel
	}{
		{contractx.AgentTypeClassifier, &models.Classifier},
		{contractx.AgentTypeAccountInfo, &models.AccountInfo},
		{contractx.AgentTypeTransaction, &models.Transaction},
	} {
		modelCfg := cfg.ChatModelFor(target.agentType)
		m, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create %s model: %v", contractx.ErrModelInvoke, target.agentType, err)
		}
		*target.dst = m
	}

	return NewRegistryFromModels(ctx, models)
}

func NewRegistryFromModels(ctx context.Context, models Models) (contractx.Registry, error) {
	prompts := promptx.LoadPromptSet()

	classifier, err := newClassifier(ctx, models.Classifier, prompts.Classifier)
	if err != nil {
		return nil, err
	}
	accountInfo, err := newSelector(ctx, contractx.AgentTypeAccountInfo, models.AccountInfo, prompts.ToolCalling)
	if err != nil {
		return nil, err
	}
	transaction, err := newSelector(ctx, contractx.AgentTypeTransaction, models.Transaction, prompts.ToolCalling)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		classifier:  classifier,
		accountInfo: accountInfo,
		transaction: transaction,
	}, nil
}
