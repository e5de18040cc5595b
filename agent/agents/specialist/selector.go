package specialist

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
)

type selectorImpl struct {
	agentType contractx.AgentType
	runner    compose.Runnable[map[string]any, *schema.Message]
	parser    schema.MessageParser[proposalLLMOutput]
}

var _ contractx.ToolSelector = (*selectorImpl)(nil)

type proposalLLMOutput struct {
	Tool     *string        `json:"tool"`
	Provided map[string]any `json:"provided"`
	Missing  []string       `json:"missing"`
}

func newSelector(
	ctx context.Context,
	agentType contractx.AgentType,
	chatModel einomodel.BaseChatModel,
	promptTemplate string,
) (*selectorImpl, error) {
	if strings.TrimSpace(promptTemplate) == "" {
		return nil, fmt.Errorf("%w: tool calling prompt", contractx.ErrPromptMissing)
	}
	runner, err := compileCompletionGraph(ctx, chatModel, promptTemplate, string(agentType)+".tool_selection_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile selector graph for agent=%s: %v", contractx.ErrModelInvoke, agentType, err)
	}

	return &selectorImpl{
		agentType: agentType,
		runner:    runner,
		parser: schema.NewMessageJSONParser[proposalLLMOutput](&schema.MessageJSONParseConfig{
			ParseFrom: schema.MessageParseFromContent,
		}),
	}, nil
}

func (s *selectorImpl) Select(ctx context.Context, req contractx.ToolSelectionRequest) (contractx.ToolCallProposal, error) {
	msg, err := s.runner.Invoke(ctx, map[string]any{
		"tool_schemas_json": req.ToolSchemasJSON,
		"chat_history":      req.ChatHistory,
		"user_input":        req.UserInput,
	})
	if err != nil {
		return contractx.ToolCallProposal{}, fmt.Errorf("%w: selector invoke for agent=%s: %v", contractx.ErrModelInvoke, s.agentType, err)
	}
	if msg == nil {
		return contractx.ToolCallProposal{}, fmt.Errorf("%w: empty selector response", contractx.ErrSchemaViolation)
	}

	out, err := s.parser.Parse(ctx, msg)
	if err != nil {
		return contractx.ToolCallProposal{}, fmt.Errorf("%w: parse tool proposal: %v", contractx.ErrSchemaViolation, err)
	}

	return toProposal(out), nil
}

func toProposal(out proposalLLMOutput) contractx.ToolCallProposal {
	tool := strings.TrimSpace(lo.FromPtr(out.Tool))
	if strings.EqualFold(tool, "none") {
		tool = ""
	}

	provided := out.Provided
	if provided == nil {
		provided = map[string]any{}
	}

	missing := lo.Uniq(lo.FilterMap(out.Missing, func(name string, _ int) (string, bool) {
		name = strings.TrimSpace(name)
		return name, name != ""
	}))

	return contractx.ToolCallProposal{
		Tool:     tool,
		Provided: provided,
		Missing:  missing,
	}
}
