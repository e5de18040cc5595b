package orchestratornode

import (
	"context"
	"fmt"
	"maps"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
	toolx "github.com/tanpawarit/Chative-Banking-Support/agent/tool"
)

const RejectMessage = "Please try again. The info you provided is not sufficient to process your request."

// ToolAgent is one tool-calling agent: a fixed tool subset plus the model
// that picks from it. RequireIntent, when set, ends the turn for any other
// classified intent.
type ToolAgent struct {
	Type          contractx.AgentType
	Tools         []toolx.Name
	RequireIntent statex.Intent
	Selector      contractx.ToolSelector
	Invoker       toolx.Invoker
}

func AccountInfoAgent(selector contractx.ToolSelector, invoker toolx.Invoker) ToolAgent {
	return ToolAgent{
		Type:     contractx.AgentTypeAccountInfo,
		Tools:    toolx.AccountInfoTools,
		Selector: selector,
		Invoker:  invoker,
	}
}

func TransactionAgent(selector contractx.ToolSelector, invoker toolx.Invoker) ToolAgent {
	return ToolAgent{
		Type:          contractx.AgentTypeTransaction,
		Tools:         toolx.TransactionTools,
		RequireIntent: statex.IntentTransaction,
		Selector:      selector,
		Invoker:       invoker,
	}
}

// CallTool asks the agent's model for one tool call, validates it, injects
// the bearer token and invokes the tool exactly once.
func CallTool(ctx context.Context, st statex.Conversation, agent ToolAgent) (Step, error) {
	if agent.RequireIntent != statex.IntentNone && st.Intent != agent.RequireIntent {
		return stay(st, RouteEnd), nil
	}
	if st.NeedsAuth() {
		return stay(st, RouteAuthGate), nil
	}

	schemas, err := toolx.DescriptorsJSON(agent.Tools)
	if err != nil {
		return Step{}, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	var userInput string
	if last, ok := st.LastUserMessage(); ok {
		userInput = last.Content
	}

	proposal, err := agent.Selector.Select(ctx, contractx.ToolSelectionRequest{
		ToolSchemasJSON: schemas,
		ChatHistory:     st.Transcript(),
		UserInput:       userInput,
	})
	if err != nil {
		return Step{}, err
	}

	if !AcceptProposal(proposal, agent.Tools) {
		log.Debug().
			Str("session_id", st.SessionID).
			Str("agent", string(agent.Type)).
			Str("tool", proposal.Tool).
			Strs("missing", proposal.Missing).
			Msg("tool proposal rejected")
		return Step{
			State: st.WithMessages(statex.AssistantMessage(RejectMessage)),
			Next:  RouteEnd,
		}, nil
	}

	call, err := toolx.Decode(proposal.Tool, InjectToken(proposal.Provided, st.Token))
	if err != nil {
		return Step{}, err
	}

	reply, err := agent.Invoker.Invoke(ctx, call)
	if err != nil {
		return Step{}, err
	}

	log.Debug().
		Str("session_id", st.SessionID).
		Str("agent", string(agent.Type)).
		Str("tool", string(call.Tool())).
		Msg("tool call completed")

	return Step{
		State: st.WithMessages(statex.AssistantMessage(reply)),
		Next:  RouteEnd,
	}, nil
}

// AcceptProposal rejects a proposal with no tool, a tool outside subset, or
// anything other than the token left unfilled.
func AcceptProposal(p contractx.ToolCallProposal, subset []toolx.Name) bool {
	if p.Tool == "" || !toolx.Allowed(subset, p.Tool) {
		return false
	}
	return len(lo.Without(p.Missing, toolx.TokenParam)) == 0
}

// InjectToken returns a copy of provided whose token is the caller's, never
// one the model produced.
func InjectToken(provided map[string]any, token string) map[string]any {
	out := make(map[string]any, len(provided)+1)
	maps.Copy(out, provided)
	out[toolx.TokenParam] = token
	return out
}
