package contract

import (
	"strings"

	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
)

type AgentType string

const (
	AgentTypeClassifier  AgentType = "classifier"
	AgentTypeAccountInfo AgentType = "account_info"
	AgentTypeTransaction AgentType = "transaction"
	AgentTypeHelp        AgentType = "help"
)

// ParseIntent normalises a raw model answer into an intent label. Anything
// outside the three known labels becomes IntentHelp.
func ParseIntent(raw string) statex.Intent {
	switch intent := statex.Intent(strings.ToLower(strings.TrimSpace(raw))); intent {
	case statex.IntentAccountInfo, statex.IntentTransaction, statex.IntentHelp:
		return intent
	default:
		return statex.IntentHelp
	}
}

type ClassifyRequest struct {
	UserMessage string `json:"user_message"`
}

type ToolSelectionRequest struct {
	ToolSchemasJSON string `json:"tool_schemas_json"`
	ChatHistory     string `json:"chat_history"`
	UserInput       string `json:"user_input"`
}

// ToolCallProposal is the model's structured answer for a tool-calling turn.
// Tool is empty when the model picked no tool.
type ToolCallProposal struct {
	Tool     string         `json:"tool"`
	Provided map[string]any `json:"provided"`
	Missing  []string       `json:"missing"`
}
