package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/classifier.txt
	classifierRaw string

	//go:embed template/tool_calling.txt
	toolCallingRaw string
)

// PromptSet holds loaded prompt content. Templates use eino FString
// placeholders; literal braces are doubled.
type PromptSet struct {
	Classifier  string
	ToolCalling string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Classifier:  strings.TrimSpace(classifierRaw),
		ToolCalling: strings.TrimSpace(toolCallingRaw),
	}
}
