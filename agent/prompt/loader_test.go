package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSetPlaceholders(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()
	if !strings.Contains(set.Classifier, "{user_query}") {
		t.Fatal("classifier prompt must reference {user_query}")
	}
	for _, placeholder := range []string{"{tool_schemas_json}", "{chat_history}", "{user_input}"} {
		if !strings.Contains(set.ToolCalling, placeholder) {
			t.Fatalf("tool calling prompt must reference %s", placeholder)
		}
	}
	if strings.HasPrefix(set.ToolCalling, "\n") || strings.HasSuffix(set.ToolCalling, "\n") {
		t.Fatal("prompt must be trimmed")
	}
}
