package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
)

// ClassifyIntent labels the latest user message and routes to the matching
// agent. A conversation without a user message ends untouched.
func ClassifyIntent(
	ctx context.Context,
	st statex.Conversation,
	classifier contractx.IntentClassifier,
) (Step, error) {
	last, ok := st.LastUserMessage()
	if !ok {
		return stay(st, RouteEnd), nil
	}

	raw, err := classifier.Classify(ctx, contractx.ClassifyRequest{UserMessage: last.Content})
	if err != nil {
		return Step{}, err
	}

	intent := contractx.ParseIntent(raw)
	next := agentForIntent(intent)
	note := fmt.Sprintf("Intent classified as '%s'. Routing to %s_agent.", intent, intent)

	log.Debug().
		Str("session_id", st.SessionID).
		Str("intent", string(intent)).
		Str("next", string(next)).
		Msg("intent classified")

	return Step{
		State: st.WithMessages(statex.AssistantMessage(note)).WithIntent(intent),
		Next:  next,
	}, nil
}
