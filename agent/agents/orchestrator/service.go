package orchestrator

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
	nodex "github.com/tanpawarit/Chative-Banking-Support/agent/nodes"
	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
	toolx "github.com/tanpawarit/Chative-Banking-Support/agent/tool"
)

// Router runs one conversation turn through classify -> (auth gate) ->
// agent -> end.
type Router struct {
	models  contractx.Registry
	invoker toolx.Invoker

	graphRunner compose.Runnable[statex.Conversation, nodex.Step]
}

func New(models contractx.Registry, invoker toolx.Invoker) (*Router, error) {
	if models == nil {
		return nil, errors.New("model registry is required")
	}
	if invoker == nil {
		return nil, errors.New("tool invoker is required")
	}

	r := &Router{
		models:  models,
		invoker: invoker,
	}

	graphRunner, err := r.compileRouterGraph(context.Background())
	if err != nil {
		return nil, err
	}
	r.graphRunner = graphRunner

	return r, nil
}

// Run returns the conversation as it stands when the turn reaches its end.
// The input value is never modified.
func (r *Router) Run(ctx context.Context, st statex.Conversation) (statex.Conversation, error) {
	out, err := r.graphRunner.Invoke(ctx, st)
	if err != nil {
		return statex.Conversation{}, err
	}

	log.Debug().
		Str("session_id", st.SessionID).
		Str("intent", string(out.State.Intent)).
		Int("appended", len(out.State.Messages)-len(st.Messages)).
		Msg("router turn finished")

	return out.State, nil
}
