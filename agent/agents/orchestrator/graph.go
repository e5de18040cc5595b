package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/Chative-Banking-Support/agent/nodes"
	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
)

// maxRunSteps bounds one turn: classify, agent, gate, agent, end.
const maxRunSteps = 10

func nodeKey(route nodex.Route) string {
	if route == nodex.RouteEnd {
		return compose.END
	}
	return string(route)
}

func routeBranch(targets ...nodex.Route) *compose.GraphBranch {
	ends := make(map[string]bool, len(targets))
	for _, t := range targets {
		ends[nodeKey(t)] = true
	}
	return compose.NewGraphBranch(
		func(ctx context.Context, in nodex.Step) (string, error) {
			return nodeKey(in.Next), nil
		},
		ends,
	)
}

func (r *Router) compileRouterGraph(ctx context.Context) (compose.Runnable[statex.Conversation, nodex.Step], error) {
	graph := compose.NewGraph[statex.Conversation, nodex.Step]()

	accountAgent := nodex.AccountInfoAgent(r.models.AccountInfo(), r.invoker)
	transactionAgent := nodex.TransactionAgent(r.models.Transaction(), r.invoker)

	if err := graph.AddLambdaNode(string(nodex.RouteClassify),
		compose.InvokableLambda(func(ctx context.Context, in statex.Conversation) (nodex.Step, error) {
			return nodex.ClassifyIntent(ctx, in, r.models.Classifier())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.RouteAccountInfo),
		compose.InvokableLambda(func(ctx context.Context, in nodex.Step) (nodex.Step, error) {
			return nodex.CallTool(ctx, in.State, accountAgent)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node account_info_agent: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.RouteTransaction),
		compose.InvokableLambda(func(ctx context.Context, in nodex.Step) (nodex.Step, error) {
			return nodex.CallTool(ctx, in.State, transactionAgent)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node transaction_agent: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.RouteAuthGate),
		compose.InvokableLambda(func(ctx context.Context, in nodex.Step) (nodex.Step, error) {
			return nodex.AuthGate(in.State), nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node auth_gate: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.RouteHelp),
		compose.InvokableLambda(func(ctx context.Context, in nodex.Step) (nodex.Step, error) {
			return nodex.Help(in.State), nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node help_agent: %w", err)
	}

	if err := graph.AddEdge(compose.START, string(nodex.RouteClassify)); err != nil {
		return nil, fmt.Errorf("add edge start->classify: %w", err)
	}
	if err := graph.AddEdge(string(nodex.RouteHelp), compose.END); err != nil {
		return nil, fmt.Errorf("add edge help_agent->end: %w", err)
	}

	branches := []struct {
		from    nodex.Route
		targets []nodex.Route
	}{
		{nodex.RouteClassify, []nodex.Route{nodex.RouteAccountInfo, nodex.RouteTransaction, nodex.RouteHelp, nodex.RouteEnd}},
		{nodex.RouteAccountInfo, []nodex.Route{nodex.RouteAuthGate, nodex.RouteEnd}},
		{nodex.RouteTransaction, []nodex.Route{nodex.RouteAuthGate, nodex.RouteEnd}},
		{nodex.RouteAuthGate, []nodex.Route{nodex.RouteAccountInfo, nodex.RouteTransaction, nodex.RouteEnd}},
	}
	for _, b := range branches {
		if err := graph.AddBranch(string(b.from), routeBranch(b.targets...)); err != nil {
			return nil, fmt.Errorf("add branch %s: %w", b.from, err)
		}
	}

	runner, err := graph.Compile(ctx,
		compose.WithGraphName("orchestrator.router"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
		compose.WithMaxRunSteps(maxRunSteps),
	)
	if err != nil {
		return nil, fmt.Errorf("compile router graph: %w", err)
	}
	return runner, nil
}
