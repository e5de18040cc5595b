package orchestratornode

import (
	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
)

// Route names the router node that runs next.
type Route string

const (
	RouteClassify    Route = "classify"
	RouteAccountInfo Route = "account_info_agent"
	RouteTransaction Route = "transaction_agent"
	RouteHelp        Route = "help_agent"
	RouteAuthGate    Route = "auth_gate"
	RouteEnd         Route = "end"
)

// Step is what every router node returns: the new state and where to go.
type Step struct {
	State statex.Conversation
	Next  Route
}

func stay(st statex.Conversation, next Route) Step {
	return Step{State: st, Next: next}
}

// agentForIntent is the classifier's routing table. Unset or unknown
// intents go to the help agent.
func agentForIntent(intent statex.Intent) Route {
	switch intent {
	case statex.IntentAccountInfo:
		return RouteAccountInfo
	case statex.IntentTransaction:
		return RouteTransaction
	default:
		return RouteHelp
	}
}

// gateTarget is where the auth gate hands control back to.
func gateTarget(intent statex.Intent) Route {
	switch intent {
	case statex.IntentAccountInfo:
		return RouteAccountInfo
	case statex.IntentTransaction:
		return RouteTransaction
	default:
		return RouteEnd
	}
}
