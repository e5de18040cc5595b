package orchestratornode

import statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"

const HelpMessage = "How can I assist you? You can ask about your account or transactions."

func Help(st statex.Conversation) Step {
	return Step{
		State: st.WithMessages(statex.AssistantMessage(HelpMessage)),
		Next:  RouteEnd,
	}
}
