package orchestratornode

import (
	"github.com/rs/zerolog/log"
	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
)

const (
	SimulatedOTPMessage = "Simulated OTP: 123456"
	OTPVerifiedMessage  = "OTP verified successfully."
)

// AuthGate lets authenticated conversations through to the intent's agent.
// Otherwise it runs the simulated OTP exchange, which always succeeds.
// TODO: replace the simulated exchange with a real OTP challenge and give
// the gate a failure route.
func AuthGate(st statex.Conversation) Step {
	next := gateTarget(st.Intent)
	if !st.NeedsAuth() {
		return stay(st, next)
	}

	log.Debug().
		Str("session_id", st.SessionID).
		Str("next", string(next)).
		Msg("simulated re-authentication")

	return Step{
		State: st.WithMessages(
			statex.AssistantMessage(SimulatedOTPMessage),
			statex.AssistantMessage(OTPVerifiedMessage),
		).WithAuthenticated(),
		Next: next,
	}
}
