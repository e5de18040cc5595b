package contract

import (
	"testing"

	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
)

func TestParseIntent(t *testing.T) {
	t.Parallel()

	cases := map[string]statex.Intent{
		"account_info":       statex.IntentAccountInfo,
		"  Transaction \n":   statex.IntentTransaction,
		"HELP":               statex.IntentHelp,
		"billing":            statex.IntentHelp,
		"":                   statex.IntentHelp,
		"account_info agent": statex.IntentHelp,
	}
	for raw, want := range cases {
		if got := ParseIntent(raw); got != want {
			t.Fatalf("ParseIntent(%q) = %q, want %q", raw, got, want)
		}
	}
}
