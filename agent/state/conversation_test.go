package state

import "testing"

func TestWithMessagesDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := Conversation{Messages: make([]Message, 1, 4)}
	base.Messages[0] = UserMessage("hi")

	a := base.WithMessages(AssistantMessage("a"))
	b := base.WithMessages(AssistantMessage("b"))

	if len(base.Messages) != 1 {
		t.Fatalf("receiver mutated: %#v", base.Messages)
	}
	if a.Messages[1].Content != "a" || b.Messages[1].Content != "b" {
		t.Fatalf("derived states share backing array: a=%#v b=%#v", a.Messages, b.Messages)
	}
}

func TestWithAuthenticatedClearsReauth(t *testing.T) {
	t.Parallel()

	st := Conversation{ReauthRequired: true}
	if !st.NeedsAuth() {
		t.Fatal("expected NeedsAuth for unauthenticated state")
	}

	next := st.WithAuthenticated()
	if next.NeedsAuth() {
		t.Fatal("authenticated state must not need auth")
	}
	if !st.ReauthRequired || st.Authenticated {
		t.Fatal("receiver mutated")
	}
}

func TestLastUserMessageSkipsAssistant(t *testing.T) {
	t.Parallel()

	st := Conversation{Messages: []Message{
		UserMessage("first"),
		AssistantMessage("reply"),
		UserMessage("second"),
		AssistantMessage("note"),
	}}

	msg, ok := st.LastUserMessage()
	if !ok || msg.Content != "second" {
		t.Fatalf("LastUserMessage() = %#v, %v", msg, ok)
	}

	if _, ok := (Conversation{}).LastUserMessage(); ok {
		t.Fatal("expected no user message in empty conversation")
	}
}

func TestTranscript(t *testing.T) {
	t.Parallel()

	st := Conversation{Messages: []Message{
		UserMessage("check balance"),
		AssistantMessage("Account info: {}"),
	}}
	want := "User: check balance\nAssistant: Account info: {}"
	if got := st.Transcript(); got != want {
		t.Fatalf("Transcript() = %q, want %q", got, want)
	}
}
