package orchestrator

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
	nodex "github.com/tanpawarit/Chative-Banking-Support/agent/nodes"
	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
	toolx "github.com/tanpawarit/Chative-Banking-Support/agent/tool"
)

type fakeClassifier struct {
	answer string
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, req contractx.ClassifyRequest) (string, error) {
	f.calls++
	return f.answer, f.err
}

type fakeSelector struct {
	proposal contractx.ToolCallProposal
	err      error
	calls    int
}

func (f *fakeSelector) Select(ctx context.Context, req contractx.ToolSelectionRequest) (contractx.ToolCallProposal, error) {
	f.calls++
	return f.proposal, f.err
}

type fakeRegistry struct {
	classifier  contractx.IntentClassifier
	accountInfo contractx.ToolSelector
	transaction contractx.ToolSelector
}

func (f *fakeRegistry) Classifier() contractx.IntentClassifier { return f.classifier }
func (f *fakeRegistry) AccountInfo() contractx.ToolSelector    { return f.accountInfo }
func (f *fakeRegistry) Transaction() contractx.ToolSelector    { return f.transaction }

type fakeInvoker struct {
	reply string
	err   error
	calls []toolx.Call
}

func (f *fakeInvoker) Invoke(ctx context.Context, call toolx.Call) (string, error) {
	f.calls = append(f.calls, call)
	return f.reply, f.err
}

func newTestRouter(t *testing.T, reg *fakeRegistry, invoker *fakeInvoker) *Router {
	t.Helper()
	if reg.accountInfo == nil {
		reg.accountInfo = &fakeSelector{}
	}
	if reg.transaction == nil {
		reg.transaction = &fakeSelector{}
	}
	r, err := New(reg, invoker)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func contents(msgs []statex.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Content)
	}
	return out
}

func TestRunAccountInfoReauthenticatesThenCallsTool(t *testing.T) {
	t.Parallel()

	selector := &fakeSelector{proposal: contractx.ToolCallProposal{
		Tool:     "get_account_info",
		Provided: map[string]any{},
		Missing:  []string{"token"},
	}}
	invoker := &fakeInvoker{reply: `Account info: {"balance":"500.00"}`}
	router := newTestRouter(t, &fakeRegistry{
		classifier:  &fakeClassifier{answer: "account_info"},
		accountInfo: selector,
	}, invoker)

	in := statex.Conversation{
		Messages: []statex.Message{statex.UserMessage("I want to check my account balance")},
		Token:    "tok",
	}
	out, err := router.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !out.Authenticated || out.Intent != statex.IntentAccountInfo {
		t.Fatalf("unexpected final state: %+v", out)
	}
	want := []string{
		"I want to check my account balance",
		"Intent classified as 'account_info'. Routing to account_info_agent.",
		nodex.SimulatedOTPMessage,
		nodex.OTPVerifiedMessage,
		`Account info: {"balance":"500.00"}`,
	}
	got := contents(out.Messages)
	if len(got) != len(want) {
		t.Fatalf("unexpected messages: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
	if selector.calls != 1 || len(invoker.calls) != 1 {
		t.Fatalf("expected one completion and one tool call, got %d/%d", selector.calls, len(invoker.calls))
	}
	if call := invoker.calls[0].(toolx.GetAccountInfoArgs); call.Token != "tok" {
		t.Fatalf("token not injected: %#v", call)
	}
	if in.Authenticated || len(in.Messages) != 1 {
		t.Fatal("input conversation mutated")
	}
}

func TestRunTransactionMissingParameterRejected(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{}
	router := newTestRouter(t, &fakeRegistry{
		classifier: &fakeClassifier{answer: "transaction"},
		transaction: &fakeSelector{proposal: contractx.ToolCallProposal{
			Tool:     "create_transaction_tool",
			Provided: map[string]any{"to_account": "123", "amount": 50},
			Missing:  []string{"from_account"},
		}},
	}, invoker)

	out, err := router.Run(context.Background(), statex.Conversation{
		Messages:      []statex.Message{statex.UserMessage("transfer $50 to account 123")},
		Authenticated: true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	last, _ := out.LastMessage()
	if last.Content != nodex.RejectMessage {
		t.Fatalf("unexpected final message: %q", last.Content)
	}
	if len(out.Messages) != 3 {
		t.Fatalf("expected query, note and rejection, got %#v", contents(out.Messages))
	}
	if len(invoker.calls) != 0 {
		t.Fatal("no tool may be invoked")
	}
}

func TestRunGibberishFallsBackToHelp(t *testing.T) {
	t.Parallel()

	accountSelector := &fakeSelector{}
	router := newTestRouter(t, &fakeRegistry{
		classifier:  &fakeClassifier{answer: "I am not sure"},
		accountInfo: accountSelector,
	}, &fakeInvoker{})

	out, err := router.Run(context.Background(), statex.Conversation{
		Messages: []statex.Message{statex.UserMessage("asdkjas")},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	last, _ := out.LastMessage()
	if last.Content != nodex.HelpMessage {
		t.Fatalf("unexpected final message: %q", last.Content)
	}
	if out.Authenticated {
		t.Fatal("help path must not touch the authenticated flag")
	}
	if accountSelector.calls != 0 {
		t.Fatal("help path must not call a tool selector")
	}
}

func TestRunWithoutUserMessageEndsImmediately(t *testing.T) {
	t.Parallel()

	classifier := &fakeClassifier{answer: "help"}
	router := newTestRouter(t, &fakeRegistry{classifier: classifier}, &fakeInvoker{})

	in := statex.Conversation{Messages: []statex.Message{statex.AssistantMessage("hello")}}
	out, err := router.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out.Messages) != 1 || classifier.calls != 0 {
		t.Fatalf("state must be unchanged: %#v", out)
	}
}

func TestRunPropagatesMalformedProposal(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &fakeRegistry{
		classifier:  &fakeClassifier{answer: "transaction"},
		transaction: &fakeSelector{err: contractx.ErrSchemaViolation},
	}, &fakeInvoker{})

	_, err := router.Run(context.Background(), statex.Conversation{
		Messages:      []statex.Message{statex.UserMessage("show transaction abc")},
		Authenticated: true,
	})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &fakeInvoker{}); err == nil {
		t.Fatal("expected error for nil registry")
	}
	if _, err := New(&fakeRegistry{}, nil); err == nil {
		t.Fatal("expected error for nil invoker")
	}
}
