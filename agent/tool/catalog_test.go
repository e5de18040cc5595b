package tool

import (
	"encoding/json"
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
)

func TestDescriptorsJSONKeepsSubsetOrder(t *testing.T) {
	t.Parallel()

	raw, err := DescriptorsJSON(TransactionTools)
	if err != nil {
		t.Fatalf("DescriptorsJSON() error = %v", err)
	}

	var list []struct {
		Name       string `json:"name"`
		Parameters struct {
			Properties map[string]any `json:"properties"`
			Required   []string       `json:"required"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("unmarshal descriptors: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(list))
	}
	if list[0].Name != string(CreateTransaction) || list[2].Name != string(GetTransaction) {
		t.Fatalf("unexpected order: %s, %s", list[0].Name, list[2].Name)
	}
	for _, key := range []string{"from_account", "to_account", "amount", "token"} {
		if _, ok := list[0].Parameters.Properties[key]; !ok {
			t.Fatalf("create_transaction_tool missing parameter %s", key)
		}
	}
	if len(list[0].Parameters.Required) != 4 {
		t.Fatalf("expected 4 required params, got %#v", list[0].Parameters.Required)
	}
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	if !Allowed(AccountInfoTools, "get_account_info") {
		t.Fatal("get_account_info must be allowed for account tools")
	}
	if Allowed(AccountInfoTools, "create_transaction_tool") {
		t.Fatal("transaction tool must not be allowed for account tools")
	}
	if Allowed(TransactionTools, "transfer_everything") {
		t.Fatal("unknown tool must never be allowed")
	}
}

func TestDecodeAcceptsNumericStrings(t *testing.T) {
	t.Parallel()

	call, err := Decode("create_transaction_tool", map[string]any{
		"from_account": 100200300400.0,
		"to_account":   "123",
		"amount":       "50.25",
		"token":        "tok",
	})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	args, ok := call.(CreateTransactionArgs)
	if !ok {
		t.Fatalf("unexpected call type %T", call)
	}
	if args.FromAccount != "100200300400" || args.ToAccount != "123" || args.Amount != 50.25 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		tool     string
		provided map[string]any
	}{
		{name: "unknown tool", tool: "nope", provided: map[string]any{"token": "t"}},
		{name: "missing field", tool: "get_transaction_tool", provided: map[string]any{"token": "t"}},
		{name: "bad number", tool: "create_transaction_tool", provided: map[string]any{
			"from_account": "1", "to_account": "2", "amount": "fifty", "token": "t",
		}},
		{name: "wrong shape", tool: "update_account_info", provided: map[string]any{"update_data": "savings", "token": "t"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tc.tool, tc.provided)
			if !errors.Is(err, contractx.ErrSchemaViolation) {
				t.Fatalf("expected ErrSchemaViolation, got %v", err)
			}
		})
	}
}
