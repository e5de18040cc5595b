package tool

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

type Name string

const (
	CreateAccount             Name = "create_account"
	GetAccountInfo            Name = "get_account_info"
	UpdateAccountInfo         Name = "update_account_info"
	DeleteAccount             Name = "delete_account"
	CreateTransaction         Name = "create_transaction_tool"
	GetTransaction            Name = "get_transaction_tool"
	ListTransactionsByAccount Name = "list_transactions_by_account_tool"
)

// TokenParam is injected by the caller and never expected from the model.
const TokenParam = "token"

var (
	AccountInfoTools = []Name{CreateAccount, GetAccountInfo, UpdateAccountInfo, DeleteAccount}
	TransactionTools = []Name{CreateTransaction, ListTransactionsByAccount, GetTransaction}
)

// Descriptor is what the model sees for one tool.
type Descriptor struct {
	Name        Name               `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

var descriptions = map[Name]string{
	CreateAccount:             "Create a new account for the current user. Requires: name, currency, account_type, initial balance, and authorization token.",
	GetAccountInfo:            "Get account information for the current user. Requires: authorization token.",
	UpdateAccountInfo:         "Update the current user's account information. Requires: update fields as a dictionary and authorization token.",
	DeleteAccount:             "Deactivate the current user's account. Requires: authorization token.",
	CreateTransaction:         "Initiate a new transaction between two accounts after balance validation.",
	GetTransaction:            "Fetch details of a specific transaction.",
	ListTransactionsByAccount: "Fetch all transactions for a given account.",
}

var descriptors = buildDescriptors()

func buildDescriptors() map[Name]Descriptor {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	args := map[Name]any{
		CreateAccount:             CreateAccountArgs{},
		GetAccountInfo:            GetAccountInfoArgs{},
		UpdateAccountInfo:         UpdateAccountInfoArgs{},
		DeleteAccount:             DeleteAccountArgs{},
		CreateTransaction:         CreateTransactionArgs{},
		GetTransaction:            GetTransactionArgs{},
		ListTransactionsByAccount: ListTransactionsByAccountArgs{},
	}

	out := make(map[Name]Descriptor, len(args))
	for name, v := range args {
		s := reflector.Reflect(v)
		s.Version = ""
		out[name] = Descriptor{
			Name:        name,
			Description: descriptions[name],
			Parameters:  s,
		}
	}
	return out
}

// ParseName maps a model-provided tool name onto the closed set.
func ParseName(raw string) (Name, bool) {
	n := Name(raw)
	_, ok := descriptors[n]
	return n, ok
}

func Describe(n Name) (Descriptor, bool) {
	d, ok := descriptors[n]
	return d, ok
}

// Allowed reports whether raw names a tool inside subset.
func Allowed(subset []Name, raw string) bool {
	n, ok := ParseName(raw)
	return ok && lo.Contains(subset, n)
}

// DescriptorsJSON renders the descriptors of subset in order, as the model
// prompt expects them.
func DescriptorsJSON(subset []Name) (string, error) {
	list := lo.FilterMap(subset, func(n Name, _ int) (Descriptor, bool) {
		return Describe(n)
	})
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal tool descriptors: %w", err)
	}
	return string(raw), nil
}
