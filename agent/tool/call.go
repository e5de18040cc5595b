package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
)

// Call is one fully decoded tool invocation. The set of implementations is
// closed: only the seven *Args types in this package satisfy it.
type Call interface {
	Tool() Name
	validate() error
	request() request
	reply(ok bool, body []byte) string
}

type request struct {
	method  string
	path    string
	token   string
	body    any
	success int
}

// Text accepts a JSON string or a bare number.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	if _, err := strconv.ParseFloat(string(raw), 64); err != nil {
		return fmt.Errorf("expected string, got %s", raw)
	}
	*t = Text(raw)
	return nil
}

// Number accepts a JSON number or a numeric string.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	s := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %s", raw)
	}
	*n = Number(f)
	return nil
}

type CreateAccountArgs struct {
	Name        Text   `json:"name" jsonschema:"description=Account holder name"`
	Currency    Text   `json:"currency" jsonschema:"description=Currency code such as INR"`
	AccountType Text   `json:"account_type" jsonschema:"description=Account type such as savings or current"`
	Balance     Number `json:"balance" jsonschema:"description=Initial balance"`
	Token       string `json:"token" jsonschema:"description=Authorization token"`
}

type GetAccountInfoArgs struct {
	Token string `json:"token" jsonschema:"description=Authorization token"`
}

type UpdateAccountInfoArgs struct {
	UpdateData map[string]any `json:"update_data" jsonschema:"description=Fields to update such as account_type or currency"`
	Token      string         `json:"token" jsonschema:"description=Authorization token"`
}

type DeleteAccountArgs struct {
	Token string `json:"token" jsonschema:"description=Authorization token"`
}

type CreateTransactionArgs struct {
	FromAccount Text   `json:"from_account" jsonschema:"description=Sender account number"`
	ToAccount   Text   `json:"to_account" jsonschema:"description=Recipient account number"`
	Amount      Number `json:"amount" jsonschema:"description=Amount to transfer"`
	Token       string `json:"token" jsonschema:"description=Authorization token"`
}

type GetTransactionArgs struct {
	TransactionID Text   `json:"transaction_id" jsonschema:"description=Transaction identifier"`
	Token         string `json:"token" jsonschema:"description=Authorization token"`
}

type ListTransactionsByAccountArgs struct {
	AccountNumber Text   `json:"account_number" jsonschema:"description=Account number"`
	Token         string `json:"token" jsonschema:"description=Authorization token"`
}

// Decode builds the typed call for name from the model-provided arguments
// (with the token already injected). Unknown names and arguments that do not
// fit the tool's shape fail with ErrSchemaViolation.
func Decode(name string, provided map[string]any) (Call, error) {
	n, ok := ParseName(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown tool %q", contractx.ErrSchemaViolation, name)
	}

	switch n {
	case CreateAccount:
		return decodeArgs[CreateAccountArgs](provided)
	case GetAccountInfo:
		return decodeArgs[GetAccountInfoArgs](provided)
	case UpdateAccountInfo:
		return decodeArgs[UpdateAccountInfoArgs](provided)
	case DeleteAccount:
		return decodeArgs[DeleteAccountArgs](provided)
	case CreateTransaction:
		return decodeArgs[CreateTransactionArgs](provided)
	case GetTransaction:
		return decodeArgs[GetTransactionArgs](provided)
	case ListTransactionsByAccount:
		return decodeArgs[ListTransactionsByAccountArgs](provided)
	default:
		return nil, fmt.Errorf("%w: unknown tool %q", contractx.ErrSchemaViolation, name)
	}
}

func decodeArgs[T Call](provided map[string]any) (Call, error) {
	var args T
	raw, err := json.Marshal(provided)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal args for tool=%s: %v", contractx.ErrSchemaViolation, args.Tool(), err)
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("%w: decode args for tool=%s: %v", contractx.ErrSchemaViolation, args.Tool(), err)
	}
	if err := args.validate(); err != nil {
		return nil, fmt.Errorf("%w: tool=%s: %v", contractx.ErrSchemaViolation, args.Tool(), err)
	}
	return args, nil
}

func requireText(fields map[string]Text) error {
	for k, v := range fields {
		if strings.TrimSpace(string(v)) == "" {
			return fmt.Errorf("%s is required", k)
		}
	}
	return nil
}

func (a CreateAccountArgs) Tool() Name { return CreateAccount }

func (a CreateAccountArgs) validate() error {
	return requireText(map[string]Text{"name": a.Name, "currency": a.Currency, "account_type": a.AccountType})
}

func (a CreateAccountArgs) request() request {
	return request{
		method: http.MethodPost,
		path:   "/account/create",
		token:  a.Token,
		body: map[string]any{
			"name":         a.Name,
			"currency":     a.Currency,
			"account_type": a.AccountType,
			"balance":      float64(a.Balance),
		},
		success: http.StatusCreated,
	}
}

func (a CreateAccountArgs) reply(ok bool, body []byte) string {
	if ok {
		return "Account created successfully: " + renderJSON(body)
	}
	return "Failed to create account: " + string(body)
}

func (a GetAccountInfoArgs) Tool() Name      { return GetAccountInfo }
func (a GetAccountInfoArgs) validate() error { return nil }

func (a GetAccountInfoArgs) request() request {
	return request{method: http.MethodGet, path: "/account/info", token: a.Token, success: http.StatusOK}
}

func (a GetAccountInfoArgs) reply(ok bool, body []byte) string {
	if ok {
		return "Account info: " + renderJSON(body)
	}
	return "Failed to retrieve account info: " + string(body)
}

func (a UpdateAccountInfoArgs) Tool() Name { return UpdateAccountInfo }

func (a UpdateAccountInfoArgs) validate() error {
	if len(a.UpdateData) == 0 {
		return fmt.Errorf("update_data is required")
	}
	return nil
}

func (a UpdateAccountInfoArgs) request() request {
	return request{method: http.MethodPut, path: "/account/update", token: a.Token, body: a.UpdateData, success: http.StatusOK}
}

func (a UpdateAccountInfoArgs) reply(ok bool, body []byte) string {
	if ok {
		return "Account updated: " + renderJSON(body)
	}
	return "Failed to update account: " + string(body)
}

func (a DeleteAccountArgs) Tool() Name      { return DeleteAccount }
func (a DeleteAccountArgs) validate() error { return nil }

func (a DeleteAccountArgs) request() request {
	return request{method: http.MethodDelete, path: "/account/delete", token: a.Token, success: http.StatusNoContent}
}

func (a DeleteAccountArgs) reply(ok bool, body []byte) string {
	if ok {
		return "Account deleted successfully."
	}
	return "Failed to delete account: " + string(body)
}

func (a CreateTransactionArgs) Tool() Name { return CreateTransaction }

func (a CreateTransactionArgs) validate() error {
	return requireText(map[string]Text{"from_account": a.FromAccount, "to_account": a.ToAccount})
}

func (a CreateTransactionArgs) request() request {
	return request{
		method: http.MethodPost,
		path:   "/transactions/create",
		token:  a.Token,
		body: map[string]any{
			"account_number":    a.FromAccount,
			"to_account_number": a.ToAccount,
			"amount":            float64(a.Amount),
		},
		success: http.StatusCreated,
	}
}

func (a CreateTransactionArgs) reply(ok bool, body []byte) string {
	if ok {
		return "Transaction successful: " + renderJSON(body)
	}
	return "Transaction failed: " + string(body)
}

func (a GetTransactionArgs) Tool() Name { return GetTransaction }

func (a GetTransactionArgs) validate() error {
	return requireText(map[string]Text{"transaction_id": a.TransactionID})
}

func (a GetTransactionArgs) request() request {
	return request{
		method:  http.MethodGet,
		path:    "/transactions/" + url.PathEscape(string(a.TransactionID)),
		token:   a.Token,
		success: http.StatusOK,
	}
}

func (a GetTransactionArgs) reply(ok bool, body []byte) string {
	if ok {
		return "Transaction details: " + renderJSON(body)
	}
	return "Failed to fetch transaction: " + string(body)
}

func (a ListTransactionsByAccountArgs) Tool() Name { return ListTransactionsByAccount }

func (a ListTransactionsByAccountArgs) validate() error {
	return requireText(map[string]Text{"account_number": a.AccountNumber})
}

func (a ListTransactionsByAccountArgs) request() request {
	return request{
		method:  http.MethodGet,
		path:    "/transactions/account/" + url.PathEscape(string(a.AccountNumber)),
		token:   a.Token,
		success: http.StatusOK,
	}
}

func (a ListTransactionsByAccountArgs) reply(ok bool, body []byte) string {
	if ok {
		return fmt.Sprintf("Transaction history for account %s:\n%s", a.AccountNumber, renderJSON(body))
	}
	return "Failed to fetch transactions: " + string(body)
}

func renderJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return strings.TrimSpace(string(body))
	}
	return buf.String()
}
