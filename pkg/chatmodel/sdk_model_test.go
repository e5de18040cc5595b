package chatmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestSDKChatModelGenerate(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"cmpl-1","object":"chat.completion","created":1,"model":"test-model","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"transaction"}}]}`)
	}))
	t.Cleanup(server.Close)

	cfg := Config{BaseURL: server.URL, APIKey: "secret", Model: "test-model", Driver: DriverSDK}
	m, err := cfg.New(context.Background())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := m.Generate(context.Background(), []*schema.Message{
		schema.SystemMessage("classify"),
		schema.UserMessage("send money"),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Content != "transaction" {
		t.Fatalf("unexpected content: %q", out.Content)
	}
	if out.Role != schema.Assistant {
		t.Fatalf("unexpected role: %s", out.Role)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Fatalf("unexpected model: %#v", gotBody["model"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("unexpected messages: %#v", gotBody["messages"])
	}
}

func TestConfigNewUnsupportedDriver(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "k", Model: "m", Driver: "grpc"}
	if _, err := cfg.New(context.Background()); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if NewClient(Config{APIKey: "  "}) != nil {
		t.Fatal("expected nil client without api key")
	}
}
