package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Banking-Support/agent/contract"
)

type Config struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" split_words:"true" default:"http://localhost:8000"`
	Timeout    time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("%w: tools api base url is required", contractx.ErrValidation)
	}
	return nil
}

type Invoker interface {
	Invoke(ctx context.Context, call Call) (string, error)
}

// HTTPInvoker runs tool calls against the banking REST API. A non-success
// status is part of the reply text; only transport failures are errors.
type HTTPInvoker struct {
	baseURL string
	client  *http.Client
}

var _ Invoker = (*HTTPInvoker)(nil)

func NewHTTPInvoker(cfg Config, client *http.Client) *HTTPInvoker {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPInvoker{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/"),
		client:  client,
	}
}

func (h *HTTPInvoker) Invoke(ctx context.Context, call Call) (string, error) {
	if call == nil {
		return "", fmt.Errorf("%w: nil call", contractx.ErrToolInvoke)
	}
	target := call.request()

	var body io.Reader
	if target.body != nil {
		raw, err := json.Marshal(target.body)
		if err != nil {
			return "", fmt.Errorf("%w: marshal body for tool=%s: %v", contractx.ErrToolInvoke, call.Tool(), err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, target.method, h.baseURL+target.path, body)
	if err != nil {
		return "", fmt.Errorf("%w: build request for tool=%s: %v", contractx.ErrToolInvoke, call.Tool(), err)
	}
	req.Header.Set("Authorization", "Bearer "+target.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: tool=%s: %v", contractx.ErrToolInvoke, call.Tool(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response for tool=%s: %v", contractx.ErrToolInvoke, call.Tool(), err)
	}

	log.Debug().
		Str("tool", string(call.Tool())).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("tool invoked")

	return call.reply(resp.StatusCode == target.success, respBody), nil
}
