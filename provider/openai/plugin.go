package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/casualjim/sluice/pkg/slogx"
	"github.com/casualjim/sluice/provider"
	"github.com/casualjim/sluice/provider/plugins"
	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Name is the registry name this plugin registers under.
const Name = "openai"

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

var (
	// WithBaseURL points the plugin at a different OpenAI-compatible server.
	WithBaseURL = opts.ForName[Plugin, string]("baseURL")

	// WithAPIKey sets the bearer token. Defaults to $OPENAI_API_KEY.
	WithAPIKey = opts.ForName[Plugin, string]("apiKey")

	// WithModel sets the model used when the request names none.
	WithModel = opts.ForName[Plugin, string]("model")

	// WithHTTPClient swaps the HTTP client, e.g. to configure transport
	// timeouts or proxies.
	WithHTTPClient = opts.ForName[Plugin, *http.Client]("client")
)

// Plugin speaks the OpenAI chat-completions SSE wire format.
type Plugin struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// New builds the plugin and registers it under Name. The zero configuration
// targets api.openai.com with the key from $OPENAI_API_KEY.
func New(options ...opts.Option[Plugin]) (*Plugin, error) {
	p := &Plugin{
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{},
	}
	if err := opts.Apply(p, options); err != nil {
		return nil, err
	}
	if p.apiKey == "" {
		p.apiKey = os.Getenv("OPENAI_API_KEY")
	}

	plugins.Add(Name, p)
	return p, nil
}

// Delimiter implements provider.Plugin. Chat-completions events are
// blank-line separated.
func (p *Plugin) Delimiter() string { return "\n\n" }

// PrepareRequest implements provider.Plugin. It posts the completion
// request and hands back the raw SSE response body.
func (p *Plugin) PrepareRequest(ctx context.Context, params provider.CompletionParams) (io.ReadCloser, error) {
	body, err := p.buildRequest(params)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to build request: %w", err)
	}

	if params.Debug.Enabled(provider.DebugPlugin) {
		slog.DebugContext(ctx, "prepared chat completion request",
			slog.String("url", p.baseURL+"/chat/completions"),
			slogx.ByteString("body", body),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if msg := gjson.GetBytes(data, "error.message"); msg.Exists() {
			return nil, fmt.Errorf("openai: %s (status %d)", msg.String(), resp.StatusCode)
		}
		return nil, fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if resp.Body == nil {
		return nil, errors.New("openai: response has no body")
	}
	return resp.Body, nil
}

func (p *Plugin) buildRequest(params provider.CompletionParams) ([]byte, error) {
	model := params.Model
	if model == "" {
		model = p.model
	}

	body := []byte(`{"stream":true}`)
	var err error
	body, err = sjson.SetBytes(body, "model", model)
	if err != nil {
		return nil, err
	}

	msgs := make([]map[string]string, 0, 2)
	if params.Instructions != "" {
		msgs = append(msgs, map[string]string{"role": "system", "content": params.Instructions})
	}
	msgs = append(msgs, map[string]string{"role": "user", "content": params.Prompt})
	body, err = sjson.SetBytes(body, "messages", msgs)
	if err != nil {
		return nil, err
	}

	if params.Temperature > 0 {
		body, err = sjson.SetBytes(body, "temperature", params.Temperature)
		if err != nil {
			return nil, err
		}
	}
	if params.MaxTokens > 0 {
		body, err = sjson.SetBytes(body, "max_tokens", params.MaxTokens)
		if err != nil {
			return nil, err
		}
	}

	if so := params.ResponseSchema; so != nil && so.Schema != nil {
		schema, err := json.Marshal(so.Schema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response schema: %w", err)
		}

		rf := []byte(`{"type":"json_schema","json_schema":{"strict":true}}`)
		rf, err = sjson.SetBytes(rf, "json_schema.name", so.Name)
		if err != nil {
			return nil, err
		}
		if so.Description != "" {
			rf, err = sjson.SetBytes(rf, "json_schema.description", so.Description)
			if err != nil {
				return nil, err
			}
		}
		rf, err = sjson.SetRawBytes(rf, "json_schema.schema", schema)
		if err != nil {
			return nil, err
		}

		body, err = sjson.SetRawBytes(body, "response_format", rf)
		if err != nil {
			return nil, err
		}
	}

	return body, nil
}

// ParseEvent implements provider.Plugin. It understands three payload
// shapes: the "[DONE]" sentinel, a bare JSON string, and chat-completion
// chunk objects (streaming delta content or a parsed structured message).
func (p *Plugin) ParseEvent(line string) provider.Parsed {
	if !strings.HasPrefix(line, "data:") {
		// event:, id:, retry: and anything else carry no content
		return provider.None()
	}

	payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	switch {
	case payload == provider.DoneSentinel:
		return provider.Done()
	case payload == "":
		return provider.None()
	}

	if !gjson.Valid(payload) {
		return provider.None()
	}

	res := gjson.Parse(payload)
	if res.Type == gjson.String {
		return provider.Text(res.String())
	}

	if parsed := res.Get("choices.0.message.parsed"); parsed.Exists() {
		return provider.Text(parsed.Raw)
	}
	if content := res.Get("choices.0.delta.content"); content.Type == gjson.String {
		return provider.Text(content.String())
	}
	if content := res.Get("choices.0.message.content"); content.Type == gjson.String {
		return provider.Text(content.String())
	}

	return provider.None()
}
