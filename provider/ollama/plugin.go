package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/casualjim/sluice/pkg/slogx"
	"github.com/casualjim/sluice/provider"
	"github.com/casualjim/sluice/provider/plugins"
	"github.com/fogfish/opts"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Name is the registry name this plugin registers under.
const Name = "ollama"

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2"
)

var (
	// WithBaseURL points the plugin at a non-default Ollama server.
	WithBaseURL = opts.ForName[Plugin, string]("baseURL")

	// WithModel sets the model used when the request names none.
	WithModel = opts.ForName[Plugin, string]("model")

	// WithHTTPClient swaps the HTTP client.
	WithHTTPClient = opts.ForName[Plugin, *http.Client]("client")
)

// Plugin speaks the Ollama chat NDJSON wire format.
type Plugin struct {
	baseURL string
	model   string
	client  *http.Client
}

// New builds the plugin and registers it under Name.
func New(options ...opts.Option[Plugin]) (*Plugin, error) {
	p := &Plugin{
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{},
	}
	if err := opts.Apply(p, options); err != nil {
		return nil, err
	}

	plugins.Add(Name, p)
	return p, nil
}

// Delimiter implements provider.Plugin. Ollama emits one JSON event per
// line.
func (p *Plugin) Delimiter() string { return "\n" }

// PrepareRequest implements provider.Plugin.
func (p *Plugin) PrepareRequest(ctx context.Context, params provider.CompletionParams) (io.ReadCloser, error) {
	body, err := p.buildRequest(params)
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to build request: %w", err)
	}

	if params.Debug.Enabled(provider.DebugPlugin) {
		slog.DebugContext(ctx, "prepared chat request",
			slog.String("url", p.baseURL+"/api/chat"),
			slogx.ByteString("body", body),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if msg := gjson.GetBytes(data, "error"); msg.Exists() {
			return nil, fmt.Errorf("ollama: %s (status %d)", msg.String(), resp.StatusCode)
		}
		return nil, fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}
	if resp.Body == nil {
		return nil, errors.New("ollama: response has no body")
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
		body, err = sjson.SetBytes(body, "options.temperature", params.Temperature)
		if err != nil {
			return nil, err
		}
	}
	if params.MaxTokens > 0 {
		body, err = sjson.SetBytes(body, "options.num_predict", params.MaxTokens)
		if err != nil {
			return nil, err
		}
	}

	// Ollama has no response_format schema support over /api/chat; the
	// "format" field accepts a raw JSON schema since 0.5.
	if so := params.ResponseSchema; so != nil && so.Schema != nil {
		schema, err := so.Schema.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response schema: %w", err)
		}
		body, err = sjson.SetRawBytes(body, "format", schema)
		if err != nil {
			return nil, err
		}
	}

	return body, nil
}

// ParseEvent implements provider.Plugin. Each line is one JSON event; the
// final event carries "done":true and wins over any content on the same
// line.
func (p *Plugin) ParseEvent(line string) provider.Parsed {
	if !gjson.Valid(line) {
		return provider.None()
	}

	res := gjson.Parse(line)
	if !res.IsObject() {
		return provider.None()
	}
	if res.Get("done").Bool() {
		return provider.Done()
	}
	if content := res.Get("message.content"); content.Type == gjson.String {
		return provider.Text(content.String())
	}

	return provider.None()
}
