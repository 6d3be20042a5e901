package provider

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
)

// DoneSentinel is the well-known marker emitted by SSE providers to signal
// the end of a stream.
const DoneSentinel = "[DONE]"

// Plugin is the capability bundle a provider adapter must implement. The
// engine borrows a plugin for the lifetime of one stream instance and never
// mutates it, so a single plugin value may back many concurrent streams.
type Plugin interface {
	// Delimiter returns the substring separating discrete events in the raw
	// stream. An empty string selects the engine default, the SSE blank
	// line separator "\n\n".
	Delimiter() string

	// PrepareRequest performs whatever network call is required and returns
	// the raw response body. It fails when the call cannot be established:
	// transport error, non-success status, or missing body.
	PrepareRequest(ctx context.Context, params CompletionParams) (io.ReadCloser, error)

	// ParseEvent maps one framed, trimmed, non-comment line to its parsed
	// result. It must never fail: malformed input parses to None.
	ParseEvent(line string) Parsed
}

// ParseKind discriminates the outcome of parsing a single event line.
type ParseKind uint8

const (
	// ParseNone means the line carried no content.
	ParseNone ParseKind = iota
	// ParseText means the line carried extracted text.
	ParseText
	// ParseDone means the line carried the completion sentinel.
	ParseDone
)

// Parsed is the result of Plugin.ParseEvent for one line.
type Parsed struct {
	Kind ParseKind
	Text string
}

// None reports a line without content.
func None() Parsed { return Parsed{} }

// Text reports extracted text content.
func Text(s string) Parsed { return Parsed{Kind: ParseText, Text: s} }

// Done reports the completion sentinel.
func Done() Parsed { return Parsed{Kind: ParseDone} }

// CompletionParams encapsulates everything a plugin needs to prepare one
// completion request.
type CompletionParams struct {
	// RunID uniquely identifies this stream instance.
	RunID uuid.UUID

	// Model names the model to use. Empty selects the plugin's default.
	Model string

	// Instructions is the system prompt. Empty means no system message.
	Instructions string

	// Prompt is the user message content.
	Prompt string

	// Sender is an optional origin label carried into lifecycle messages.
	Sender string

	// Temperature is forwarded verbatim when positive.
	Temperature float64

	// MaxTokens caps the response length when positive.
	MaxTokens int

	// ResponseSchema requests structured output in the given shape.
	ResponseSchema *StructuredOutput

	// Debug selects which diagnostic trace categories are active.
	Debug DebugConfig

	// Prevents unkeyed literals
	_ struct{}
}

// StructuredOutput defines a schema for formatted responses.
type StructuredOutput struct {
	// Name identifies this output format
	Name string

	// Description explains the purpose and usage of this format
	Description string

	// Schema defines the JSON structure that responses should follow
	Schema *jsonschema.Schema
}
