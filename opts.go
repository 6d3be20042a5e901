package sluice

import (
	"github.com/casualjim/sluice/provider"
	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
)

var (
	// WithModel selects the model for this stream. When omitted, the
	// plugin's configured default applies.
	WithModel = opts.ForName[provider.CompletionParams, string]("Model")

	// WithInstructions sets the system prompt. When present, the engine
	// fires OnSystemMessage before the first read.
	WithInstructions = opts.ForName[provider.CompletionParams, string]("Instructions")

	// WithSender attaches an origin label to the lifecycle messages.
	WithSender = opts.ForName[provider.CompletionParams, string]("Sender")

	// WithTemperature forwards a sampling temperature to the provider.
	WithTemperature = opts.ForName[provider.CompletionParams, float64]("Temperature")

	// WithMaxTokens caps the response length.
	WithMaxTokens = opts.ForName[provider.CompletionParams, int]("MaxTokens")

	// WithDebug selects the active diagnostic trace categories.
	WithDebug = opts.ForName[provider.CompletionParams, provider.DebugConfig]("Debug")
)

// Structured Outputs uses a subset of JSON schema
// These flags are necessary to comply with the subset
var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
}

// WithStructuredOutput requests responses shaped as T. It generates a JSON
// schema for T and hands it to the plugin, which decides how to express the
// constraint on the wire.
//
// Example usage:
//
//	type Weather struct {
//	    City string `json:"city"`
//	    Temp int    `json:"temp"`
//	}
//
//	out := sluice.Stream(ctx, plugin, prompt, hooks,
//	    sluice.WithStructuredOutput[Weather]("weather", "Current weather"),
//	)
func WithStructuredOutput[T any](name, description string) opts.Option[provider.CompletionParams] {
	return opts.Type[provider.CompletionParams](func(p *provider.CompletionParams) error {
		var v T
		p.ResponseSchema = &provider.StructuredOutput{
			Name:        name,
			Description: description,
			Schema:      reflector.Reflect(v),
		}
		return nil
	})
}
