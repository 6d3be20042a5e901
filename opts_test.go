package sluice

import (
	"testing"

	"github.com/casualjim/sluice/provider"
	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestOptions_ApplyToParams(t *testing.T) {
	var params provider.CompletionParams
	err := opts.Apply(&params, []opts.Option[provider.CompletionParams]{
		WithModel("gpt-4o"),
		WithInstructions("be terse"),
		WithSender("cli"),
		WithTemperature(0.3),
		WithMaxTokens(256),
		WithDebug(provider.DebugConfig{SSE: true}),
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", params.Model)
	assert.Equal(t, "be terse", params.Instructions)
	assert.Equal(t, "cli", params.Sender)
	assert.InDelta(t, 0.3, params.Temperature, 1e-9)
	assert.Equal(t, 256, params.MaxTokens)
	assert.True(t, params.Debug.Enabled(provider.DebugSSE))
	assert.False(t, params.Debug.Enabled(provider.DebugPlugin))
}

func TestWithStructuredOutput(t *testing.T) {
	type forecast struct {
		City string `json:"city"`
		Temp int    `json:"temp"`
	}

	var params provider.CompletionParams
	err := opts.Apply(&params, []opts.Option[provider.CompletionParams]{
		WithStructuredOutput[forecast]("forecast", "A weather forecast"),
	})
	require.NoError(t, err)

	so := params.ResponseSchema
	require.NotNil(t, so)
	assert.Equal(t, "forecast", so.Name)
	assert.Equal(t, "A weather forecast", so.Description)
	require.NotNil(t, so.Schema)

	raw, err := json.Marshal(so.Schema)
	require.NoError(t, err)
	assert.Equal(t, "object", gjson.GetBytes(raw, "type").String())
	assert.True(t, gjson.GetBytes(raw, "properties.city").Exists())
	assert.True(t, gjson.GetBytes(raw, "properties.temp").Exists())
	assert.False(t, gjson.GetBytes(raw, "additionalProperties").Bool())
}
