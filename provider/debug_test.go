package provider

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugConfig_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		config   DebugConfig
		category DebugCategory
		want     bool
	}{
		{"zero value disables plugin", DebugConfig{}, DebugPlugin, false},
		{"zero value disables sse", DebugConfig{}, DebugSSE, false},
		{"all overrides plugin", DebugConfig{All: true}, DebugPlugin, true},
		{"all overrides sse", DebugConfig{All: true}, DebugSSE, true},
		{"all overrides even with flags off", DebugConfig{All: true, Plugin: false, SSE: false}, DebugSSE, true},
		{"plugin flag only", DebugConfig{Plugin: true}, DebugPlugin, true},
		{"plugin flag does not leak to sse", DebugConfig{Plugin: true}, DebugSSE, false},
		{"sse flag only", DebugConfig{SSE: true}, DebugSSE, true},
		{"unknown category", DebugConfig{Plugin: true, SSE: true}, DebugCategory("http"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.Enabled(tt.category))
		})
	}
}

func TestDebugFromBool(t *testing.T) {
	assert.True(t, DebugFromBool(true).Enabled(DebugSSE))
	assert.True(t, DebugFromBool(true).Enabled(DebugPlugin))
	assert.False(t, DebugFromBool(false).Enabled(DebugSSE))
}

func TestDebugConfig_UnmarshalJSON_Boolean(t *testing.T) {
	var c DebugConfig
	require.NoError(t, json.Unmarshal([]byte(`true`), &c))
	assert.Equal(t, DebugAll(), c)

	require.NoError(t, json.Unmarshal([]byte(`false`), &c))
	assert.Equal(t, DebugConfig{}, c)
}

func TestDebugConfig_UnmarshalJSON_Object(t *testing.T) {
	var c DebugConfig
	require.NoError(t, json.Unmarshal([]byte(`{"sse":true}`), &c))
	assert.Equal(t, DebugConfig{SSE: true}, c)

	require.NoError(t, json.Unmarshal([]byte(`{"all":true,"plugin":false}`), &c))
	assert.True(t, c.Enabled(DebugPlugin))
}

func TestDebugConfig_UnmarshalJSON_Rejects(t *testing.T) {
	var c DebugConfig
	assert.Error(t, json.Unmarshal([]byte(`"verbose"`), &c))
	assert.Error(t, json.Unmarshal([]byte(`12`), &c))
}

func TestDebugConfig_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(DebugConfig{})
	require.NoError(t, err)
	assert.JSONEq(t, `false`, string(data))

	data, err = json.Marshal(DebugAll())
	require.NoError(t, err)
	assert.JSONEq(t, `true`, string(data))

	data, err = json.Marshal(DebugConfig{Plugin: true, SSE: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"plugin":true,"sse":true}`, string(data))
}

func TestDebugConfig_MarshalRoundTrip(t *testing.T) {
	orig := DebugConfig{All: true, SSE: true}
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back DebugConfig
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, orig, back)
}
