package provider

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DebugCategory names a diagnostic trace category.
type DebugCategory string

const (
	// DebugPlugin gates adapter-side traces (request bodies, endpoints).
	DebugPlugin DebugCategory = "plugin"
	// DebugSSE gates engine-side traces (frames, lifecycle transitions).
	DebugSSE DebugCategory = "sse"
)

// DebugConfig selects which trace categories are active. The zero value
// disables everything. All forces every category on regardless of the
// individual flags.
//
// On the wire the config is a union: either a plain boolean (true meaning
// all categories) or an object with per-category flags. The codec below
// normalizes both forms into this struct.
type DebugConfig struct {
	All    bool `json:"all,omitempty"`
	Plugin bool `json:"plugin,omitempty"`
	SSE    bool `json:"sse,omitempty"`
}

// DebugAll returns a config with every category enabled.
func DebugAll() DebugConfig {
	return DebugConfig{All: true}
}

// DebugFromBool normalizes the boolean form of the union: true enables all
// categories, false none.
func DebugFromBool(v bool) DebugConfig {
	return DebugConfig{All: v}
}

// Enabled reports whether the given category is active. It is a pure
// function of the config; it never affects control flow or data.
func (c DebugConfig) Enabled(category DebugCategory) bool {
	if c.All {
		return true
	}
	switch category {
	case DebugPlugin:
		return c.Plugin
	case DebugSSE:
		return c.SSE
	default:
		return false
	}
}

// MarshalJSON emits the most compact form of the union: a bare boolean when
// possible, otherwise the structured object.
func (c DebugConfig) MarshalJSON() ([]byte, error) {
	switch {
	case c == (DebugConfig{}):
		return []byte("false"), nil
	case c.All && !c.Plugin && !c.SSE:
		return []byte("true"), nil
	}

	result := []byte(`{}`)
	var err error
	if c.All {
		result, err = sjson.SetBytes(result, "all", true)
		if err != nil {
			return nil, err
		}
	}
	if c.Plugin {
		result, err = sjson.SetBytes(result, "plugin", true)
		if err != nil {
			return nil, err
		}
	}
	if c.SSE {
		result, err = sjson.SetBytes(result, "sse", true)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// UnmarshalJSON accepts either form of the union and normalizes it.
func (c *DebugConfig) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	res := gjson.ParseBytes(data)
	switch {
	case res.Type == gjson.True || res.Type == gjson.False:
		*c = DebugFromBool(res.Bool())
		return nil
	case res.IsObject():
		*c = DebugConfig{
			All:    res.Get("all").Bool(),
			Plugin: res.Get("plugin").Bool(),
			SSE:    res.Get("sse").Bool(),
		}
		return nil
	default:
		return fmt.Errorf("debug config must be a boolean or an object, got: %s", data)
	}
}
