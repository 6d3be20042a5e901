// Package plugins holds the global registry of named provider plugins.
// Adapters register themselves on construction so callers can look up a
// plugin by provider name.
package plugins

import (
	"github.com/casualjim/sluice/internal/registry"
	"github.com/casualjim/sluice/provider"
)

var Global = registry.New[provider.Plugin]()

func Add(name string, plugin provider.Plugin) {
	Global.Add(name, plugin)
}

func Get(name string) (provider.Plugin, bool) {
	return Global.Get(name)
}

func GetOrAdd(name string, pluginFn func() provider.Plugin) provider.Plugin {
	p, _ := Global.GetOrAdd(name, pluginFn)
	return p
}

func Del(name string) {
	Global.Del(name)
}

func Names() []string {
	return Global.Names()
}
