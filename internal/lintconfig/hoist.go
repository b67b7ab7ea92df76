package lintconfig

import "maps"

// PluginsBlockName names the consolidated block produced by HoistPlugins.
const PluginsBlockName = "flatlint/plugins"

// CollectPluginOverrides scans overrides in order and returns every declared
// plugin, later declarations replacing earlier ones for the same id.
func CollectPluginOverrides(overrides []OverrideBlock) map[string]Plugin {
	out := make(map[string]Plugin)
	for _, o := range overrides {
		maps.Copy(out, o.Plugins)
	}
	return out
}

// HoistPlugins moves every plugin registration into one block placed first.
//
// Plugin maps are accumulated in list order, so later blocks win for a shared
// id. overrides is applied last and always wins. Blocks left with no keys
// after losing their plugins are dropped. The input list is not modified.
func HoistPlugins(blocks []Block, overrides map[string]Plugin) []Block {
	plugins := make(map[string]Plugin)
	rest := make([]Block, 0, len(blocks)+1)

	for _, b := range blocks {
		if b.Plugins == nil {
			rest = append(rest, b)
			continue
		}
		maps.Copy(plugins, b.Plugins)
		stripped := b.Clone()
		stripped.Plugins = nil
		if !stripped.IsEmpty() {
			rest = append(rest, stripped)
		}
	}

	maps.Copy(plugins, overrides)

	if len(plugins) == 0 {
		return rest
	}
	return append([]Block{{Name: PluginsBlockName, Plugins: plugins}}, rest...)
}
