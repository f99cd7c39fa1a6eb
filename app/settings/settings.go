package settings

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// settingsFileName is the YAML file kept next to the executable
const settingsFileName = "queryexplorer.yml"

// settingsFilePath locates the settings file. Tests point it at a temp dir.
var settingsFilePath = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(exe)
	return filepath.Join(dir, settingsFileName), nil
}

// GetEffectiveSettings returns the effective settings (defaults overlaid with file overrides if any).
// If anything goes wrong, it returns defaults.
func GetEffectiveSettings() Settings {
	settings := defaultSettings
	path, err := settingsFilePath()
	if err != nil {
		return settings
	}
	b, err := os.ReadFile(path)
	if err != nil {
		// no file or other read error -> return defaults
		return settings
	}
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return settings
	}
	overlay(&settings, m)
	return settings
}

// overlay copies every recognised, well-typed key of m onto settings.
// Keys are looked up individually so that explicit false/0 overrides survive.
func overlay(settings *Settings, m map[string]any) {
	if v, ok := m["theme"]; ok {
		if vs, oks := v.(string); oks && (vs == "light" || vs == "dark") {
			settings.Theme = vs
		}
	}
	if v, ok := m["enable_query_cache"]; ok {
		if vb, okb := v.(bool); okb {
			settings.EnableQueryCache = vb
		}
	}
	if v, ok := m["cache_max_entries"]; ok {
		if vi, oki := v.(int); oki && vi >= 0 {
			settings.CacheMaxEntries = vi
		}
	}
	if v, ok := m["query_latency_ms"]; ok {
		if vi, oki := v.(int); oki && vi >= 0 {
			settings.QueryLatencyMs = vi
		}
	}
	if v, ok := m["min_rows"]; ok {
		if vi, oki := v.(int); oki && vi > 0 {
			settings.MinRows = vi
		}
	}
	if v, ok := m["row_span"]; ok {
		if vi, oki := v.(int); oki && vi > 0 {
			settings.RowSpan = vi
		}
	}
	if v, ok := m["query_timeout_ms"]; ok {
		if vi, oki := v.(int); oki && vi >= 0 {
			settings.QueryTimeoutMs = vi
		}
	}
	if v, ok := m["row_height"]; ok {
		if vi, oki := v.(int); oki && vi > 0 {
			settings.RowHeight = vi
		}
	}
	if v, ok := m["viewport_height"]; ok {
		if vi, oki := v.(int); oki && vi >= 0 {
			settings.ViewportHeight = vi
		}
	}
	if v, ok := m["overscan"]; ok {
		if vi, oki := v.(int); oki && vi >= 0 {
			settings.Overscan = vi
		}
	}
	if v, ok := m["csv_quote_fields"]; ok {
		if vb, okb := v.(bool); okb {
			settings.CSVQuoteFields = vb
		}
	}
	if v, ok := m["window_width"]; ok {
		if vi, oki := v.(int); oki && vi >= 400 {
			settings.WindowWidth = vi
		}
	}
	if v, ok := m["window_height"]; ok {
		if vi, oki := v.(int); oki && vi >= 300 {
			settings.WindowHeight = vi
		}
	}
}
