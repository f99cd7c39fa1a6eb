package settings

// Settings holds application settings that can be overridden by the user.
type Settings struct {
	// Theme is "light" or "dark"; read once at startup and written on every toggle
	Theme string `yaml:"theme" json:"theme"`
	// Remove omitempty so that false is serialized (we need to persist explicit overrides)
	EnableQueryCache bool `yaml:"enable_query_cache" json:"enable_query_cache"`
	// Maximum number of cached query texts; 0 keeps every result for the session
	CacheMaxEntries int `yaml:"cache_max_entries" json:"cache_max_entries"`
	// Simulated execution latency of the query stub
	QueryLatencyMs int `yaml:"query_latency_ms" json:"query_latency_ms"`
	// Generated row counts fall in [MinRows, MinRows+RowSpan)
	MinRows int `yaml:"min_rows" json:"min_rows"`
	RowSpan int `yaml:"row_span" json:"row_span"`
	// Query timeout; 0 waits forever
	QueryTimeoutMs int `yaml:"query_timeout_ms" json:"query_timeout_ms"`
	// Result table geometry in pixels
	RowHeight      int `yaml:"row_height" json:"row_height"`
	ViewportHeight int `yaml:"viewport_height" json:"viewport_height"`
	Overscan       int `yaml:"overscan" json:"overscan"`
	// CSVQuoteFields enables RFC 4180 quoting in CSV exports
	CSVQuoteFields bool `yaml:"csv_quote_fields" json:"csv_quote_fields"`
	// Window size settings (not visible in settings dialog, but persisted)
	WindowWidth  int `yaml:"window_width,omitempty" json:"window_width,omitempty"`
	WindowHeight int `yaml:"window_height,omitempty" json:"window_height,omitempty"`
}

// CacheManager interface defines methods that SettingsService needs for cache management
// This breaks the circular dependency between app and settings packages
type CacheManager interface {
	ClearQueryCache()
	UpdateCacheSize()
}

// defaultSettings defines the built-in defaults.
var defaultSettings = Settings{
	Theme:            "light",
	EnableQueryCache: true,
	CacheMaxEntries:  0,
	QueryLatencyMs:   500,
	MinRows:          100,
	RowSpan:          5000,
	QueryTimeoutMs:   0,
	RowHeight:        35,
	ViewportHeight:   400,
	Overscan:         2,
	CSVQuoteFields:   false,
	// Default window size (matches main.go defaults)
	WindowWidth:  1024,
	WindowHeight: 768,
}

// Defaults returns a copy of the built-in defaults
func Defaults() Settings {
	return defaultSettings
}
