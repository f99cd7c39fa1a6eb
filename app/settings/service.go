package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SettingsService manages reading/writing settings from disk.
type SettingsService struct {
	ctx          context.Context
	cacheManager CacheManager
}

func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// SetCacheManager allows the main function to inject the cache manager
func (s *SettingsService) SetCacheManager(cm CacheManager) {
	s.cacheManager = cm
}

// Startup receives the Wails context
func (s *SettingsService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// GetSettings returns the effective settings (defaults overlaid with file overrides if any).
// Unlike GetEffectiveSettings it reports read and parse errors.
func (s *SettingsService) GetSettings() (Settings, error) {
	settings := defaultSettings
	path, err := settingsFilePath()
	if err != nil {
		return settings, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, err
	}
	// Unmarshal into a generic map to detect key presence
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return settings, fmt.Errorf("parse %s: %w", path, err)
	}
	overlay(&settings, m)
	return settings, nil
}

// SaveSettings writes the values of in that differ from the defaults.
// When nothing differs the settings file is removed.
func (s *SettingsService) SaveSettings(in Settings) error {
	old := GetEffectiveSettings()
	cacheToggled := old.EnableQueryCache != in.EnableQueryCache
	cacheSizeChanged := old.CacheMaxEntries != in.CacheMaxEntries

	// Build a minimal map containing only non-default values to avoid zero-value serialization pitfalls
	data := make(map[string]any)
	if theme := strings.TrimSpace(in.Theme); theme != "" && theme != defaultSettings.Theme {
		data["theme"] = theme
	}
	if in.EnableQueryCache != defaultSettings.EnableQueryCache {
		data["enable_query_cache"] = in.EnableQueryCache
	}
	if in.CacheMaxEntries != defaultSettings.CacheMaxEntries && in.CacheMaxEntries >= 0 {
		data["cache_max_entries"] = in.CacheMaxEntries
	}
	if in.QueryLatencyMs != defaultSettings.QueryLatencyMs && in.QueryLatencyMs >= 0 {
		data["query_latency_ms"] = in.QueryLatencyMs
	}
	if in.MinRows != defaultSettings.MinRows && in.MinRows > 0 {
		data["min_rows"] = in.MinRows
	}
	if in.RowSpan != defaultSettings.RowSpan && in.RowSpan > 0 {
		data["row_span"] = in.RowSpan
	}
	if in.QueryTimeoutMs != defaultSettings.QueryTimeoutMs && in.QueryTimeoutMs >= 0 {
		data["query_timeout_ms"] = in.QueryTimeoutMs
	}
	if in.RowHeight != defaultSettings.RowHeight && in.RowHeight > 0 {
		data["row_height"] = in.RowHeight
	}
	if in.ViewportHeight != defaultSettings.ViewportHeight && in.ViewportHeight >= 0 {
		data["viewport_height"] = in.ViewportHeight
	}
	if in.Overscan != defaultSettings.Overscan && in.Overscan >= 0 {
		data["overscan"] = in.Overscan
	}
	if in.CSVQuoteFields != defaultSettings.CSVQuoteFields {
		data["csv_quote_fields"] = in.CSVQuoteFields
	}

	// Preserve window size; zero means "keep what is on disk"
	windowWidth := in.WindowWidth
	if windowWidth == 0 {
		windowWidth = old.WindowWidth
	}
	if windowWidth != defaultSettings.WindowWidth && windowWidth >= 400 {
		data["window_width"] = windowWidth
	}
	windowHeight := in.WindowHeight
	if windowHeight == 0 {
		windowHeight = old.WindowHeight
	}
	if windowHeight != defaultSettings.WindowHeight && windowHeight >= 300 {
		data["window_height"] = windowHeight
	}

	path, err := settingsFilePath()
	if err != nil {
		return err
	}

	if len(data) == 0 {
		// If there is an existing file, remove it to reflect defaults-only state
		if _, statErr := os.Stat(path); statErr == nil {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	} else {
		b, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return err
		}
	}

	if s.cacheManager != nil {
		if cacheToggled && !in.EnableQueryCache {
			s.cacheManager.ClearQueryCache()
		} else if cacheToggled || cacheSizeChanged {
			s.cacheManager.UpdateCacheSize()
		}
	}
	return nil
}

// SetTheme persists theme while leaving every other setting as it is on disk.
// An unreadable file is replaced by the defaults plus the theme.
func (s *SettingsService) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("unknown theme %q", theme)
	}
	settings, err := s.GetSettings()
	if err != nil {
		settings = GetEffectiveSettings()
	}
	settings.Theme = theme
	return s.SaveSettings(settings)
}
