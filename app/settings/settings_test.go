package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempSettings points the settings file at a fresh temp dir for one test
func useTempSettings(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), settingsFileName)
	orig := settingsFilePath
	settingsFilePath = func() (string, error) { return path, nil }
	t.Cleanup(func() { settingsFilePath = orig })
	return path
}

type fakeCacheManager struct {
	cleared int
	resized int
}

func (f *fakeCacheManager) ClearQueryCache() { f.cleared++ }
func (f *fakeCacheManager) UpdateCacheSize() { f.resized++ }

func TestGetEffectiveSettings_DefaultsWithoutFile(t *testing.T) {
	useTempSettings(t)
	assert.Equal(t, Defaults(), GetEffectiveSettings())

	s, err := NewSettingsService().GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "light", s.Theme)
	assert.True(t, s.EnableQueryCache)
}

func TestGetSettings_OverlaysFile(t *testing.T) {
	path := useTempSettings(t)
	content := "theme: dark\nenable_query_cache: false\ncache_max_entries: 5\nquery_latency_ms: 0\ncsv_quote_fields: true\nrow_height: -3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := NewSettingsService().GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)
	assert.False(t, s.EnableQueryCache)
	assert.Equal(t, 5, s.CacheMaxEntries)
	assert.Zero(t, s.QueryLatencyMs)
	assert.True(t, s.CSVQuoteFields)
	// out of range values are ignored
	assert.Equal(t, defaultSettings.RowHeight, s.RowHeight)
}

func TestGetSettings_IgnoresUnknownTheme(t *testing.T) {
	path := useTempSettings(t)
	require.NoError(t, os.WriteFile(path, []byte("theme: purple\n"), 0o644))
	assert.Equal(t, "light", GetEffectiveSettings().Theme)
}

func TestGetSettings_MalformedFile(t *testing.T) {
	path := useTempSettings(t)
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated\n"), 0o644))

	_, err := NewSettingsService().GetSettings()
	assert.Error(t, err)
	assert.Equal(t, Defaults(), GetEffectiveSettings())
}

func TestSaveSettings_WritesOnlyNonDefaults(t *testing.T) {
	path := useTempSettings(t)
	svc := NewSettingsService()

	in := Defaults()
	in.Theme = "dark"
	in.Overscan = 4
	require.NoError(t, svc.SaveSettings(in))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "theme: dark")
	assert.Contains(t, string(b), "overscan: 4")
	assert.NotContains(t, string(b), "row_height")

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestSaveSettings_DefaultsRemoveFile(t *testing.T) {
	path := useTempSettings(t)
	svc := NewSettingsService()

	in := Defaults()
	in.Theme = "dark"
	require.NoError(t, svc.SaveSettings(in))
	require.FileExists(t, path)

	require.NoError(t, svc.SaveSettings(Defaults()))
	assert.NoFileExists(t, path)
}

func TestSaveSettings_NotifiesCacheManager(t *testing.T) {
	useTempSettings(t)
	svc := NewSettingsService()
	cm := &fakeCacheManager{}
	svc.SetCacheManager(cm)

	in := Defaults()
	in.CacheMaxEntries = 3
	require.NoError(t, svc.SaveSettings(in))
	assert.Equal(t, 1, cm.resized)
	assert.Zero(t, cm.cleared)

	in.EnableQueryCache = false
	require.NoError(t, svc.SaveSettings(in))
	assert.Equal(t, 1, cm.cleared)
	assert.Equal(t, 1, cm.resized)

	// turning the cache back on is reported too
	in.EnableQueryCache = true
	require.NoError(t, svc.SaveSettings(in))
	assert.Equal(t, 1, cm.cleared)
	assert.Equal(t, 2, cm.resized)

	// unrelated changes leave the cache alone
	in.Overscan = 5
	require.NoError(t, svc.SaveSettings(in))
	assert.Equal(t, 1, cm.cleared)
	assert.Equal(t, 2, cm.resized)
}

func TestSetTheme(t *testing.T) {
	useTempSettings(t)
	svc := NewSettingsService()

	require.NoError(t, svc.SetTheme("dark"))
	assert.Equal(t, "dark", GetEffectiveSettings().Theme)

	require.NoError(t, svc.SetTheme("light"))
	assert.Equal(t, "light", GetEffectiveSettings().Theme)

	assert.Error(t, svc.SetTheme("sepia"))
}

func TestSetTheme_ReplacesMalformedFile(t *testing.T) {
	path := useTempSettings(t)
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated\n"), 0o644))

	svc := NewSettingsService()
	require.NoError(t, svc.SetTheme("dark"))

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
}

func TestSaveSettings_PreservesWindowSize(t *testing.T) {
	useTempSettings(t)
	svc := NewSettingsService()

	in := Defaults()
	in.WindowWidth = 1400
	in.WindowHeight = 900
	require.NoError(t, svc.SaveSettings(in))

	// zero means keep what is stored
	next := Defaults()
	next.WindowWidth = 0
	next.WindowHeight = 0
	next.Theme = "dark"
	require.NoError(t, svc.SaveSettings(next))

	got := GetEffectiveSettings()
	assert.Equal(t, 1400, got.WindowWidth)
	assert.Equal(t, 900, got.WindowHeight)
}
