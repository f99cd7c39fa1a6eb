package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"queryexplorer/app/cache"
	"queryexplorer/app/grid"
	"queryexplorer/app/history"
	"queryexplorer/app/interfaces"
	"queryexplorer/app/query"
	"queryexplorer/app/settings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ThemeStore persists the theme choice
type ThemeStore interface {
	SetTheme(theme string) error
}

// App struct
type App struct {
	ctx   context.Context
	ctxMu sync.RWMutex

	// mu serializes every bound method; Wails calls them from arbitrary goroutines
	mu sync.Mutex

	catalog  *query.Catalog
	executor query.Executor
	timeout  time.Duration

	// persistent query cache
	queryCache   *cache.Cache
	cacheEnabled bool

	history *history.List
	table   *grid.Table

	// selected query and its derived state
	selected    interfaces.Query
	resultID    uuid.UUID
	fingerprint string
	fromCache   bool
	executionMs *float64
	sortSpec    interfaces.SortSpec
	view        interfaces.RowSequence

	queryText string
	theme     interfaces.Theme
	loading   bool
	lastError *ErrorInfo

	themes       ThemeStore
	loadSettings func() settings.Settings
	logger       *logrus.Logger

	// clipboard init
	clipOnce sync.Once
	clipOK   bool
}

// NewApp creates a new App application struct
func NewApp() *App {
	current := settings.GetEffectiveSettings()
	return newApp(current, query.NewStubExecutor(stubConfig(current)), query.NewCatalog(0), settings.NewSettingsService())
}

func newApp(s settings.Settings, executor query.Executor, catalog *query.Catalog, themes ThemeStore) *App {
	a := &App{
		catalog:      catalog,
		executor:     executor,
		timeout:      time.Duration(s.QueryTimeoutMs) * time.Millisecond,
		cacheEnabled: s.EnableQueryCache,
		history:      history.New(history.DefaultLimit),
		table:        grid.NewTable(gridConfig(s)),
		theme:        interfaces.Theme(s.Theme),
		themes:       themes,
		loadSettings: settings.GetEffectiveSettings,
		logger:       newLogger(),
	}
	if a.theme != interfaces.ThemeDark {
		a.theme = interfaces.ThemeLight
	}
	a.queryCache = cache.NewCacheWithLogger(s.CacheMaxEntries, a)
	a.table.SetSortTrigger(a.toggleSortLocked)
	a.selectLocked(catalog.Default())
	return a
}

func stubConfig(s settings.Settings) query.StubConfig {
	return query.StubConfig{
		Latency: time.Duration(s.QueryLatencyMs) * time.Millisecond,
		MinRows: s.MinRows,
		RowSpan: s.RowSpan,
	}
}

func gridConfig(s settings.Settings) grid.Config {
	return grid.Config{
		RowHeight:      float64(s.RowHeight),
		ViewportHeight: float64(s.ViewportHeight),
		Overscan:       s.Overscan,
	}
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.setContext(ctx)

	theme := a.GetTheme()
	a.Log("info", fmt.Sprintf("[STARTUP] Theme %s, %d predefined queries", theme, len(a.catalog.Entries())))
}

func (a *App) setContext(ctx context.Context) {
	a.ctxMu.Lock()
	defer a.ctxMu.Unlock()
	a.ctx = ctx
}

// Ctx returns the app context
func (a *App) Ctx() context.Context {
	a.ctxMu.RLock()
	defer a.ctxMu.RUnlock()
	return a.ctx
}

// Log writes to stderr and emits a structured log event to the frontend console window
func (a *App) Log(level, message string) {
	if a == nil {
		return
	}
	if a.logger != nil {
		a.logger.Log(parseLevel(level), message)
	}
	a.emit("log", map[string]any{
		"level":   level,
		"message": message,
	})
}

// emit sends a frontend event; without a Wails context (tests, headless) it is a no-op
func (a *App) emit(name string, data ...any) {
	ctx := a.Ctx()
	if ctx == nil {
		return
	}
	runtime.EventsEmit(ctx, name, data...)
}

// GetTheme returns the current colour scheme
func (a *App) GetTheme() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.theme)
}

// ToggleTheme switches between light and dark and persists the choice.
// The new theme stays active even when it could not be saved.
func (a *App) ToggleTheme() (string, error) {
	a.mu.Lock()
	a.theme = a.theme.Other()
	theme := a.theme
	a.mu.Unlock()

	a.emit("theme:changed", string(theme))
	if a.themes == nil {
		return string(theme), nil
	}
	if err := a.themes.SetTheme(string(theme)); err != nil {
		a.Log("error", fmt.Sprintf("[THEME] Failed to persist theme %s: %v", theme, err))
		return string(theme), fmt.Errorf("failed to save theme: %w", err)
	}
	a.Log("debug", fmt.Sprintf("[THEME] Switched to %s", theme))
	return string(theme), nil
}

// GetCacheStats returns the current cache statistics for the frontend
func (a *App) GetCacheStats() cache.CacheStats {
	return a.queryCache.GetCacheStats()
}

// ClearQueryCache drops every cached result and picks up the saved cache settings
func (a *App) ClearQueryCache() {
	a.refreshCacheSettings()
	a.queryCache.Clear()
}

// UpdateCacheSize re-reads the cache settings after they were saved
func (a *App) UpdateCacheSize() {
	a.refreshCacheSettings()
}

func (a *App) refreshCacheSettings() {
	current := a.loadSettings()
	a.mu.Lock()
	a.cacheEnabled = current.EnableQueryCache
	a.mu.Unlock()
	a.queryCache.UpdateMaxEntries(current.CacheMaxEntries)
	a.Log("debug", fmt.Sprintf("[CACHE_SETTINGS] Enabled: %t, max entries: %d", current.EnableQueryCache, current.CacheMaxEntries))
}

// SaveWindowSize saves the current window dimensions to the settings file
func (a *App) SaveWindowSize(width, height int) error {
	if width < 400 || height < 300 {
		return fmt.Errorf("window size too small: minimum 400x300, got %dx%d", width, height)
	}
	current := a.loadSettings()
	current.WindowWidth = width
	current.WindowHeight = height
	return settings.NewSettingsService().SaveSettings(current)
}

// GetSavedWindowSize returns the saved window dimensions from settings
func (a *App) GetSavedWindowSize() (width, height int) {
	current := a.loadSettings()
	defaults := settings.Defaults()
	width, height = current.WindowWidth, current.WindowHeight
	if width < 400 {
		width = defaults.WindowWidth
	}
	if height < 300 {
		height = defaults.WindowHeight
	}
	return width, height
}
