package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queryexplorer/app/export"
	"queryexplorer/app/grid"
	"queryexplorer/app/interfaces"
	"queryexplorer/app/query"
	"queryexplorer/app/settings"
)

type fakeThemeStore struct {
	saved []string
	err   error
}

func (f *fakeThemeStore) SetTheme(theme string) error {
	f.saved = append(f.saved, theme)
	return f.err
}

func testSettings() settings.Settings {
	s := settings.Defaults()
	s.QueryLatencyMs = 30
	return s
}

func newTestApp(t *testing.T, s settings.Settings) (*App, *query.StubExecutor) {
	t.Helper()
	exec := query.NewStubExecutor(query.StubConfig{
		Latency: time.Duration(s.QueryLatencyMs) * time.Millisecond,
		MinRows: s.MinRows,
		RowSpan: s.RowSpan,
		Seed:    7,
	})
	a := newApp(s, exec, query.NewCatalog(42), &fakeThemeStore{})
	useSettings(a, s)
	return a, exec
}

// useSettings makes the app read s instead of the settings file
func useSettings(a *App, s settings.Settings) *settings.Settings {
	current := s
	a.loadSettings = func() settings.Settings { return current }
	return &current
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("query did not finish")
	}
}

func TestNewApp_SelectsFirstPredefinedQuery(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	state := a.GetState()

	assert.Equal(t, 1, state.Result.QueryID)
	assert.Equal(t, "SELECT * FROM users", state.DisplayText)
	assert.Equal(t, 10000, state.Result.RowCount)
	assert.Nil(t, state.Result.ExecutionTimeMs)
	assert.False(t, state.Loading)
	assert.Empty(t, state.History)
	assert.Equal(t, interfaces.ThemeLight, state.Theme)
}

func TestRunQuery_EndToEnd(t *testing.T) {
	a, exec := newTestApp(t, testSettings())
	a.SetQueryText("SELECT 1")

	done, accepted := a.runQuery()
	require.True(t, accepted)
	assert.True(t, a.GetState().Loading)

	wait(t, done)
	state := a.GetState()
	assert.False(t, state.Loading)
	assert.Nil(t, state.LastError)
	assert.Equal(t, interfaces.AdHocQueryID, state.Result.QueryID)
	assert.Equal(t, "SELECT 1", state.Result.Text)
	assert.GreaterOrEqual(t, state.Result.RowCount, 100)
	assert.Less(t, state.Result.RowCount, 5100)
	require.NotNil(t, state.Result.ExecutionTimeMs)
	assert.GreaterOrEqual(t, *state.Result.ExecutionTimeMs, 30.0)
	assert.False(t, state.Result.FromCache)
	assert.Equal(t, []string{"SELECT 1"}, state.History)
	assert.Equal(t, int64(1), exec.Calls())
}

func TestRunQuery_SecondRunServedFromCache(t *testing.T) {
	a, exec := newTestApp(t, testSettings())
	a.SetQueryText("SELECT 1")

	done, _ := a.runQuery()
	wait(t, done)
	first := a.GetState().Result

	done, accepted := a.runQuery()
	require.True(t, accepted)
	// cache hits complete synchronously
	select {
	case <-done:
	default:
		t.Fatal("cached run should already be finished")
	}
	second := a.GetState().Result

	assert.True(t, second.FromCache)
	assert.Equal(t, first.RowCount, second.RowCount)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.ResultID, second.ResultID)
	assert.Equal(t, int64(1), exec.Calls())
	assert.Equal(t, int64(1), a.GetCacheStats().Hits)
}

func TestRunQuery_CacheDisabledExecutesEveryTime(t *testing.T) {
	s := testSettings()
	s.EnableQueryCache = false
	a, exec := newTestApp(t, s)
	a.SetQueryText("SELECT 1")

	for i := 0; i < 2; i++ {
		done, accepted := a.runQuery()
		require.True(t, accepted)
		wait(t, done)
	}
	assert.Equal(t, int64(2), exec.Calls())
	assert.Zero(t, a.GetCacheStats().TotalEntries)
}

func TestClearQueryCache_DisablingCacheTakesEffect(t *testing.T) {
	a, exec := newTestApp(t, testSettings())
	stored := useSettings(a, testSettings())
	a.SetQueryText("SELECT 1")

	done, _ := a.runQuery()
	wait(t, done)
	require.Equal(t, 1, a.GetCacheStats().TotalEntries)

	// the settings service calls ClearQueryCache after saving EnableQueryCache=false
	stored.EnableQueryCache = false
	a.ClearQueryCache()

	for i := 0; i < 2; i++ {
		done, accepted := a.runQuery()
		require.True(t, accepted)
		wait(t, done)
		assert.False(t, a.GetState().Result.FromCache)
	}
	assert.Equal(t, int64(3), exec.Calls())
	assert.Zero(t, a.GetCacheStats().TotalEntries)

	// and UpdateCacheSize after turning it back on
	stored.EnableQueryCache = true
	stored.CacheMaxEntries = 1
	a.UpdateCacheSize()
	done, _ = a.runQuery()
	wait(t, done)
	done, _ = a.runQuery()
	wait(t, done)
	assert.True(t, a.GetState().Result.FromCache)
	assert.Equal(t, int64(4), exec.Calls())
	assert.Equal(t, 1, a.GetCacheStats().MaxEntries)
}

func TestContextAccessIsSynchronized(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	stop := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for {
			select {
			case <-stop:
				return
			default:
				a.setContext(context.Background())
			}
		}
	}()
	for i := 0; i < 1000; i++ {
		ctx, cancel := a.executionContext()
		require.NotNil(t, ctx)
		cancel()
	}
	close(stop)
	<-finished
	assert.NotNil(t, a.Ctx())
}

func TestSaveWindowSize_RejectsTooSmall(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	assert.Error(t, a.SaveWindowSize(100, 100))

	s := testSettings()
	s.WindowWidth, s.WindowHeight = 1400, 100
	useSettings(a, s)
	w, h := a.GetSavedWindowSize()
	assert.Equal(t, 1400, w)
	assert.Equal(t, 768, h)
}

func TestResizeViewport_HugeHeightStaysBounded(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	_, err := a.SelectPredefinedQuery(3)
	require.NoError(t, err)

	w := a.ResizeViewport(1e12)
	assert.Equal(t, float64(grid.MaxViewportHeight), w.ViewportHeight)
	assert.LessOrEqual(t, len(w.Slots), 2000)
}

func TestRunQuery_BlankTextIgnored(t *testing.T) {
	a, exec := newTestApp(t, testSettings())
	for _, text := range []string{"", "   ", "\n\t"} {
		a.SetQueryText(text)
		accepted, err := a.RunQuery()
		require.NoError(t, err)
		assert.False(t, accepted)
	}
	assert.False(t, a.GetState().Loading)
	assert.Zero(t, exec.Calls())
}

func TestRunQuery_RejectedWhileInFlight(t *testing.T) {
	a, exec := newTestApp(t, testSettings())
	a.SetQueryText("SELECT 1")
	done, accepted := a.runQuery()
	require.True(t, accepted)

	a.SetQueryText("SELECT 2")
	_, again := a.runQuery()
	assert.False(t, again)

	wait(t, done)
	assert.Equal(t, int64(1), exec.Calls())
	assert.Equal(t, []string{"SELECT 1"}, a.GetHistory())

	// the typed text is kept and can run once the first finishes
	done, accepted = a.runQuery()
	require.True(t, accepted)
	wait(t, done)
	assert.Equal(t, []string{"SELECT 2", "SELECT 1"}, a.GetHistory())
}

func TestRunQuery_HistoryKeepsTenMostRecent(t *testing.T) {
	s := testSettings()
	s.QueryLatencyMs = 0
	a, _ := newTestApp(t, s)

	texts := []string{"q0", "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10"}
	for _, text := range texts {
		a.SetQueryText(text)
		done, accepted := a.runQuery()
		require.True(t, accepted)
		wait(t, done)
	}
	got := a.GetHistory()
	require.Len(t, got, 10)
	assert.Equal(t, "q10", got[0])
	assert.Equal(t, "q1", got[9])

	a.SetQueryText("q5")
	done, _ := a.runQuery()
	wait(t, done)
	got = a.GetHistory()
	assert.Equal(t, "q5", got[0])
	assert.Len(t, got, 10)
}

func TestRunQuery_ErrorClearsLoading(t *testing.T) {
	var calls atomic.Int32
	exec := query.ExecutorFunc(func(ctx context.Context, text string) (query.RowSequence, error) {
		calls.Add(1)
		return nil, query.NewQueryError(query.KindSyntax, text, errors.New("near FROM"))
	})
	a := newApp(testSettings(), exec, query.NewCatalog(1), nil)
	useSettings(a, testSettings())
	a.SetQueryText("SELEC 1")

	done, accepted := a.runQuery()
	require.True(t, accepted)
	wait(t, done)

	state := a.GetState()
	assert.False(t, state.Loading)
	require.NotNil(t, state.LastError)
	assert.Equal(t, query.KindSyntax, state.LastError.Kind)
	assert.Equal(t, "SELEC 1", state.LastError.Query)
	assert.Empty(t, state.History)
	assert.Zero(t, a.GetCacheStats().TotalEntries)
	// selection is unchanged
	assert.Equal(t, 1, state.Result.QueryID)

	// the error is cleared by the next run
	done, _ = a.runQuery()
	wait(t, done)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRunQuery_TimeoutReported(t *testing.T) {
	s := testSettings()
	s.QueryLatencyMs = 2000
	s.QueryTimeoutMs = 20
	a, _ := newTestApp(t, s)
	a.SetQueryText("SELECT slow")

	done, _ := a.runQuery()
	wait(t, done)

	state := a.GetState()
	assert.False(t, state.Loading)
	require.NotNil(t, state.LastError)
	assert.Equal(t, query.KindTimeout, state.LastError.Kind)
}

func TestSelectPredefinedQuery_ClearsTextAndTiming(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	a.SetQueryText("SELECT 1")
	done, _ := a.runQuery()
	wait(t, done)
	require.NotNil(t, a.GetState().Result.ExecutionTimeMs)

	info, err := a.SelectPredefinedQuery(3)
	require.NoError(t, err)
	assert.Equal(t, 3, info.QueryID)
	assert.Equal(t, 2000, info.RowCount)

	state := a.GetState()
	assert.Empty(t, state.QueryText)
	assert.Equal(t, "SELECT email FROM customers", state.DisplayText)
	assert.Nil(t, state.Result.ExecutionTimeMs)
	// history only records runs
	assert.Equal(t, []string{"SELECT 1"}, state.History)

	_, err = a.SelectPredefinedQuery(99)
	assert.Error(t, err)
}

func TestSortBy_TogglesAndSortsView(t *testing.T) {
	a, _ := newTestApp(t, testSettings())

	w, err := a.SortBy("age")
	require.NoError(t, err)
	assert.Equal(t, interfaces.SortSpec{Key: interfaces.SortKeyAge, Direction: interfaces.SortAsc}, a.GetState().Sort)
	assert.Zero(t, w.Start)
	for i := 1; i < len(w.Slots); i++ {
		assert.LessOrEqual(t, w.Slots[i-1].Row.Age, w.Slots[i].Row.Age)
	}
	assert.Equal(t, "▲", w.Columns[2].Indicator)

	w, err = a.SortBy("age")
	require.NoError(t, err)
	assert.Equal(t, interfaces.SortDesc, a.GetState().Sort.Direction)
	assert.Equal(t, "▼", w.Columns[2].Indicator)

	_, err = a.SortBy("age")
	require.NoError(t, err)
	assert.Equal(t, interfaces.SortAsc, a.GetState().Sort.Direction)

	_, err = a.SortBy("name")
	require.NoError(t, err)
	assert.Equal(t, interfaces.SortSpec{Key: interfaces.SortKeyName, Direction: interfaces.SortAsc}, a.GetState().Sort)

	_, err = a.SortBy("salary")
	assert.Error(t, err)
}

func TestSortBy_DoesNotMutateCatalogRows(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	q, err := a.catalog.Lookup(1)
	require.NoError(t, err)
	before := append(interfaces.RowSequence(nil), q.Rows...)

	_, err = a.SortBy("email")
	require.NoError(t, err)
	_, err = a.SortBy("email")
	require.NoError(t, err)

	assert.Equal(t, before, q.Rows)
}

func TestSortSpecSurvivesNewResult(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	_, err := a.SortBy("id")
	require.NoError(t, err)
	_, err = a.SortBy("id")
	require.NoError(t, err)

	_, err = a.SelectPredefinedQuery(2)
	require.NoError(t, err)
	w := a.GetCurrentWindow()
	require.NotEmpty(t, w.Slots)
	assert.Equal(t, 5000, w.Slots[0].Row.ID)
}

func TestGetWindow_ScrollsAndRejectsStaleResult(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	id := a.GetState().Result.ResultID

	w, err := a.GetWindow(id, 35*100)
	require.NoError(t, err)
	assert.Equal(t, 100, w.Start)
	assert.LessOrEqual(t, len(w.Slots), 14)
	assert.Equal(t, 10000, w.Total)

	_, err = a.SelectPredefinedQuery(2)
	require.NoError(t, err)
	_, err = a.GetWindow(id, 0)
	assert.ErrorIs(t, err, ErrStaleResult)
}

func TestResizeViewport(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	id := a.GetState().Result.ResultID
	_, err := a.GetWindow(id, 35*5000)
	require.NoError(t, err)

	w := a.ResizeViewport(800)
	assert.Equal(t, 5000, w.Start)
	assert.Equal(t, 800.0, w.ViewportHeight)
}

func TestToggleTheme_Persists(t *testing.T) {
	store := &fakeThemeStore{}
	a := newApp(testSettings(), query.NewStubExecutor(query.DefaultStubConfig()), query.NewCatalog(1), store)

	theme, err := a.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
	assert.Equal(t, "dark", a.GetTheme())

	theme, err = a.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
	assert.Equal(t, []string{"dark", "light"}, store.saved)

	store.err = errors.New("read-only")
	theme, err = a.ToggleTheme()
	assert.Error(t, err)
	assert.Equal(t, "dark", theme)
	assert.Equal(t, "dark", a.GetTheme())
}

func TestNewApp_ReadsThemeFromSettings(t *testing.T) {
	s := testSettings()
	s.Theme = "dark"
	a, _ := newTestApp(t, s)
	assert.Equal(t, "dark", a.GetTheme())
}

func TestWriteExport_CSVOfSortedView(t *testing.T) {
	exec := query.ExecutorFunc(func(ctx context.Context, text string) (query.RowSequence, error) {
		return query.RowSequence{
			{ID: 1, Name: "Bob", Age: 40, Email: "b@x.com"},
			{ID: 2, Name: "Alice", Age: 30, Email: "a@x.com"},
		}, nil
	})
	a := newApp(testSettings(), exec, query.NewCatalog(1), nil)
	useSettings(a, testSettings())
	a.SetQueryText("SELECT people")
	done, _ := a.runQuery()
	wait(t, done)
	_, err := a.SortBy("name")
	require.NoError(t, err)

	info, err := export.Lookup(export.FormatCSV)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out")

	resp, err := a.writeExport(info, path)
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.Equal(t, path+".csv", resp.Path)
	assert.Equal(t, 2, resp.Rows)

	b, err := os.ReadFile(resp.Path)
	require.NoError(t, err)
	assert.Equal(t, "id,name,age,email\n2,Alice,30,a@x.com\n1,Bob,40,b@x.com", string(b))
}

func TestWriteExport_UnwritablePath(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	info, err := export.Lookup(export.FormatJSON)
	require.NoError(t, err)

	_, err = a.writeExport(info, filepath.Join(t.TempDir(), "missing", "dir", "x.json"))
	assert.Error(t, err)
}

func TestExportResults_RequiresContext(t *testing.T) {
	a, _ := newTestApp(t, testSettings())
	_, err := a.ExportResults("csv")
	assert.Error(t, err)
}
