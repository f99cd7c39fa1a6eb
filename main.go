package main

import (
	"context"
	"embed"
	"runtime"

	"queryexplorer/app"
	"queryexplorer/app/export"
	"queryexplorer/app/settings"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Create an instance of the app structure
	appInstance := app.NewApp()
	settingsService := settings.NewSettingsService()
	// Inject cache manager (app) so settings service can clear caches when needed
	settingsService.SetCacheManager(appInstance)

	AppMenu := menu.NewMenu()
	if runtime.GOOS == "darwin" {
		AppMenu.Append(menu.AppMenu())
	}

	FileMenu := AppMenu.AddSubmenu("File")
	FileMenu.AddText("Run Query", keys.CmdOrCtrl("r"), func(_ *menu.CallbackData) {
		if appInstance != nil {
			wruntime.EventsEmit(appInstance.Ctx(), "menu:runQuery")
		}
	})
	FileMenu.AddSeparator()
	exportKeys := map[export.Format]*keys.Accelerator{
		export.FormatCSV: keys.CmdOrCtrl("e"),
	}
	for _, info := range export.Formats() {
		format := info.Format
		FileMenu.AddText("Export "+info.DisplayName, exportKeys[format], func(_ *menu.CallbackData) {
			if appInstance != nil {
				wruntime.EventsEmit(appInstance.Ctx(), "menu:export", string(format))
			}
		})
	}
	FileMenu.AddSeparator()
	FileMenu.AddText("Copy Visible Rows", keys.Combo("c", keys.CmdOrCtrlKey, keys.ShiftKey), func(_ *menu.CallbackData) {
		if appInstance != nil {
			wruntime.EventsEmit(appInstance.Ctx(), "menu:copyVisible")
		}
	})
	FileMenu.AddText("Settings", keys.CmdOrCtrl(","), func(_ *menu.CallbackData) {
		if appInstance != nil {
			wruntime.EventsEmit(appInstance.Ctx(), "menu:settings")
		}
	})

	ViewMenu := AppMenu.AddSubmenu("View")
	ViewMenu.AddText("Toggle Theme", keys.CmdOrCtrl("t"), func(_ *menu.CallbackData) {
		if appInstance != nil {
			wruntime.EventsEmit(appInstance.Ctx(), "menu:toggleTheme")
		}
	})

	// Get saved window size or use defaults
	width, height := appInstance.GetSavedWindowSize()

	// Create application with options
	err := wails.Run(&options.App{
		Title:     "Query Explorer",
		Width:     width,
		Height:    height,
		Menu:      AppMenu,
		MinWidth:  400,
		MinHeight: 300,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		OnStartup: func(ctx context.Context) {
			appInstance.Startup(ctx)
			settingsService.Startup(ctx)
		},
		OnBeforeClose: func(ctx context.Context) bool {
			// Remember the window size for the next start
			w, h := wruntime.WindowGetSize(ctx)
			if err := appInstance.SaveWindowSize(w, h); err != nil {
				appInstance.Log("warn", "Failed to save window size: "+err.Error())
			}
			return false
		},
		Bind: []interface{}{
			appInstance,
			settingsService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
