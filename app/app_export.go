package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"queryexplorer/app/export"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	clipboard "golang.design/x/clipboard"
)

// Maximum clipboard size in bytes (10MB) - helps avoid X11 BadLength errors on Linux
const maxClipboardSize = 10 * 1024 * 1024

// GetExportFormats lists the formats offered in the export menu
func (a *App) GetExportFormats() []export.FormatInfo {
	return export.Formats()
}

// ExportResults opens a Save File dialog prefilled with query_result.<ext>
// and writes the whole sorted view in the requested format. A cancelled
// dialog is not an error.
func (a *App) ExportResults(format string) (ExportResponse, error) {
	ctx := a.Ctx()
	if ctx == nil {
		return ExportResponse{}, fmt.Errorf("app context not initialised")
	}
	info, err := export.Lookup(export.Format(format))
	if err != nil {
		return ExportResponse{}, err
	}

	path, err := runtime.SaveFileDialog(ctx, runtime.SaveDialogOptions{
		Title:           "Export Results",
		DefaultFilename: info.FileName,
		Filters:         []runtime.FileFilter{{DisplayName: info.DisplayName, Pattern: info.Pattern}},
	})
	if err != nil {
		return ExportResponse{}, err
	}
	if path == "" {
		// user cancelled
		return ExportResponse{}, nil
	}
	return a.writeExport(info, path)
}

// writeExport encodes the current view and writes it to path, adding the
// format's extension when missing
func (a *App) writeExport(info export.FormatInfo, path string) (ExportResponse, error) {
	ext := strings.TrimPrefix(info.FileName, export.BaseFileName)
	if !strings.HasSuffix(strings.ToLower(path), ext) {
		path = path + ext
	}

	opts := export.Options{QuoteFields: a.loadSettings().CSVQuoteFields}
	a.mu.Lock()
	rows := a.view
	a.mu.Unlock()

	data, err := export.Encode(info.Format, rows, opts)
	if err != nil {
		return ExportResponse{}, fmt.Errorf("failed to encode %s: %w", info.Format, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.Log("error", fmt.Sprintf("[EXPORT] Write to %s failed: %v", path, err))
		return ExportResponse{}, fmt.Errorf("failed to write export: %w", err)
	}
	a.Log("info", fmt.Sprintf("[EXPORT] Saved %d rows to %s", len(rows), filepath.Base(path)))
	return ExportResponse{Saved: true, Path: path, Rows: len(rows), Bytes: len(data)}, nil
}

// CopyWindowToClipboard copies the rows currently in view as tab-separated
// text and returns how many rows were copied
func (a *App) CopyWindowToClipboard() (int, error) {
	a.clipOnce.Do(func() {
		if err := clipboard.Init(); err == nil {
			a.clipOK = true
		} else {
			a.clipOK = false
			a.Log("error", fmt.Sprintf("Clipboard init failed: %v", err))
		}
	})
	if !a.clipOK {
		return 0, fmt.Errorf("clipboard not available")
	}

	rows := a.visibleRows()
	if err := safeClipboardWrite(clipboard.FmtText, []byte(export.ToTSV(rows))); err != nil {
		a.Log("error", fmt.Sprintf("Clipboard write failed: %v", err))
		return 0, fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	a.Log("info", fmt.Sprintf("Copied %d rows to clipboard", len(rows)))
	return len(rows), nil
}

// safeClipboardWrite attempts to write data to clipboard with panic recovery.
// Returns an error if the write fails or data is too large.
func safeClipboardWrite(format clipboard.Format, data []byte) (err error) {
	if len(data) > maxClipboardSize {
		return fmt.Errorf("data too large for clipboard (%d bytes, max %d bytes)", len(data), maxClipboardSize)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()
	clipboard.Write(format, data)
	return nil
}
