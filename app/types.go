package app

import (
	"queryexplorer/app/grid"
	"queryexplorer/app/interfaces"
	"queryexplorer/app/query"
)

// ResultInfo describes the selected query's result for the frontend
type ResultInfo struct {
	ResultID        string   `json:"resultId"` // Fresh for every selected query; window requests must echo it
	QueryID         int      `json:"queryId"`  // 0 for ad-hoc text
	Text            string   `json:"text"`
	RowCount        int      `json:"rowCount"`
	ExecutionTimeMs *float64 `json:"executionTimeMs,omitempty"` // Absent for predefined selections
	FromCache       bool     `json:"fromCache"`
	Fingerprint     string   `json:"fingerprint"`
}

// ErrorInfo is the last failed execution
type ErrorInfo struct {
	Kind    query.ErrorKind `json:"kind"`
	Query   string          `json:"query"`
	Message string          `json:"message"`
}

// AppState is a snapshot of everything the frontend renders outside the table body
type AppState struct {
	Result ResultInfo `json:"result"`
	// QueryText is the ad-hoc text; DisplayText falls back to the selected query's text
	QueryText   string              `json:"queryText"`
	DisplayText string              `json:"displayText"`
	Theme       interfaces.Theme    `json:"theme"`
	Loading     bool                `json:"loading"`
	History     []string            `json:"history"`
	Sort        interfaces.SortSpec `json:"sort"`
	LastError   *ErrorInfo          `json:"lastError,omitempty"`
}

// WindowResponse is one scroll position of the result table
type WindowResponse struct {
	ResultID string `json:"resultId"`
	grid.Page
}

// ExportResponse reports a completed export
type ExportResponse struct {
	Saved bool   `json:"saved"` // False when the user cancelled the dialog
	Path  string `json:"path,omitempty"`
	Rows  int    `json:"rows"`
	Bytes int    `json:"bytes"`
}
