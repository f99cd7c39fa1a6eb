package export

import (
	"fmt"

	"queryexplorer/app/interfaces"
)

// Format identifies an export file type
type Format string

const (
	FormatCSV   Format = "csv"
	FormatCSVXZ Format = "csv.xz"
	FormatXLSX  Format = "xlsx"
	FormatJSON  Format = "json"
)

// BaseFileName is the file name offered for every export, before the extension
const BaseFileName = "query_result"

// FormatInfo describes how an export is offered for download
type FormatInfo struct {
	Format      Format `json:"format"`
	FileName    string `json:"fileName"`
	MIMEType    string `json:"mimeType"`
	DisplayName string `json:"displayName"`
	Pattern     string `json:"pattern"`
}

var formats = map[Format]FormatInfo{
	FormatCSV: {
		Format:      FormatCSV,
		FileName:    BaseFileName + ".csv",
		MIMEType:    "text/csv;charset=utf-8",
		DisplayName: "CSV File",
		Pattern:     "*.csv",
	},
	FormatCSVXZ: {
		Format:      FormatCSVXZ,
		FileName:    BaseFileName + ".csv.xz",
		MIMEType:    "application/x-xz",
		DisplayName: "Compressed CSV File",
		Pattern:     "*.xz",
	},
	FormatXLSX: {
		Format:      FormatXLSX,
		FileName:    BaseFileName + ".xlsx",
		MIMEType:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		DisplayName: "Excel Workbook",
		Pattern:     "*.xlsx",
	},
	FormatJSON: {
		Format:      FormatJSON,
		FileName:    BaseFileName + ".json",
		MIMEType:    "application/json;charset=utf-8",
		DisplayName: "JSON File",
		Pattern:     "*.json",
	},
}

// Formats lists the supported export formats in menu order
func Formats() []FormatInfo {
	return []FormatInfo{formats[FormatCSV], formats[FormatXLSX], formats[FormatJSON], formats[FormatCSVXZ]}
}

// Lookup returns the description of f
func Lookup(f Format) (FormatInfo, error) {
	info, ok := formats[f]
	if !ok {
		return FormatInfo{}, fmt.Errorf("unsupported export format %q", string(f))
	}
	return info, nil
}

// Options tunes CSV output
type Options struct {
	// QuoteFields switches CSV output to RFC 4180 quoting
	QuoteFields bool
}

// Encode serializes rows in format f
func Encode(f Format, rows interfaces.RowSequence, opts Options) ([]byte, error) {
	switch f {
	case FormatCSV:
		return encodeCSV(rows, opts)
	case FormatCSVXZ:
		data, err := encodeCSV(rows, opts)
		if err != nil {
			return nil, err
		}
		return compressXZ(data)
	case FormatXLSX:
		return ToXLSX(rows)
	case FormatJSON:
		return ToJSON(rows), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", string(f))
}

func encodeCSV(rows interfaces.RowSequence, opts Options) ([]byte, error) {
	if opts.QuoteFields {
		return ToCSVQuoted(rows)
	}
	return ToCSV(rows), nil
}
