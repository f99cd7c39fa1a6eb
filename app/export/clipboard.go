package export

import (
	"strings"

	"queryexplorer/app/interfaces"
)

// ToTSV renders rows with a header as tab-separated text for the clipboard.
// Tabs and line breaks inside values are replaced with spaces so each row
// stays on one line.
func ToTSV(rows interfaces.RowSequence) string {
	sanitize := func(s string) string {
		ss := strings.ReplaceAll(s, "\t", " ")
		ss = strings.ReplaceAll(ss, "\r", " ")
		ss = strings.ReplaceAll(ss, "\n", " ")
		return ss
	}

	var sb strings.Builder
	for i, key := range interfaces.Columns {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(string(key))
	}
	for _, r := range rows {
		sb.WriteByte('\n')
		for i, v := range r.Values() {
			if i > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(sanitize(v))
		}
	}
	return sb.String()
}
