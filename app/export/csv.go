package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"queryexplorer/app/interfaces"
)

// CSVHeader is the fixed header line of every CSV export
const CSVHeader = "id,name,age,email"

// ToCSV serializes rows as CSV with values inserted verbatim. Lines are
// joined with "\n" and there is no trailing newline. Commas, quotes and
// newlines inside name or email are not escaped; use ToCSVQuoted when the
// consumer needs RFC 4180 output.
func ToCSV(rows interfaces.RowSequence) []byte {
	var b bytes.Buffer
	b.Grow(len(CSVHeader) + len(rows)*48)
	b.WriteString(CSVHeader)
	for _, r := range rows {
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(r.ID))
		b.WriteByte(',')
		b.WriteString(r.Name)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.Age))
		b.WriteByte(',')
		b.WriteString(r.Email)
	}
	return b.Bytes()
}

// ToCSVQuoted serializes rows with RFC 4180 quoting. Like ToCSV it uses "\n"
// line endings and omits the final newline.
func ToCSVQuoted(rows interfaces.RowSequence) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	if err := w.Write(strings.Split(CSVHeader, ",")); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}
