package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"queryexplorer/app/interfaces"
)

// SheetName is the worksheet the XLSX export writes to
const SheetName = "Results"

// ToXLSX writes rows to a single-sheet workbook. Numeric columns are stored
// as numbers.
func ToXLSX(rows interfaces.RowSequence) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(interfaces.Columns))
	for i, key := range interfaces.Columns {
		header[i] = string(key)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, []interface{}{r.ID, r.Name, r.Age, r.Email}); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
