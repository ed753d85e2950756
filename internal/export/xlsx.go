// Package export writes the record collection to spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/roster/internal/record"
)

// SheetName is the worksheet holding the records.
const SheetName = "Students"

// Header is the first row of the sheet.
var Header = []string{"ID", "Name", "Age", "Email", "Course"}

// WriteXLSX writes records, in order, to a new workbook at path.
// An existing file is overwritten.
func WriteXLSX(path string, records []record.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	// New workbooks start with a single "Sheet1".
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []any{r.ID, r.Name, r.Age, r.Email, r.Course}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing record %d: %w", r.ID, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
