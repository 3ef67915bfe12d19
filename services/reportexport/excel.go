package reportexport

import (
	"bytes"
	"fmt"

	reportModel "survey-booking/models/report"

	"github.com/xuri/excelize/v2"
)

// exportHeader lists the columns of the report export sheet.
var exportHeader = []string{
	"ID",
	"Title",
	"Client",
	"Mouza",
	"Plot Number",
	"Area (sq ft)",
	"Area (katha)",
	"Area (decimal)",
	"Notes",
	"Created At",
}

// GenerateReportExport renders the given reports as an .xlsx workbook.
// Client rows must be preloaded.
func GenerateReportExport(reports []reportModel.Report) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, close only on the error paths.

	sheetName := "Survey Reports"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range reports {
		row := i + 2
		values := []interface{}{
			r.ID,
			r.Title,
			r.Client.Name,
			r.Mouza,
			r.PlotNumber,
			r.AreaSqFt,
			r.AreaKatha,
			r.AreaDecimal,
			deref(r.Notes),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
