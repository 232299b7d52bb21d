package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

const sheetName = "Verarbeitung"

var headers = []string{
	"Zeitstempel",
	"Original",
	"Neuer Name",
	"Status",
	"Kategorie",
	"Absender",
	"Patient",
	"Details",
}

// JournalXLSX renders the processing journal as an XLSX workbook, one row
// per entry, newest last (journal order).
func JournalXLSX(entries []domain.LogEntry) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, entry := range entries {
		values := []string{
			entry.Timestamp,
			entry.Original,
			entry.NewName,
			string(entry.Status),
			entry.Category,
			entry.Sender,
			entry.Patient,
			entry.Details,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
