package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

// HistoryTimeLayout formats win timestamps in exports
const HistoryTimeLayout = "2006-01-02 15:04:05"

// HistorySheetName is the worksheet written by WriteHistoryXLSX
const HistorySheetName = "Winners"

// HistoryHeaders is the header row of every history export
var HistoryHeaders = []string{"时间", "姓名", "部门", "奖品"}

// ExportFormat is the encoding of a history export
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type of the format
func (f ExportFormat) ContentType() string {
	if f == ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ParseExportFormat accepts "csv" and "xlsx"; empty means xlsx
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportFormatXLSX:
		return ExportFormatXLSX, nil
	case ExportFormatCSV:
		return ExportFormatCSV, nil
	default:
		return "", fmt.Errorf("%w: export %q", ErrUnsupportedFormat, s)
	}
}

// WriteHistory encodes rows in the given format. Timestamps are shown in loc.
func WriteHistory(w io.Writer, format ExportFormat, rows []models.HistoryRow, loc *time.Location) error {
	switch format {
	case ExportFormatCSV:
		return WriteHistoryCSV(w, rows, loc)
	case ExportFormatXLSX:
		return WriteHistoryXLSX(w, rows, loc)
	default:
		return fmt.Errorf("%w: export %q", ErrUnsupportedFormat, format)
	}
}

// WriteHistoryCSV writes a UTF-8 CSV with a byte order mark so spreadsheet
// programs detect the encoding of the Chinese headers
func WriteHistoryCSV(w io.Writer, rows []models.HistoryRow, loc *time.Location) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(HistoryHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(historyRecord(row, loc)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteHistoryXLSX writes a workbook with a single Winners sheet
func WriteHistoryXLSX(w io.Writer, rows []models.HistoryRow, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), HistorySheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	header := make([]interface{}, len(HistoryHeaders))
	for i, h := range HistoryHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(HistorySheetName, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		rec := historyRecord(row, loc)
		values := []interface{}{rec[0], rec[1], rec[2], rec[3]}
		if err := f.SetSheetRow(HistorySheetName, cellName, &values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(HistorySheetName, "A", "A", 20); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func historyRecord(row models.HistoryRow, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	return []string{
		row.Timestamp.In(loc).Format(HistoryTimeLayout),
		row.Name,
		row.Department,
		row.PrizeName,
	}
}
