package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
)

var (
	// ErrNameColumnMissing is returned when no header cell names the participant column
	ErrNameColumnMissing = errors.New(`roster must contain a "姓名" or "Name" column`)
	// ErrNoHeaderRow is returned for an empty sheet or file
	ErrNoHeaderRow = errors.New("roster file has no header row")
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX
	ErrUnsupportedFormat = errors.New("unsupported roster file format")
)

// RosterFormat is the encoding of an uploaded roster
type RosterFormat string

const (
	RosterFormatCSV  RosterFormat = "csv"
	RosterFormatXLSX RosterFormat = "xlsx"
)

var (
	nameHeaders       = []string{"姓名", "name"}
	departmentHeaders = []string{"部门", "department", "dept"}
)

// DetectRosterFormat picks the format from the file extension
func DetectRosterFormat(filename string) (RosterFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return RosterFormatCSV, nil
	case ".xlsx", ".xlsm":
		return RosterFormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

// ImportRoster reads a roster from r. Every row with a non-empty name becomes a
// participant with a fresh id. The first row is the header.
func ImportRoster(r io.Reader, format RosterFormat) ([]models.Participant, error) {
	var rows [][]string
	var err error
	switch format {
	case RosterFormatCSV:
		rows, err = readCSVRows(r)
	case RosterFormatXLSX:
		rows, err = readXLSXRows(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return ParseRosterRows(rows)
}

// ParseRosterRows maps a header row plus data rows to participants
func ParseRosterRows(rows [][]string) ([]models.Participant, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeaderRow
	}
	header := rows[0]
	nameIdx := findHeaderContaining(header, nameHeaders)
	if nameIdx == -1 {
		return nil, ErrNameColumnMissing
	}
	deptIdx := findHeaderContaining(header, departmentHeaders)

	participants := make([]models.Participant, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		participants = append(participants, models.Participant{
			ID:         uuid.NewString(),
			Name:       name,
			Department: cell(row, deptIdx),
		})
	}
	return participants, nil
}

// findHeaderContaining returns the first header cell containing any of the
// given fragments, ignoring case
func findHeaderContaining(header []string, fragments []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, f := range fragments {
			if strings.Contains(h, f) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readXLSXRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeaderRow
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
