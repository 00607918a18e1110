package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions the importer cannot
// parse.
var ErrUnsupportedFormat = errors.New("importer: unsupported file format, expected .xlsx or .csv")

// ErrLegacyExcel is returned for .xls uploads. The binary BIFF format has no
// maintained Go reader; registers exported from old Excel versions need a
// save-as to .xlsx first.
var ErrLegacyExcel = errors.New("importer: legacy .xls workbooks are not supported, re-save the file as .xlsx")

// ErrEmptySheet is returned when a file parses but contains no data rows.
var ErrEmptySheet = errors.New("importer: sheet contains no data rows")

// ReadSheet parses an uploaded spreadsheet into a header list and raw rows.
// The format is chosen by file extension. If the header row turns out to be
// auto-generated placeholders, the first data row is promoted to headers.
func ReadSheet(r io.Reader, filename string) ([]string, []Row, error) {
	var (
		headers []string
		rows    []Row
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		headers, rows, err = readExcel(r)
	case ".csv":
		headers, rows, err = readCSV(r)
	case ".xls":
		return nil, nil, ErrLegacyExcel
	default:
		return nil, nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, nil, err
	}

	if AllGeneratedHeaders(headers) {
		headers, rows = RemapWithHeaderRow(headers, rows)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptySheet
	}
	return headers, rows, nil
}

func readExcel(r io.Reader) ([]string, []Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptySheet
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableToRows(cells)
}

func readCSV(r io.Reader) ([]string, []Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	cells, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	return tableToRows(cells)
}

// tableToRows turns a positional cell grid into header-keyed rows. Blank
// header cells get positional placeholder names so downstream remap can
// still address them.
func tableToRows(cells [][]string) ([]string, []Row, error) {
	if len(cells) == 0 {
		return nil, nil, ErrEmptySheet
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column%d", i+1)
		}
		headers[i] = h
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, rec := range cells[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
