// Package ingest turns uploaded spreadsheet content into ordered rows of
// GI form responses. Excel workbooks are read with excelize, CSV with the
// standard library codec. The parser only shapes data; selection and
// generation live elsewhere.
package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Leading columns expected by the GI paper form. Anything beyond them is
// carried opaquely in Row.Cells.
const (
	colName        = "gi name"
	colDescription = "gi description"
	colLocation    = "gi location"
)

type Row struct {
	// Idx is the zero-based position of the row in the ingested sequence
	// and its stable identifier for selection and generation.
	Idx         int
	Name        string
	Description string
	Location    string
	Cells       []string
}

type Spreadsheet struct {
	Headers []string
	Rows    []Row
}

// Parse dispatches on the detected content format. Format is "xlsx" or
// "csv" as determined by the upload validation.
func Parse(content []byte, format string) (*Spreadsheet, error) {
	if format == "csv" {
		return ParseCSV(content)
	}
	return ParseWorkbook(content)
}

// ParseWorkbook reads the first sheet of an Excel workbook.
func ParseWorkbook(content []byte) (*Spreadsheet, error) {
	excelFile, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "error opening Excel file")
	}
	defer excelFile.Close()

	sheets := excelFile.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := excelFile.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s sheet", sheets[0])
	}

	zap.S().Named("ingest").Infof("read sheet %q with %d rows", sheets[0], len(rows))
	return buildSpreadsheet(rows)
}

// ParseCSV reads comma separated content with a header line.
func ParseCSV(content []byte) (*Spreadsheet, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading CSV content")
		}
		rows = append(rows, record)
	}

	return buildSpreadsheet(rows)
}

func buildSpreadsheet(rows [][]string) (*Spreadsheet, error) {
	header, data := splitSheet(rows)
	if len(header) == 0 {
		return nil, errors.New("no data found in the sheet")
	}

	colMap := buildColumnMap(header)

	sheet := &Spreadsheet{Headers: header, Rows: make([]Row, 0, len(data))}
	for _, raw := range data {
		if isEmptyRow(raw) {
			continue
		}

		idx := len(sheet.Rows)
		sheet.Rows = append(sheet.Rows, Row{
			Idx:         idx,
			Name:        fieldOrPositional(raw, colMap, colName, 0),
			Description: fieldOrPositional(raw, colMap, colDescription, 1),
			Location:    fieldOrPositional(raw, colMap, colLocation, 2),
			Cells:       raw,
		})
	}

	if len(sheet.Rows) == 0 {
		return nil, errors.New("no data rows found in the sheet")
	}

	return sheet, nil
}

// fieldOrPositional prefers the named GI column and falls back to the
// positional layout of the original form export.
func fieldOrPositional(row []string, colMap map[string]int, key string, idx int) string {
	if v := getColumnValue(row, colMap, key); v != "" {
		return v
	}
	return positional(row, idx)
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
