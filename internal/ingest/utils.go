package ingest

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

func buildColumnMap(headers []string) map[string]int {
	colMap := make(map[string]int)
	for i, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))
		colMap[key] = i
	}
	return colMap
}

func getColumnValue(row []string, colMap map[string]int, key string) string {
	if idx, exists := colMap[key]; exists && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// IsExcelFile sniffs the content for the xlsx zip signature and verifies it
// opens as a workbook.
func IsExcelFile(content []byte) bool {
	if len(content) < 2 {
		return false
	}

	if content[0] == 0x50 && content[1] == 0x4B {
		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			return false
		}
		defer f.Close()
		return true
	}

	return false
}

func splitSheet(rows [][]string) (header []string, data [][]string) {
	if len(rows) == 0 {
		return []string{}, [][]string{}
	}
	return rows[0], rows[1:]
}

// positional returns the cell at idx or empty when the row is short.
func positional(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
