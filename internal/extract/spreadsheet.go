// Package extract normalizes uploaded artifacts into plain text payloads for
// analysis. Images are not handled here: their bytes pass to the model as-is.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetText loads an xlsx workbook and flattens its text columns into
// one blob: per column, the header on its own line followed by the non-empty
// string cells joined by newlines. Columns whose every cell parses as a
// number carry no menu text and are skipped, as are empty cells.
func SpreadsheetText(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close spreadsheet", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	headers := rows[0]
	var blob strings.Builder
	for col, header := range headers {
		values := columnValues(rows[1:], col)
		if len(values) == 0 || allNumeric(values) {
			continue
		}
		blob.WriteString("[" + header + "]\n")
		blob.WriteString(strings.Join(values, "\n"))
		blob.WriteString("\n")
	}
	return blob.String(), nil
}

// columnValues returns the trimmed non-empty cells of one column.
func columnValues(rows [][]string, col int) []string {
	var values []string
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func allNumeric(values []string) bool {
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}
