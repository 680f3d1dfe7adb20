package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes the given rows to sheet1 and returns the xlsx bytes.
func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { require.NoError(t, f.Close()) }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestSpreadsheetTextColumns(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"메뉴", "칼로리"},
		{"쌀밥", 310},
		{"", 0},
		{"김치", 25},
	})

	text, err := SpreadsheetText(bytes.NewReader(data))
	require.NoError(t, err)

	// Text cells joined by a separator, header retained.
	assert.Contains(t, text, "[메뉴]")
	assert.Contains(t, text, "쌀밥\n김치")
	// Numeric column and the empty cell are omitted.
	assert.NotContains(t, text, "310")
	assert.NotContains(t, text, "칼로리")
	assert.NotContains(t, text, "\n\n쌀밥")
}

func TestSpreadsheetTextMultipleTextColumns(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"중식", "석식"},
		{"된장찌개", "제육볶음"},
		{"계란찜", "미역국"},
	})

	text, err := SpreadsheetText(bytes.NewReader(data))
	require.NoError(t, err)

	// Both columns appear, in sheet order.
	assert.Less(t, strings.Index(text, "된장찌개"), strings.Index(text, "제육볶음"))
	assert.Contains(t, text, "[중식]")
	assert.Contains(t, text, "[석식]")
	assert.Contains(t, text, "계란찜")
	assert.Contains(t, text, "미역국")
}

func TestSpreadsheetTextMixedColumnIsText(t *testing.T) {
	// A column with one non-numeric cell counts as text, like the menu
	// codes nutritionists mix into numeric columns.
	data := buildWorkbook(t, [][]any{
		{"비고"},
		{"1"},
		{"우유 포함"},
	})

	text, err := SpreadsheetText(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Contains(t, text, "우유 포함")
	assert.Contains(t, text, "1")
}

func TestSpreadsheetTextEmptyWorkbook(t *testing.T) {
	data := buildWorkbook(t, nil)

	text, err := SpreadsheetText(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSpreadsheetTextUnreadable(t *testing.T) {
	_, err := SpreadsheetText(bytes.NewReader([]byte("this is not a workbook")))
	assert.Error(t, err)
}
