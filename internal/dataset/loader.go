package dataset

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// headerScanRows bounds how deep into a sheet the header row is searched.
const headerScanRows = 10

// Load reads a SINAN notification workbook and runs the preparation
// pipeline over it. sheetName selects a specific sheet; when empty the
// first sheet carrying a recognizable notification header is used. Load is
// the only step of the pipeline that can fail: any error here means no
// dataset at all, never a partial one.
func Load(path, sheetName string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, sheet, err := sheetRows(f, sheetName)
	if err != nil {
		return nil, err
	}

	headerRow := findHeaderRow(rows)
	if headerRow == -1 {
		return nil, fmt.Errorf("sheet %q has no notification header row", sheet)
	}

	columns := make([]string, 0, len(rows[headerRow]))
	for _, h := range rows[headerRow] {
		columns = append(columns, strings.TrimSpace(h))
	}

	dataRows := rows[headerRow+1:]
	d := Build(columns, dataRows)

	logger.Info("workbook loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("source_rows", len(dataRows)),
		slog.Int("records", d.Len()))

	return d, nil
}

// sheetRows resolves the sheet to read. An explicit name must exist; with
// no name the first sheet whose early rows look like a notification table
// wins, falling back to the workbook's first sheet.
func sheetRows(f *excelize.File, sheetName string) ([][]string, string, error) {
	if sheetName != "" {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, "", fmt.Errorf("read sheet %q: %w", sheetName, err)
		}
		return rows, sheetName, nil
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if findHeaderRow(rows) != -1 {
			return rows, name, nil
		}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, "", fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, sheets[0], nil
}

// findHeaderRow locates the header row by looking for the notification date
// column, which every SINAN export carries. Returns -1 when absent.
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.EqualFold(strings.TrimSpace(cell), ColNotificationDate) {
				return i
			}
		}
	}
	return -1
}
