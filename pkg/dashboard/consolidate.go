package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
)

// Consolidate reads every .xlsx file in folder (skipping Excel lock files
// prefixed "~$") into one table. The named sheet is used when present,
// otherwise the file's first sheet; the first row supplies column headers
// and every data row is tagged with its source filename. A file that
// fails to read is logged and skipped. Returns ErrNoData when nothing was
// readable.
func Consolidate(folder, sheetName string) (*Table, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	t := &Table{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		if err := appendFile(t, filepath.Join(folder, name), name, sheetName); err != nil {
			log.Error("reading file", err, "file", name)
		}
	}

	if t.Empty() {
		return nil, ErrNoData
	}
	log.Info("consolidated rows", "rows", len(t.Rows), "columns", len(t.Columns))
	return t, nil
}

func appendFile(t *Table, path, name, sheetName string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := sheetName
	if idx, _ := f.GetSheetIndex(sheet); sheet == "" || idx < 0 {
		list := f.GetSheetList()
		if len(list) == 0 {
			return fmt.Errorf("workbook has no sheets")
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		log.Warn("sheet is empty", "file", name, "sheet", sheet)
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column%d", i+1)
		}
		headers[i] = h
		t.EnsureColumn(h)
	}
	t.EnsureColumn(SourceColumn)

	for _, cells := range rows[1:] {
		row := make(map[string]string, len(headers)+1)
		for i, header := range headers {
			if i < len(cells) {
				row[header] = cells[i]
			}
		}
		row[SourceColumn] = name
		t.Append(row)
	}
	log.Debug("consolidated file", "file", name, "sheet", sheet, "rows", len(rows)-1)
	return nil
}
