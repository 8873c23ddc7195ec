package gantt

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
)

// DefaultStartRow is the first data row of a Vertex42-style schedule
// sheet; rows 1-5 are template headers.
const DefaultStartRow = 6

// Schedule sheet columns are fixed by the template.
const (
	colTask         = "B"
	colAssignedTo   = "C"
	colProgress     = "D"
	colStart        = "E"
	colEnd          = "F"
	colPredecessors = "G"
)

// LoadTasks reads sequential schedule rows starting at startRow. The scan
// stops at the first row with an empty Task cell; rows with a task but no
// Start value are section headers and are skipped without stopping.
func LoadTasks(path, sheetName string, startRow int) ([]RawTask, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrSheetNotFound, sheetName, strings.Join(f.GetSheetList(), ", "))
	}
	if startRow <= 0 {
		startRow = DefaultStartRow
	}

	cell := func(col string, row int) string {
		v, err := f.GetCellValue(sheetName, fmt.Sprintf("%s%d", col, row))
		if err != nil {
			return ""
		}
		return v
	}

	var tasks []RawTask
	for row := startRow; ; row++ {
		name := cell(colTask, row)
		if name == "" {
			break
		}
		start := cell(colStart, row)
		if start == "" {
			log.Debug("skipping section header", "row", row, "task", name)
			continue
		}
		tasks = append(tasks, RawTask{
			Name:         name,
			AssignedTo:   cell(colAssignedTo, row),
			Progress:     cell(colProgress, row),
			Start:        start,
			End:          cell(colEnd, row),
			Predecessors: cell(colPredecessors, row),
			Row:          row,
		})
	}

	log.Info("loaded tasks", "count", len(tasks), "sheet", sheetName)
	return tasks, nil
}
