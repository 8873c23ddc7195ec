package calendar

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
)

// SummarySheetName is the sheet (re)built by GenerateSummary.
const SummarySheetName = "Event Summary"

const maxSummaryColWidth = 50

// GenerateSummary rebuilds the summary sheet: all indexed events sorted by
// date ascending, each row linking back to its calendar cell. Column
// widths are sized to content, capped at maxSummaryColWidth.
func (s *Store) GenerateSummary() error {
	if idx, _ := s.file.GetSheetIndex(SummarySheetName); idx >= 0 {
		if err := s.file.DeleteSheet(SummarySheetName); err != nil {
			return &OperationError{Op: "summary", Err: err}
		}
	}
	if _, err := s.file.NewSheet(SummarySheetName); err != nil {
		return &OperationError{Op: "summary", Err: err}
	}

	headers := []string{"Date", "Event Title", "Cell Address", "Link to Calendar"}
	headerStyle, err := s.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCCCCC"}},
	})
	if err != nil {
		return &OperationError{Op: "summary", Err: err}
	}
	for col, header := range headers {
		addr, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := s.file.SetCellValue(SummarySheetName, addr, header); err != nil {
			return &OperationError{Op: "summary", Err: err}
		}
		if err := s.file.SetCellStyle(SummarySheetName, addr, addr, headerStyle); err != nil {
			return &OperationError{Op: "summary", Err: err}
		}
	}

	type row struct {
		dateKey string
		ev      Event
		addr    string
	}
	var all []row
	for key, cells := range s.events {
		for addr, ev := range cells {
			all = append(all, row{dateKey: key, ev: ev, addr: addr})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].ev.When.Equal(all[j].ev.When) {
			return all[i].ev.When.Before(all[j].ev.When)
		}
		return all[i].addr < all[j].addr
	})

	linkStyle, err := s.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0000FF", Underline: "single"},
	})
	if err != nil {
		return &OperationError{Op: "summary", Err: err}
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for i, r := range all {
		rowNum := i + 2
		values := []string{r.dateKey, r.ev.Title, r.addr, "Go to Calendar"}
		for col, value := range values {
			addr, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := s.file.SetCellValue(SummarySheetName, addr, value); err != nil {
				return &OperationError{Op: "summary", Err: err}
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}

		linkAddr, _ := excelize.CoordinatesToCellName(4, rowNum)
		target := fmt.Sprintf("%s!%s", s.sheet, r.addr)
		if err := s.file.SetCellHyperLink(SummarySheetName, linkAddr, target, "Location"); err != nil {
			return &OperationError{Op: "summary", Err: err}
		}
		if err := s.file.SetCellStyle(SummarySheetName, linkAddr, linkAddr, linkStyle); err != nil {
			return &OperationError{Op: "summary", Err: err}
		}
	}

	for col, width := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		w := width + 2
		if w > maxSummaryColWidth {
			w = maxSummaryColWidth
		}
		if err := s.file.SetColWidth(SummarySheetName, name, name, float64(w)); err != nil {
			return &OperationError{Op: "summary", Err: err}
		}
	}

	log.Info("generated summary sheet", "events", len(all))
	return nil
}
