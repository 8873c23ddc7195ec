package dashboard

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
)

// SummarySheetName is the pivot sheet written by Pivot.
const SummarySheetName = "Summary"

// Aggregation selects how grouped values are combined.
type Aggregation int

const (
	// AggCount counts non-empty values per group.
	AggCount Aggregation = iota
	// AggSum sums numeric values per group; non-numeric cells are skipped.
	AggSum
)

// ParseAggregation maps a CLI name to an Aggregation.
func ParseAggregation(name string) (Aggregation, error) {
	switch name {
	case "count":
		return AggCount, nil
	case "sum":
		return AggSum, nil
	}
	return AggCount, fmt.Errorf("invalid aggregation: %s (must be count or sum)", name)
}

func (a Aggregation) String() string {
	if a == AggSum {
		return "sum"
	}
	return "count"
}

// PivotRow is one aggregated group.
type PivotRow struct {
	Group string
	Value float64
}

// GroupBy aggregates valueCol per distinct groupCol value, returning
// groups in ascending order.
func GroupBy(t *Table, groupCol, valueCol string, agg Aggregation) []PivotRow {
	totals := make(map[string]float64)
	var order []string
	for _, row := range t.Rows {
		group := row[groupCol]
		if _, ok := totals[group]; !ok {
			order = append(order, group)
		}
		value := row[valueCol]
		switch agg {
		case AggSum:
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				totals[group] += n
			}
		default:
			if value != "" {
				totals[group]++
			}
		}
	}
	sort.Strings(order)

	out := make([]PivotRow, 0, len(order))
	for _, group := range order {
		out = append(out, PivotRow{Group: group, Value: totals[group]})
	}
	return out
}

// Pivot reads the master workbook at path, aggregates valueCol grouped by
// groupCol, and (re)writes the Summary sheet. Cells in the top 10% of the
// aggregated value are highlighted yellow; with AggSum, negative values
// are additionally highlighted red. A native column chart of the pivot is
// embedded on the Summary sheet.
func Pivot(path, groupCol, valueCol string, agg Aggregation) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := readSheetTable(f, MasterSheetName)
	if err != nil {
		return err
	}
	pivot := GroupBy(t, groupCol, valueCol, agg)

	if idx, _ := f.GetSheetIndex(SummarySheetName); idx >= 0 {
		if err := f.DeleteSheet(SummarySheetName); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(SummarySheetName); err != nil {
		return err
	}

	header := []interface{}{groupCol, valueCol}
	if err := f.SetSheetRow(SummarySheetName, "A1", &header); err != nil {
		return err
	}
	for i, row := range pivot {
		values := []interface{}{row.Group, row.Value}
		addr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SummarySheetName, addr, &values); err != nil {
			return err
		}
	}

	maxRow := len(pivot) + 1
	if maxRow >= 2 {
		if err := addHighlights(f, agg, maxRow); err != nil {
			return err
		}
		if err := addNativeChart(f, groupCol, valueCol, agg, maxRow); err != nil {
			// The chart is decoration; the pivot data is already written.
			log.Error("embedding summary chart", err)
		}
	}

	if err := f.Save(); err != nil {
		return err
	}
	log.Info("wrote pivot summary", "groups", len(pivot), "agg", agg.String())
	return nil
}

// addHighlights installs the top-10% (yellow) rule and, for sums, the
// negative-value (red) rule on the value column.
func addHighlights(f *excelize.File, agg Aggregation, maxRow int) error {
	yellow, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
	})
	if err != nil {
		return err
	}
	rangeRef := fmt.Sprintf("B2:B%d", maxRow)
	topFormula := fmt.Sprintf("LARGE(B2:B%d,ROUND(COUNT(B2:B%d)*0.1,0))", maxRow, maxRow)
	opts := []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: ">", Format: yellow, Value: topFormula},
	}
	if agg == AggSum {
		red, err := f.NewConditionalStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF0000"}},
		})
		if err != nil {
			return err
		}
		opts = append(opts, excelize.ConditionalFormatOptions{
			Type: "cell", Criteria: "<", Format: red, Value: "0",
		})
	}
	return f.SetConditionalFormat(SummarySheetName, rangeRef, opts)
}

func addNativeChart(f *excelize.File, groupCol, valueCol string, agg Aggregation, maxRow int) error {
	title := fmt.Sprintf("%s by %s", valueCol, groupCol)
	if agg == AggCount {
		title = fmt.Sprintf("%s count by %s", valueCol, groupCol)
	}
	return f.AddChart(SummarySheetName, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", SummarySheetName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SummarySheetName, maxRow),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", SummarySheetName, maxRow),
		}},
		Title: []excelize.RichTextRun{{Text: title}},
	})
}

// readSheetTable loads a sheet into a Table using its first row as the
// header.
func readSheetTable(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	t := &Table{}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if h == "" {
			h = fmt.Sprintf("Column%d", i+1)
		}
		headers[i] = h
		t.EnsureColumn(h)
	}
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = cells[i]
			}
		}
		t.Append(row)
	}
	return t, nil
}
