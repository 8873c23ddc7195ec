package dashboard

import (
	"context"
	"path/filepath"
	"strings"

	"planbook/internal/log"
)

// MasterFileName is the workbook written into the consolidated folder.
const MasterFileName = "MasterDashboard.xlsx"

// Options configures a dashboard run.
type Options struct {
	// Folder holds the source .xlsx files; the master workbook is written
	// here too.
	Folder string

	// SheetName selects which sheet to consolidate from each file; empty
	// means each file's first sheet.
	SheetName string

	// GroupColumn and ValueColumn drive the pivot. An empty ValueColumn is
	// guessed from the consolidated header: the second column for counts,
	// the last column before SourceFile for sums.
	GroupColumn string
	ValueColumn string
	Agg         Aggregation

	// ChartWidth / ChartHeight size the chart image viewport.
	ChartWidth  int
	ChartHeight int

	// SkipChart disables the PNG chart image.
	SkipChart bool

	// Pdf, when non-nil, is invoked best-effort after the workbook is
	// complete.
	Pdf PdfExporter
}

// Result reports the artifacts a Generate run produced.
type Result struct {
	MasterPath string
	ChartPath  string
	PdfPath    string
	Rows       int
}

// Generate runs the full pipeline: consolidate the folder, write the
// master workbook, pivot, render the chart image, and best-effort export
// a PDF. Chart and PDF failures are logged, not returned.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	t, err := Consolidate(opts.Folder, opts.SheetName)
	if err != nil {
		return nil, err
	}

	groupCol := opts.GroupColumn
	if groupCol == "" {
		groupCol = SourceColumn
	}
	valueCol := opts.ValueColumn
	if valueCol == "" {
		valueCol = guessValueColumn(t, opts.Agg)
		log.Info("guessed value column", "column", valueCol)
	}

	masterPath := filepath.Join(opts.Folder, MasterFileName)
	if err := WriteMaster(t, masterPath); err != nil {
		return nil, err
	}
	if err := Pivot(masterPath, groupCol, valueCol, opts.Agg); err != nil {
		return nil, err
	}

	res := &Result{MasterPath: masterPath, Rows: len(t.Rows)}

	if !opts.SkipChart {
		chartPath, err := RenderChartImage(ctx, masterPath, groupCol, valueCol, opts.ChartWidth, opts.ChartHeight)
		if err != nil {
			log.Error("chart rendering failed", err)
		} else {
			res.ChartPath = chartPath
		}
	}

	if opts.Pdf != nil {
		pdfPath := strings.TrimSuffix(masterPath, ".xlsx") + ".pdf"
		if err := opts.Pdf.Export(ctx, masterPath, pdfPath); err != nil {
			log.Error("PDF export failed", err)
		} else {
			res.PdfPath = pdfPath
		}
	}

	return res, nil
}

// guessValueColumn picks a pivot value column when none was given: the
// second column for counts, the last column before SourceFile for sums.
// SourceFile itself is never picked.
func guessValueColumn(t *Table, agg Aggregation) string {
	candidates := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c != SourceColumn {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return SourceColumn
	}
	if agg == AggSum {
		return candidates[len(candidates)-1]
	}
	if len(candidates) >= 2 {
		return candidates[1]
	}
	return candidates[0]
}
