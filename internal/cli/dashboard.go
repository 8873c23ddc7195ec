package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planbook/pkg/dashboard"
)

var (
	dashSheetName string
	dashGroupCol  string
	dashValueCol  string
	dashAggName   string
	dashPdf       bool
	dashNoChart   bool
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard FOLDER",
		Short: "Consolidate a folder of workbooks into a master dashboard",
		Long: `dashboard reads every .xlsx file in FOLDER, concatenates their rows
into a master workbook with a native table, adds a pivot Summary sheet
with conditional highlighting and an embedded chart, renders a chart
image, and optionally exports the workbook as PDF.`,
		Args: cobra.ExactArgs(1),
		RunE: runDashboard,
	}
	cmd.Flags().StringVar(&dashSheetName, "sheet", "", "Sheet to read from each file (default: first sheet)")
	cmd.Flags().StringVar(&dashGroupCol, "group-col", dashboard.SourceColumn, "Pivot group column")
	cmd.Flags().StringVar(&dashValueCol, "value-col", "", "Pivot value column (default: guessed from headers)")
	cmd.Flags().StringVar(&dashAggName, "agg", "count", "Pivot aggregation: count or sum")
	cmd.Flags().BoolVar(&dashPdf, "pdf", false, "Export the master workbook as PDF (best effort)")
	cmd.Flags().BoolVar(&dashNoChart, "no-chart", false, "Skip the chart image")
	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	agg, err := dashboard.ParseAggregation(dashAggName)
	if err != nil {
		return err
	}

	opts := dashboard.Options{
		Folder:      args[0],
		SheetName:   dashSheetName,
		GroupColumn: dashGroupCol,
		ValueColumn: dashValueCol,
		Agg:         agg,
		ChartWidth:  cfg.ChartWidth,
		ChartHeight: cfg.ChartHeight,
		SkipChart:   dashNoChart,
	}
	if dashPdf {
		opts.Pdf = dashboard.SofficeExporter{Bin: cfg.SofficeBin}
	}

	res, err := dashboard.Generate(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Printf("Dashboard saved as %s (%d rows)\n", res.MasterPath, res.Rows)
	if res.ChartPath != "" {
		fmt.Printf("Chart image: %s\n", res.ChartPath)
	}
	if res.PdfPath != "" {
		fmt.Printf("PDF export: %s\n", res.PdfPath)
	}
	return nil
}
