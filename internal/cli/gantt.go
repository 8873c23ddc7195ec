package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planbook/pkg/gantt"
)

var (
	ganttSheetName string
	ganttOutputDir string
	ganttStartRow  int
)

func newGanttCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gantt FILE",
		Short: "Render a Gantt timeline from a project schedule workbook",
		Long: `gantt reads tasks from fixed schedule columns (Task, Assigned To,
Progress, Start, End, Predecessors), validates them, and renders an
interactive HTML timeline plus a static PNG into the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runGantt,
	}
	cmd.Flags().StringVar(&ganttSheetName, "sheet", "", "Schedule sheet name (default from config)")
	cmd.Flags().StringVar(&ganttOutputDir, "output", "output", "Output directory for visualizations")
	cmd.Flags().IntVar(&ganttStartRow, "start-row", 0, "First data row of the schedule (default from config)")
	return cmd
}

func runGantt(cmd *cobra.Command, args []string) error {
	sheet := ganttSheetName
	if sheet == "" {
		sheet = cfg.ScheduleSheet
	}
	startRow := ganttStartRow
	if startRow <= 0 {
		startRow = cfg.ScheduleStartRow
	}

	raw, err := gantt.LoadTasks(args[0], sheet, startRow)
	if err != nil {
		return err
	}
	tasks, err := gantt.Validate(raw)
	if err != nil {
		return err
	}

	out, err := gantt.Render(cmd.Context(), tasks, ganttOutputDir, cfg.ChartWidth, 0)
	if err != nil {
		return err
	}
	fmt.Printf("Gantt chart: %s\n", out.HTMLPath)
	if out.PNGPath != "" {
		fmt.Printf("Gantt image: %s\n", out.PNGPath)
	}
	return nil
}
