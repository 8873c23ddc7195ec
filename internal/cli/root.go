// Package cli wires the planbook command tree.
package cli

import (
	"github.com/spf13/cobra"

	"planbook/internal/config"
	"planbook/internal/log"
)

var (
	verbose    bool
	logFile    string
	configPath string

	cfg = config.Default()
)

// NewRootCmd builds the planbook root command with the calendar,
// dashboard, and gantt groups attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planbook",
		Short: "Spreadsheet utilities: calendar events, dashboards, Gantt charts",
		Long: `planbook manipulates spreadsheet workbooks:

  calendar   add, update, and remove dated events stored as styled cells
  dashboard  consolidate a folder of workbooks into a master with a pivot
  gantt      render a Gantt timeline from a project schedule sheet`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			path := logFile
			if path == "" {
				path = cfg.LogFile
			}
			if err := log.SetFile(path); err != nil {
				return err
			}
			if verbose {
				log.SetLevel(log.LevelDebug)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default from config)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file with tool defaults")

	root.AddCommand(newCalendarCmd())
	root.AddCommand(newDashboardCmd())
	root.AddCommand(newGanttCmd())
	return root
}
