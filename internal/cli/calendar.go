package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"planbook/pkg/calendar"
	"planbook/pkg/dates"
)

var (
	calLoadPath   string
	calSheetName  string
	calOutputPath string
	calStyleName  string
	calBatchTitle string
)

func newCalendarCmd() *cobra.Command {
	cal := &cobra.Command{
		Use:   "calendar",
		Short: "Edit calendar events stored as styled workbook cells",
	}
	cal.PersistentFlags().StringVar(&calLoadPath, "load", "", "Path to the calendar workbook")
	cal.PersistentFlags().StringVar(&calSheetName, "sheet", "", "Calendar sheet name (default from config)")
	cal.PersistentFlags().StringVar(&calOutputPath, "output", "", "Output path (default: overwrite the loaded file)")

	add := &cobra.Command{
		Use:   "add DATE TITLE",
		Short: "Add an event on a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE:  runCalendarAdd,
	}
	add.Flags().StringVar(&calStyleName, "style", "default", "Event style: default, important, meeting")

	update := &cobra.Command{
		Use:   "update DATE OLD_TITLE NEW_TITLE",
		Short: "Rename an event on a date",
		Args:  cobra.ExactArgs(3),
		RunE:  runCalendarUpdate,
	}

	remove := &cobra.Command{
		Use:   "remove DATE TITLE",
		Short: "Remove an event from a date",
		Args:  cobra.ExactArgs(2),
		RunE:  runCalendarRemove,
	}

	batch := &cobra.Command{
		Use:   "batch FILE",
		Short: "Add events for every date in a text or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalendarBatch,
	}
	batch.Flags().StringVar(&calBatchTitle, "title", "Event", "Title given to each batch-added event")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Rebuild the Event Summary sheet",
		Args:  cobra.NoArgs,
		RunE:  runCalendarSummary,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List indexed events by date",
		Args:  cobra.NoArgs,
		RunE:  runCalendarList,
	}

	sample := &cobra.Command{
		Use:   "sample PATH",
		Short: "Create a sample calendar workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := calendar.CreateSample(args[0]); err != nil {
				return err
			}
			fmt.Printf("Created sample calendar: %s\n", args[0])
			return nil
		},
	}

	cal.AddCommand(add, update, remove, batch, summary, list, sample)
	return cal
}

func openStore() (*calendar.Store, error) {
	if calLoadPath == "" {
		return nil, fmt.Errorf("--load is required")
	}
	sheet := calSheetName
	if sheet == "" {
		sheet = cfg.CalendarSheet
	}
	return calendar.Load(calLoadPath, sheet)
}

func saveStore(s *calendar.Store) error {
	if err := s.Save(calOutputPath); err != nil {
		return err
	}
	path := calOutputPath
	if path == "" {
		path = calLoadPath
	}
	fmt.Printf("Saved calendar to: %s\n", path)
	return nil
}

func runCalendarAdd(cmd *cobra.Command, args []string) error {
	day, err := dates.ParseISO(args[0])
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[0])
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if !store.AddEvent(day, args[1], "", calendar.ParseStyle(calStyleName)) {
		return fmt.Errorf("failed to add event %q on %s", args[1], args[0])
	}
	fmt.Printf("Added event %q on %s\n", args[1], args[0])
	return saveStore(store)
}

func runCalendarUpdate(cmd *cobra.Command, args []string) error {
	day, err := dates.ParseISO(args[0])
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[0])
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if !store.UpdateEvent(day, args[1], args[2]) {
		return fmt.Errorf("event %q not found on %s", args[1], args[0])
	}
	fmt.Printf("Updated event on %s\n", args[0])
	return saveStore(store)
}

func runCalendarRemove(cmd *cobra.Command, args []string) error {
	day, err := dates.ParseISO(args[0])
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[0])
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if !store.RemoveEvent(day, args[1]) {
		return fmt.Errorf("event %q not found on %s", args[1], args[0])
	}
	fmt.Printf("Removed event %q from %s\n", args[1], args[0])
	return saveStore(store)
}

func runCalendarBatch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.BatchAdd(args[0], calBatchTitle)
	if err != nil {
		return err
	}
	fmt.Printf("Batch added %d events\n", count)
	return saveStore(store)
}

func runCalendarSummary(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.GenerateSummary(); err != nil {
		return err
	}
	fmt.Println("Generated event summary sheet")
	return saveStore(store)
}

func runCalendarList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	events := store.EventTitles()
	if len(events) == 0 {
		fmt.Println("No events found in calendar")
		return nil
	}
	keys := make([]string, 0, len(events))
	for key := range events {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Println("Events:")
	for _, key := range keys {
		fmt.Printf("  %s: %s\n", key, strings.Join(events[key], ", "))
	}
	return nil
}
