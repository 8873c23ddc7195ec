package calendar

import (
	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
)

// CreateSample writes a fresh calendar workbook with a handful of seed
// dates in column A, useful for trying the tool out.
func CreateSample(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Calendar"); err != nil {
		return err
	}

	sampleDates := []string{
		"2024-01-15", "2024-02-20", "2024-03-10",
		"2024-04-05", "2024-05-12", "2024-06-18",
	}
	for i, date := range sampleDates {
		addr, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue("Calendar", addr, date); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return err
	}
	log.Info("created sample calendar", "path", path)
	return nil
}
