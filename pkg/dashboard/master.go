package dashboard

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
)

// MasterSheetName is the data sheet written by WriteMaster.
const MasterSheetName = "Consolidated Data"

// WriteMaster writes the table into a fresh workbook as a native, striped
// table object on the MasterSheetName sheet.
func WriteMaster(t *Table, outPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MasterSheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(MasterSheetName, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		values := make([]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			values[j] = row[c]
		}
		addr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(MasterSheetName, addr, &values); err != nil {
			return err
		}
	}

	endAddr, _ := excelize.CoordinatesToCellName(len(t.Columns), len(t.Rows)+1)
	showStripes := true
	if err := f.AddTable(MasterSheetName, &excelize.Table{
		Range:          fmt.Sprintf("A1:%s", endAddr),
		Name:           "ConsolidatedTable",
		StyleName:      "TableStyleMedium9",
		ShowRowStripes: &showStripes,
	}); err != nil {
		return err
	}

	if err := f.SaveAs(outPath); err != nil {
		return err
	}
	log.Info("wrote master workbook", "path", outPath, "rows", len(t.Rows))
	return nil
}
