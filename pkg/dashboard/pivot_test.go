package dashboard

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGroupByCount(t *testing.T) {
	table := &Table{}
	for i := 0; i < 3; i++ {
		table.Append(map[string]string{SourceColumn: "a.xlsx", "Event Title": "Event"})
	}
	for i := 0; i < 5; i++ {
		table.Append(map[string]string{SourceColumn: "b.xlsx", "Event Title": "Event"})
	}

	pivot := GroupBy(table, SourceColumn, "Event Title", AggCount)
	if len(pivot) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(pivot))
	}
	if pivot[0].Group != "a.xlsx" || pivot[0].Value != 3 {
		t.Errorf("group 0 = %+v, expected a.xlsx/3", pivot[0])
	}
	if pivot[1].Group != "b.xlsx" || pivot[1].Value != 5 {
		t.Errorf("group 1 = %+v, expected b.xlsx/5", pivot[1])
	}
}

func TestGroupByCountSkipsEmptyValues(t *testing.T) {
	table := &Table{}
	table.Append(map[string]string{SourceColumn: "a.xlsx", "Event Title": "Event"})
	table.Append(map[string]string{SourceColumn: "a.xlsx"})

	pivot := GroupBy(table, SourceColumn, "Event Title", AggCount)
	if len(pivot) != 1 || pivot[0].Value != 1 {
		t.Errorf("pivot = %+v, expected single group with count 1", pivot)
	}
}

func TestGroupBySum(t *testing.T) {
	table := &Table{}
	table.Append(map[string]string{"Region": "east", "Sales": "10"})
	table.Append(map[string]string{"Region": "east", "Sales": "5.5"})
	table.Append(map[string]string{"Region": "west", "Sales": "-3"})
	table.Append(map[string]string{"Region": "west", "Sales": "oops"})

	pivot := GroupBy(table, "Region", "Sales", AggSum)
	if len(pivot) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(pivot))
	}
	if pivot[0].Group != "east" || pivot[0].Value != 15.5 {
		t.Errorf("east = %+v, expected 15.5", pivot[0])
	}
	if pivot[1].Group != "west" || pivot[1].Value != -3 {
		t.Errorf("west = %+v, expected -3", pivot[1])
	}
}

func TestParseAggregation(t *testing.T) {
	if agg, err := ParseAggregation("count"); err != nil || agg != AggCount {
		t.Errorf("count: got %v, %v", agg, err)
	}
	if agg, err := ParseAggregation("sum"); err != nil || agg != AggSum {
		t.Errorf("sum: got %v, %v", agg, err)
	}
	if _, err := ParseAggregation("median"); err == nil {
		t.Error("expected error for unknown aggregation")
	}
}

func TestWriteMasterAndPivot(t *testing.T) {
	dir := t.TempDir()
	header := []string{"Date", "Event Title"}
	writeFixture(t, filepath.Join(dir, "a.xlsx"), header, eventRows(3))
	writeFixture(t, filepath.Join(dir, "b.xlsx"), header, eventRows(5))

	table, err := Consolidate(dir, "")
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	masterPath := filepath.Join(dir, MasterFileName)
	if err := WriteMaster(table, masterPath); err != nil {
		t.Fatalf("WriteMaster failed: %v", err)
	}
	if err := Pivot(masterPath, SourceColumn, "Event Title", AggCount); err != nil {
		t.Fatalf("Pivot failed: %v", err)
	}

	f, err := excelize.OpenFile(masterPath)
	if err != nil {
		t.Fatalf("reopen master: %v", err)
	}
	defer f.Close()

	tables, err := f.GetTables(MasterSheetName)
	if err != nil || len(tables) != 1 {
		t.Fatalf("expected one native table (err=%v, n=%d)", err, len(tables))
	}
	if tables[0].Name != "ConsolidatedTable" {
		t.Errorf("table name = %q", tables[0].Name)
	}

	rows, err := f.GetRows(SummarySheetName)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 pivot rows, got %d", len(rows))
	}
	if rows[1][0] != "a.xlsx" || rows[1][1] != "3" {
		t.Errorf("summary row 1 = %v, expected a.xlsx/3", rows[1])
	}
	if rows[2][0] != "b.xlsx" || rows[2][1] != "5" {
		t.Errorf("summary row 2 = %v, expected b.xlsx/5", rows[2])
	}
}

func TestGuessValueColumn(t *testing.T) {
	table := &Table{}
	table.EnsureColumn("Date")
	table.EnsureColumn("Event Title")
	table.EnsureColumn("Amount")
	table.EnsureColumn(SourceColumn)

	if got := guessValueColumn(table, AggCount); got != "Event Title" {
		t.Errorf("count guess = %q, expected Event Title", got)
	}
	if got := guessValueColumn(table, AggSum); got != "Amount" {
		t.Errorf("sum guess = %q, expected Amount", got)
	}

	single := &Table{}
	single.EnsureColumn("Amount")
	single.EnsureColumn(SourceColumn)
	if got := guessValueColumn(single, AggSum); got != "Amount" {
		t.Errorf("single-column sum guess = %q, expected Amount", got)
	}
}
