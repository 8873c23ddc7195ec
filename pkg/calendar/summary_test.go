package calendar

import (
	"testing"
)

func TestGenerateSummary(t *testing.T) {
	s := newTestStore(t, []string{"2024-03-10", "2024-01-15"})
	// Added out of date order; the summary must sort ascending.
	s.AddEvent(day(t, "2024-03-10"), "Review", "", StyleMeeting)
	s.AddEvent(day(t, "2024-01-15"), "Kickoff", "", StyleImportant)

	if err := s.GenerateSummary(); err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}

	rows, err := s.file.GetRows(SummarySheetName)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][3] != "Link to Calendar" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "2024-01-15" || rows[2][0] != "2024-03-10" {
		t.Errorf("summary rows not sorted by date: %v / %v", rows[1], rows[2])
	}
	if rows[1][1] != "Kickoff" {
		t.Errorf("row 2 title = %q, expected Kickoff", rows[1][1])
	}

	// Each row links back to its calendar cell.
	hasLink, target, err := s.file.GetCellHyperLink(SummarySheetName, "D2")
	if err != nil || !hasLink {
		t.Fatalf("expected hyperlink on D2 (err=%v)", err)
	}
	if target != "Calendar!A2" {
		t.Errorf("D2 link target = %q, expected Calendar!A2", target)
	}
}

func TestGenerateSummaryReplacesPrior(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	s.AddEvent(day(t, "2024-01-15"), "Kickoff", "", StyleDefault)
	if err := s.GenerateSummary(); err != nil {
		t.Fatalf("first GenerateSummary failed: %v", err)
	}
	if err := s.GenerateSummary(); err != nil {
		t.Fatalf("second GenerateSummary failed: %v", err)
	}
	rows, err := s.file.GetRows(SummarySheetName)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header + 1 row after rebuild, got %d", len(rows))
	}
}
