package calendar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
)

// newTestStore writes a calendar workbook with the given column-A dates
// and loads it.
func newTestStore(t *testing.T, seedDates []string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Calendar"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, date := range seedDates {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue("Calendar", cell, date); err != nil {
			t.Fatalf("seed cell: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	f.Close()

	s, err := Load(path, "Calendar")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		t.Fatalf("bad test date %q: %v", iso, err)
	}
	return d
}

func cellValue(t *testing.T, s *Store, addr string) string {
	t.Helper()
	v, err := s.file.GetCellValue(s.sheet, addr)
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", addr, err)
	}
	return v
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"), "Calendar")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadCreatesMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	f.Close()

	s, err := Load(path, "Calendar")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()
	if idx, _ := s.file.GetSheetIndex("Calendar"); idx < 0 {
		t.Error("expected Calendar sheet to be created")
	}
}

func TestScanDates(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15", "2024-02-20", "not a date"})
	found := s.ScanDates()
	if len(found) != 2 {
		t.Fatalf("expected 2 date cells, got %d", len(found))
	}
	if got := found["A1"].Format("2006-01-02"); got != "2024-01-15" {
		t.Errorf("A1 = %s, expected 2024-01-15", got)
	}
}

func TestAddEventToExistingDateCell(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	if !s.AddEvent(day(t, "2024-01-15"), "Kickoff", "", StyleDefault) {
		t.Fatal("AddEvent failed")
	}

	if got := cellValue(t, s, "A1"); got != "2024-01-15\nKickoff" {
		t.Errorf("cell A1 = %q, expected date and title", got)
	}
	// Round-trip: a rescan still recovers the date for that cell.
	found := s.ScanDates()
	if got := found["A1"].Format("2006-01-02"); got != "2024-01-15" {
		t.Errorf("rescan A1 = %s, expected 2024-01-15", got)
	}
}

func TestAddEventCreatesNewCell(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	if !s.AddEvent(day(t, "2024-03-01"), "Review", "", StyleMeeting) {
		t.Fatal("AddEvent failed")
	}
	// Appended in column A on the next unused row.
	if got := cellValue(t, s, "A2"); got != "2024-03-01\nReview" {
		t.Errorf("cell A2 = %q, expected seeded date and title", got)
	}
}

func TestAddEventMultipleSameCell(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	s.AddEvent(day(t, "2024-01-15"), "Kickoff", "", StyleDefault)
	s.AddEvent(day(t, "2024-01-15"), "Standup", "", StyleImportant)

	got := cellValue(t, s, "A1")
	if got != "2024-01-15\nKickoff\nStandup" {
		t.Errorf("cell A1 = %q, expected newline-joined titles", got)
	}
}

func TestUpdateEvent(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	d := day(t, "2024-01-15")
	s.AddEvent(d, "Kickoff", "", StyleDefault)

	if !s.UpdateEvent(d, "Kickoff", "Launch") {
		t.Fatal("UpdateEvent failed")
	}
	got := cellValue(t, s, "A1")
	if strings.Contains(got, "Kickoff") {
		t.Errorf("old title still present in %q", got)
	}
	if !strings.Contains(got, "Launch") {
		t.Errorf("new title missing from %q", got)
	}
	titles := s.EventTitles()["2024-01-15"]
	if len(titles) != 1 || titles[0] != "Launch" {
		t.Errorf("EventTitles = %v, expected [Launch]", titles)
	}
}

func TestUpdateEventUnknown(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	if s.UpdateEvent(day(t, "2024-01-15"), "Nothing", "Else") {
		t.Error("expected false for unknown title")
	}
	if s.UpdateEvent(day(t, "2030-01-01"), "Nothing", "Else") {
		t.Error("expected false for unknown date")
	}
}

func TestRemoveEventIdempotent(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	d := day(t, "2024-01-15")
	s.AddEvent(d, "Kickoff", "", StyleDefault)

	if !s.RemoveEvent(d, "Kickoff") {
		t.Fatal("first RemoveEvent failed")
	}
	after := cellValue(t, s, "A1")
	if strings.Contains(after, "Kickoff") {
		t.Errorf("title still present after removal: %q", after)
	}

	// A second removal is a no-op and leaves the cell untouched.
	if s.RemoveEvent(d, "Kickoff") {
		t.Error("second RemoveEvent should return false")
	}
	if got := cellValue(t, s, "A1"); got != after {
		t.Errorf("cell changed on no-op removal: %q -> %q", after, got)
	}
}

func TestBatchAdd(t *testing.T) {
	s := newTestStore(t, nil)
	dir := t.TempDir()

	logPath := filepath.Join(dir, "batch.log")
	if err := log.SetFile(logPath); err != nil {
		t.Fatalf("SetFile failed: %v", err)
	}
	defer log.Close()

	batchPath := filepath.Join(dir, "dates.txt")
	content := "2025-07-01\nnot-a-date\n2025-07-02\n"
	if err := os.WriteFile(batchPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write batch file: %v", err)
	}

	count, err := s.BatchAdd(batchPath, "Event")
	if err != nil {
		t.Fatalf("BatchAdd failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 added events, got %d", count)
	}
	if len(s.EventTitles()) != 2 {
		t.Errorf("expected 2 indexed dates, got %d", len(s.EventTitles()))
	}

	// The unparseable line is worth exactly one warning.
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := strings.Count(string(data), "[WARNING]"); got != 1 {
		t.Errorf("expected 1 warning for the bad line, got %d in %q", got, data)
	}
}

func TestBatchAddCSV(t *testing.T) {
	s := newTestStore(t, nil)
	batchPath := filepath.Join(t.TempDir(), "dates.csv")
	content := "2025-07-01,release\n2025-07-02,retro\n"
	if err := os.WriteFile(batchPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write batch file: %v", err)
	}

	count, err := s.BatchAdd(batchPath, "Event")
	if err != nil {
		t.Fatalf("BatchAdd failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 added events, got %d", count)
	}
}

func TestBatchAddMissingFile(t *testing.T) {
	s := newTestStore(t, nil)
	if _, err := s.BatchAdd(filepath.Join(t.TempDir(), "nope.txt"), "Event"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := newTestStore(t, []string{"2024-01-15"})
	s.AddEvent(day(t, "2024-01-15"), "Kickoff", "", StyleDefault)

	outPath := filepath.Join(t.TempDir(), "out.xlsx")
	if err := s.Save(outPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(outPath, "Calendar")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	defer reloaded.Close()
	// Dates survive a reload; titles are free text and are not re-indexed.
	found := reloaded.ScanDates()
	if _, ok := found["A1"]; !ok {
		t.Error("expected A1 date to survive save/reload")
	}
	if len(reloaded.EventTitles()) != 0 {
		t.Error("reloaded index should start empty")
	}
}
