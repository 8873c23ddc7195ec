// Package calendar maintains dated, styled event cells in a workbook
// sheet. Events live as newline-joined text inside the cell that carries
// their date; the in-memory index is derived state and is never persisted
// separately from the cell contents.
//
// Known limitation: UpdateEvent and RemoveEvent edit cell text by literal
// substring replacement. If one event's title is a substring of another's
// in the same cell, the replacement may touch the wrong occurrence.
package calendar

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"planbook/internal/log"
	"planbook/pkg/dates"
)

const dateKeyLayout = "2006-01-02"

// Event is a titled, styled entry anchored to a date and a cell.
type Event struct {
	Title string
	Style Style
	When  time.Time
}

// Store owns one workbook and the event index for its calendar sheet.
type Store struct {
	file  *excelize.File
	path  string
	sheet string

	// events maps date key (YYYY-MM-DD) to cell address to event.
	events map[string]map[string]Event
}

// Load opens the workbook at path and selects (creating if necessary) the
// calendar sheet. A missing file is ErrFileNotFound.
func Load(path, sheetName string) (*Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		if _, err := f.NewSheet(sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", sheetName, err)
		}
		log.Info("created calendar sheet", "sheet", sheetName)
	}
	log.Info("loaded workbook", "path", path, "sheet", sheetName)
	return &Store{
		file:   f,
		path:   path,
		sheet:  sheetName,
		events: make(map[string]map[string]Event),
	}, nil
}

// Close releases the underlying workbook.
func (s *Store) Close() error {
	return s.file.Close()
}

// Sheet returns the calendar sheet name.
func (s *Store) Sheet() string {
	return s.sheet
}

// ScanDates walks every populated cell of the calendar sheet and returns
// the addresses whose values parse as dates.
func (s *Store) ScanDates() map[string]time.Time {
	found := make(map[string]time.Time)
	rows, err := s.file.GetRows(s.sheet)
	if err != nil {
		log.Error("scanning dates", err, "sheet", s.sheet)
		return found
	}
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			// Multi-event cells keep their date on the first line.
			first := value
			if i := strings.IndexByte(first, '\n'); i >= 0 {
				first = first[:i]
			}
			when, ok := dates.ParseCell(first)
			if !ok {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}
			found[addr] = when
			log.Debug("found date cell", "cell", addr, "date", when.Format(dateKeyLayout))
		}
	}
	log.Info("extracted date cells", "count", len(found))
	return found
}

// AddEvent records an event on the given date. When cellAddr is empty the
// first scanned cell carrying the same calendar date is reused; if none
// exists a new cell is appended in column A seeded with the ISO date.
// Returns false (after logging) on any failure.
func (s *Store) AddEvent(day time.Time, title, cellAddr string, style Style) bool {
	addr := cellAddr
	if addr == "" {
		var err error
		addr, err = s.findOrCreateDateCell(day)
		if err != nil {
			log.Error("adding event", &OperationError{Op: "add", Date: day.Format(dateKeyLayout), Err: err})
			return false
		}
	}

	value, err := s.file.GetCellValue(s.sheet, addr)
	if err != nil {
		log.Error("adding event", &OperationError{Op: "add", Date: day.Format(dateKeyLayout), Err: err})
		return false
	}
	if value != "" {
		value = value + "\n" + title
	} else {
		value = day.Format(dateKeyLayout) + "\n" + title
	}
	if err := s.file.SetCellValue(s.sheet, addr, value); err != nil {
		log.Error("adding event", &OperationError{Op: "add", Date: day.Format(dateKeyLayout), Err: err})
		return false
	}
	if err := s.applyStyle(addr, style); err != nil {
		log.Error("styling event cell", err, "cell", addr)
		return false
	}

	key := day.Format(dateKeyLayout)
	if s.events[key] == nil {
		s.events[key] = make(map[string]Event)
	}
	s.events[key][addr] = Event{Title: title, Style: style, When: day}

	log.Info("added event", "title", title, "date", key, "cell", addr)
	return true
}

// findOrCreateDateCell returns the address of an existing cell whose date
// matches day (time of day ignored), or appends a fresh one in column A.
func (s *Store) findOrCreateDateCell(day time.Time) (string, error) {
	for addr, when := range s.ScanDates() {
		if dates.SameDay(when, day) {
			return addr, nil
		}
	}

	rows, err := s.file.GetRows(s.sheet)
	if err != nil {
		return "", err
	}
	addr, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return "", err
	}
	if err := s.file.SetCellValue(s.sheet, addr, day.Format(dateKeyLayout)); err != nil {
		return "", err
	}
	return addr, nil
}

func (s *Store) applyStyle(addr string, style Style) error {
	id, err := s.file.NewStyle(style.cellStyle())
	if err != nil {
		return err
	}
	return s.file.SetCellStyle(s.sheet, addr, addr, id)
}

// UpdateEvent renames the event with an exact title match on the given
// date. The cell text is edited by replacing the first occurrence of
// oldTitle. Returns false when the date or title is unknown.
func (s *Store) UpdateEvent(day time.Time, oldTitle, newTitle string) bool {
	key := day.Format(dateKeyLayout)
	cells, ok := s.events[key]
	if !ok {
		log.Warn("no events found for date", "date", key)
		return false
	}
	for addr, ev := range cells {
		if ev.Title != oldTitle {
			continue
		}
		ev.Title = newTitle
		cells[addr] = ev

		value, err := s.file.GetCellValue(s.sheet, addr)
		if err == nil && value != "" {
			value = strings.Replace(value, oldTitle, newTitle, 1)
			if err := s.file.SetCellValue(s.sheet, addr, value); err != nil {
				log.Error("updating event", &OperationError{Op: "update", Date: key, Err: err})
				return false
			}
		}
		log.Info("updated event", "old", oldTitle, "new", newTitle, "date", key)
		return true
	}
	log.Warn("event not found", "title", oldTitle, "date", key)
	return false
}

// RemoveEvent deletes the event with an exact title match on the given
// date, stripping its text from the cell. When the cell's last event for
// that date goes, the cell styling is reset and the date entry dropped.
func (s *Store) RemoveEvent(day time.Time, title string) bool {
	key := day.Format(dateKeyLayout)
	cells, ok := s.events[key]
	if !ok {
		log.Warn("no events found for date", "date", key)
		return false
	}
	for addr, ev := range cells {
		if ev.Title != title {
			continue
		}
		delete(cells, addr)

		value, err := s.file.GetCellValue(s.sheet, addr)
		if err == nil && value != "" {
			value = strings.Replace(value, "\n"+title, "", 1)
			value = strings.Replace(value, title, "", 1)
			if err := s.file.SetCellValue(s.sheet, addr, value); err != nil {
				log.Error("removing event", &OperationError{Op: "remove", Date: key, Err: err})
				return false
			}
		}
		if len(cells) == 0 {
			if err := s.file.SetCellStyle(s.sheet, addr, addr, 0); err != nil {
				log.Error("resetting cell style", err, "cell", addr)
			}
			delete(s.events, key)
		}
		log.Info("removed event", "title", title, "date", key)
		return true
	}
	log.Warn("event not found", "title", title, "date", key)
	return false
}

// EventTitles returns the indexed events grouped by date key.
func (s *Store) EventTitles() map[string][]string {
	out := make(map[string][]string, len(s.events))
	for key, cells := range s.events {
		addrs := make([]string, 0, len(cells))
		for addr := range cells {
			addrs = append(addrs, addr)
		}
		sort.Strings(addrs)
		for _, addr := range addrs {
			out[key] = append(out[key], cells[addr].Title)
		}
	}
	return out
}

// Save writes the workbook to path, or back to the load path when path is
// empty.
func (s *Store) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if err := s.file.SaveAs(path); err != nil {
		return &OperationError{Op: "save", Err: err}
	}
	log.Info("saved workbook", "path", path)
	return nil
}
