package calendar

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"planbook/internal/log"
	"planbook/pkg/dates"
)

// BatchAdd reads one date per line (text files) or the first column of
// each record (CSV files) and adds an event with defaultTitle for each.
// Unparseable lines are warned about and skipped; the returned count
// covers only events actually added.
func (s *Store) BatchAdd(path, defaultTitle string) (int, error) {
	entries, err := readBatchDates(path)
	if err != nil {
		return 0, &OperationError{Op: "batch", Err: err}
	}

	added := 0
	for _, entry := range entries {
		day, err := dates.ParseISO(entry)
		if err != nil {
			log.Warn("invalid date format", "value", entry)
			continue
		}
		if s.AddEvent(day, defaultTitle, "", StyleDefault) {
			added++
		}
	}
	log.Info("batch added events", "count", added, "file", path)
	return added, nil
}

// readBatchDates parses a dates file. CSV is detected by extension; the
// date is assumed to be in the first column.
func readBatchDates(path string) ([]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			if len(record) > 0 && strings.TrimSpace(record[0]) != "" {
				out = append(out, record[0])
			}
		}
		return out, nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}
