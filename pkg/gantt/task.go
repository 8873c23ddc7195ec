// Package gantt loads a project schedule from a workbook, validates it,
// and renders a Gantt timeline as HTML plus a static PNG.
package gantt

import (
	"errors"
	"time"
)

// ErrFileNotFound indicates the schedule workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the schedule sheet is missing.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoTasks indicates the sheet held no usable task rows.
var ErrNoTasks = errors.New("no tasks to render")

// RawTask is one schedule row as read from the sheet, before validation.
type RawTask struct {
	Name         string
	AssignedTo   string
	Progress     string
	Start        string
	End          string
	Predecessors string
	// Row is the 1-based source row in the sheet. Predecessor references
	// may point at it.
	Row int
}

// Task is a validated schedule entry.
type Task struct {
	Name       string
	AssignedTo string
	// Progress is a completion fraction in [0, 1].
	Progress float64
	Start    time.Time
	End      time.Time
	// Duration is the inclusive span in days (End - Start + 1).
	Duration int
	// CompletedEnd marks how far Progress reaches along the bar.
	CompletedEnd time.Time
	Row          int
	// Predecessors are advisory references to tasks that should finish
	// first: a numeric token names a source row, anything else a task
	// name. They are validated with a warning only, never enforced.
	Predecessors []string
}

// Milestone reports whether the task renders as a point marker.
func (t Task) Milestone() bool {
	return t.Duration <= 1
}
