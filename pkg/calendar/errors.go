package calendar

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the workbook file does not exist.
var ErrFileNotFound = errors.New("workbook not found")

// OperationError describes a failed calendar operation.
type OperationError struct {
	Op   string // "add", "update", "remove", "batch", "summary", "save"
	Date string
	Err  error
}

func (e *OperationError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("calendar %s failed for %s: %v", e.Op, e.Date, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
