package gantt

import (
	"strconv"
	"strings"

	"planbook/internal/log"
	"planbook/pkg/dates"
)

// Validate cleans raw schedule rows into renderable tasks:
//
//   - text fields are trimmed; duplicate task names keep the first
//     occurrence and warn
//   - rows missing Task, Start, or End are dropped
//   - dates are coerced; unparseable rows are dropped with a warning
//   - Progress accepts either a 0-1 fraction or a 0-100 scale (values
//     above 1 are divided by 100) and is clamped to [0, 1]
//   - End is clamped to be no earlier than Start
//   - Duration and CompletedEnd are derived
//   - predecessor references are checked against the task set; dangling
//     references warn but never fail
func Validate(raw []RawTask) ([]Task, error) {
	if len(raw) == 0 {
		return nil, ErrNoTasks
	}

	var tasks []Task
	seen := make(map[string]bool)
	dropped := 0
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" || strings.TrimSpace(r.Start) == "" || strings.TrimSpace(r.End) == "" {
			log.Warn("dropping row with missing fields", "row", r.Row)
			dropped++
			continue
		}
		if seen[name] {
			log.Warn("dropping duplicate task", "task", name, "row", r.Row)
			dropped++
			continue
		}

		start, ok := dates.ParseCell(r.Start)
		if !ok {
			log.Warn("dropping row with invalid start date", "row", r.Row, "value", r.Start)
			dropped++
			continue
		}
		end, ok := dates.ParseCell(r.End)
		if !ok {
			log.Warn("dropping row with invalid end date", "row", r.Row, "value", r.End)
			dropped++
			continue
		}
		if end.Before(start) {
			log.Warn("end date before start date, clamping", "task", name, "row", r.Row)
			end = start
		}

		assigned := strings.TrimSpace(r.AssignedTo)
		if assigned == "" {
			assigned = "Unassigned"
		}

		progress := parseProgress(r.Progress)
		duration := int(end.Sub(start).Hours()/24) + 1

		seen[name] = true
		tasks = append(tasks, Task{
			Name:         name,
			AssignedTo:   assigned,
			Progress:     progress,
			Start:        start,
			End:          end,
			Duration:     duration,
			CompletedEnd: start.AddDate(0, 0, int(float64(duration)*progress)),
			Row:          r.Row,
			Predecessors: splitPredecessors(r.Predecessors),
		})
	}

	if dropped > 0 {
		log.Warn("dropped invalid rows", "count", dropped)
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	checkPredecessors(tasks)
	log.Info("validation complete", "tasks", len(tasks))
	return tasks, nil
}

// parseProgress accepts "0.5", "50", "50%", or an empty cell (0). Values
// above 1 are treated as a 0-100 scale.
func parseProgress(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Warn("invalid progress value, using 0", "value", s)
		return 0
	}
	if p > 1 {
		p /= 100
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

func splitPredecessors(s string) []string {
	var out []string
	for _, token := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// checkPredecessors cross-checks predecessor tokens against the task set.
// Numeric tokens refer to source row numbers, anything else to task
// names. Dangling references only warn.
func checkPredecessors(tasks []Task) {
	byRow := make(map[int]bool, len(tasks))
	byName := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		byRow[t.Row] = true
		byName[t.Name] = true
	}
	for _, t := range tasks {
		for _, token := range t.Predecessors {
			if row, err := strconv.Atoi(token); err == nil {
				if !byRow[row] {
					log.Warn("predecessor row not found", "task", t.Name, "predecessor", token)
				}
				continue
			}
			if !byName[token] {
				log.Warn("predecessor task not found", "task", t.Name, "predecessor", token)
			}
		}
	}
}

// Resolve returns the task a predecessor token refers to, if any.
func Resolve(tasks []Task, token string) (Task, bool) {
	if row, err := strconv.Atoi(token); err == nil {
		for _, t := range tasks {
			if t.Row == row {
				return t, true
			}
		}
		return Task{}, false
	}
	for _, t := range tasks {
		if t.Name == token {
			return t, true
		}
	}
	return Task{}, false
}
