package gantt

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validatedTasks(t *testing.T) []Task {
	t.Helper()
	tasks, err := Validate([]RawTask{
		{Name: "Design", AssignedTo: "Ana", Progress: "0.5", Start: "2025-07-01", End: "2025-07-10", Row: 6},
		{Name: "Build", Progress: "0", Start: "2025-07-11", End: "2025-07-20", Row: 7, Predecessors: "Design"},
		{Name: "Ship", Progress: "0", Start: "2025-07-21", End: "2025-07-21", Row: 8, Predecessors: "7"},
	})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return tasks
}

func TestBuildTimeline(t *testing.T) {
	tasks := validatedTasks(t)
	doc := buildTimeline(tasks, 1200)

	if len(doc.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(doc.Bars))
	}
	if len(doc.Deps) != 2 {
		t.Errorf("expected 2 dependency connectors, got %d", len(doc.Deps))
	}

	design := doc.Bars[0]
	if design.CompletedW <= 0 || design.CompletedW >= design.PlannedW {
		t.Errorf("completed width %d should be within planned width %d", design.CompletedW, design.PlannedW)
	}
	if design.Milestone {
		t.Error("ten-day task should not be a milestone")
	}

	ship := doc.Bars[2]
	if !ship.Milestone || ship.DiamondPoints == "" {
		t.Error("one-day task should render as a diamond marker")
	}

	// Bars are laid out left to right as time advances.
	if doc.Bars[1].X <= design.X {
		t.Errorf("Build bar x=%d should be right of Design x=%d", doc.Bars[1].X, design.X)
	}
	if len(doc.Ticks) == 0 {
		t.Error("expected axis ticks")
	}
}

func TestRenderWritesHTML(t *testing.T) {
	tasks := validatedTasks(t)
	outDir := filepath.Join(t.TempDir(), "out", "charts")

	// No Chromium in the test environment: the PNG capture may fail, but
	// the HTML timeline must still be produced.
	result, err := Render(context.Background(), tasks, outDir, 1200, 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	data, err := os.ReadFile(result.HTMLPath)
	if err != nil {
		t.Fatalf("read HTML output: %v", err)
	}
	html := string(data)
	for _, want := range []string{"Design", "Build", "Ship", "stroke-dasharray", "Project Gantt Chart"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
}
