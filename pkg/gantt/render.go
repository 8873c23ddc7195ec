package gantt

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"planbook/internal/capture"
	"planbook/internal/log"
)

// Output names the artifacts Render produced. PNGPath is empty when the
// static capture failed (the HTML timeline is still usable).
type Output struct {
	HTMLPath string
	PNGPath  string
}

const (
	marginLeft   = 220
	marginRight  = 40
	marginTop    = 60
	marginBottom = 50
	rowHeight    = 28
	barHeight    = 16
)

var timelineTemplate = template.Must(template.New("gantt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 16px; }
  h1 { font-size: 18px; }
  .legend { font-size: 12px; margin-bottom: 8px; }
  .swatch { display: inline-block; width: 12px; height: 12px; margin: 0 4px 0 12px; vertical-align: middle; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="legend">
  <span class="swatch" style="background: rgba(100,100,100,0.3)"></span>Planned
  <span class="swatch" style="background: rgba(0,150,0,0.7)"></span>Completed
  <span class="swatch" style="background: red"></span>Milestone
</div>
<svg width="{{.Width}}" height="{{.Height}}" xmlns="http://www.w3.org/2000/svg">
{{- range .Ticks}}
  <line x1="{{.X}}" y1="{{$.PlotTop}}" x2="{{.X}}" y2="{{$.PlotBottom}}" stroke="#ddd"/>
  <text x="{{.X}}" y="{{$.LabelY}}" font-size="10" text-anchor="middle" fill="#555">{{.Label}}</text>
{{- end}}
{{- range .Deps}}
  <line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="#888" stroke-dasharray="4 3"/>
{{- end}}
{{- range .Bars}}
  <text x="{{.LabelX}}" y="{{.TextY}}" font-size="11" text-anchor="end">{{.Name}}</text>
  <rect x="{{.X}}" y="{{.Y}}" width="{{.PlannedW}}" height="{{.H}}" fill="rgba(100,100,100,0.3)">
    <title>{{.Tooltip}}</title>
  </rect>
  {{- if gt .CompletedW 0}}
  <rect x="{{.X}}" y="{{.Y}}" width="{{.CompletedW}}" height="{{.H}}" fill="rgba(0,150,0,0.7)"/>
  {{- end}}
  {{- if .Milestone}}
  <polygon points="{{.DiamondPoints}}" fill="red">
    <title>{{.Name}}</title>
  </polygon>
  {{- end}}
{{- end}}
</svg>
</body>
</html>
`))

type barView struct {
	Name          string
	Tooltip       string
	X, Y, H       int
	LabelX, TextY int
	PlannedW      int
	CompletedW    int
	Milestone     bool
	DiamondPoints string
}

type depView struct {
	X1, Y1, X2, Y2 int
}

type tickView struct {
	X     int
	Label string
}

type timelineDoc struct {
	Title      string
	Width      int
	Height     int
	PlotTop    int
	PlotBottom int
	LabelY     int
	Bars       []barView
	Deps       []depView
	Ticks      []tickView
}

// Render writes an interactive HTML timeline and a static PNG into
// outputDir, creating the directory if needed. A PNG capture failure is
// logged but does not fail the render.
func Render(ctx context.Context, tasks []Task, outputDir string, width, height int) (*Output, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}
	if width <= 0 {
		width = capture.DefaultWidth
	}

	doc := buildTimeline(tasks, width)
	if height <= 0 {
		height = doc.Height + 120
	}

	htmlPath := filepath.Join(outputDir, "gantt_chart.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return nil, err
	}
	if err := timelineTemplate.Execute(f, doc); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	log.Info("saved interactive Gantt chart", "path", htmlPath)

	out := &Output{HTMLPath: htmlPath}
	pngPath := filepath.Join(outputDir, "gantt_chart.png")
	if err := capture.PNG(ctx, capture.Options{
		HTMLPath:   htmlPath,
		OutputPath: pngPath,
		Width:      width,
		Height:     height,
	}); err != nil {
		log.Error("Gantt chart image capture failed", err)
	} else {
		out.PNGPath = pngPath
		log.Info("saved Gantt chart image", "path", pngPath)
	}
	return out, nil
}

func buildTimeline(tasks []Task, width int) *timelineDoc {
	minStart := tasks[0].Start
	maxEnd := tasks[0].End
	for _, t := range tasks {
		if t.Start.Before(minStart) {
			minStart = t.Start
		}
		if t.End.After(maxEnd) {
			maxEnd = t.End
		}
	}
	// One trailing day so the last bar's full width stays inside the plot.
	spanDays := int(maxEnd.Sub(minStart).Hours()/24) + 2
	plotWidth := width - marginLeft - marginRight
	pxPerDay := float64(plotWidth) / float64(spanDays)

	x := func(t time.Time) int {
		return marginLeft + int(t.Sub(minStart).Hours()/24*pxPerDay)
	}

	height := marginTop + len(tasks)*rowHeight + marginBottom
	doc := &timelineDoc{
		Title:      "Project Gantt Chart",
		Width:      width,
		Height:     height,
		PlotTop:    marginTop,
		PlotBottom: marginTop + len(tasks)*rowHeight,
		LabelY:     marginTop + len(tasks)*rowHeight + 18,
	}

	rowY := make(map[int]int, len(tasks))
	for i, t := range tasks {
		y := marginTop + i*rowHeight + (rowHeight-barHeight)/2
		center := y + barHeight/2
		rowY[t.Row] = center

		bar := barView{
			Name:       t.Name,
			X:          x(t.Start),
			Y:          y,
			H:          barHeight,
			LabelX:     marginLeft - 8,
			TextY:      center + 4,
			PlannedW:   max(1, int(float64(t.Duration)*pxPerDay)),
			CompletedW: int(t.CompletedEnd.Sub(t.Start).Hours() / 24 * pxPerDay),
			Milestone:  t.Milestone(),
			Tooltip: fmt.Sprintf("%s\nOwner: %s\nStart: %s\nEnd: %s\nProgress: %.0f%%",
				t.Name, t.AssignedTo,
				t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"),
				t.Progress*100),
		}
		if bar.Milestone {
			cx := x(t.Start.Add(12 * time.Hour))
			r := barHeight/2 + 2
			bar.DiamondPoints = fmt.Sprintf("%d,%d %d,%d %d,%d %d,%d",
				cx, center-r, cx+r, center, cx, center+r, cx-r, center)
		}
		doc.Bars = append(doc.Bars, bar)
	}

	for _, t := range tasks {
		for _, token := range t.Predecessors {
			pred, ok := Resolve(tasks, token)
			if !ok {
				continue
			}
			doc.Deps = append(doc.Deps, depView{
				X1: x(pred.End.AddDate(0, 0, 1)),
				Y1: rowY[pred.Row],
				X2: x(t.Start),
				Y2: rowY[t.Row],
			})
		}
	}

	step := spanDays / 10
	if step < 1 {
		step = 1
	}
	for d := 0; d < spanDays; d += step {
		day := minStart.AddDate(0, 0, d)
		doc.Ticks = append(doc.Ticks, tickView{
			X:     x(day),
			Label: day.Format("Jan 02"),
		})
	}
	return doc
}
