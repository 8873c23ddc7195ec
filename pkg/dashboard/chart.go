package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"planbook/internal/capture"
	"planbook/internal/log"
)

const barChartHeightPx = 320

var barTemplate = template.Must(template.New("bar").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: sans-serif; margin: 24px; }
  h1 { font-size: 18px; text-align: center; }
  .chart { display: flex; align-items: flex-end; gap: 12px; height: {{.ChartHeight}}px;
           border-left: 1px solid #333; border-bottom: 1px solid #333; padding: 0 12px; }
  .col { display: flex; flex-direction: column; justify-content: flex-end; align-items: center; flex: 1; height: 100%; }
  .bar { width: 70%; background: #4472c4; }
  .value { font-size: 11px; margin-bottom: 2px; }
  .label { font-size: 11px; margin-top: 6px; transform: rotate(-45deg); white-space: nowrap; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="chart">
{{- range .Bars}}
  <div class="col" title="{{.Label}}: {{.Display}}">
    <div class="value">{{.Display}}</div>
    <div class="bar" style="height: {{.Height}}px"></div>
    <div class="label">{{.Label}}</div>
  </div>
{{- end}}
</div>
</body>
</html>
`))

type chartBar struct {
	Label   string
	Display string
	Height  int
}

type chartDoc struct {
	Title       string
	ChartHeight int
	Bars        []chartBar
}

// RenderChartImage renders a bar chart of the Summary sheet in the
// workbook at path and writes it as a PNG next to the workbook. Returns
// the image path.
func RenderChartImage(ctx context.Context, path, groupCol, valueCol string, width, height int) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	rows, err := f.GetRows(SummarySheetName)
	if err != nil {
		return "", err
	}
	if len(rows) < 2 {
		return "", ErrNoData
	}

	maxValue := 0.0
	type entry struct {
		label string
		value float64
	}
	var entries []entry
	for _, cells := range rows[1:] {
		if len(cells) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(cells[1], 64)
		if err != nil {
			continue
		}
		entries = append(entries, entry{label: cells[0], value: value})
		if value > maxValue {
			maxValue = value
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	doc := chartDoc{
		Title:       fmt.Sprintf("%s by %s", valueCol, groupCol),
		ChartHeight: barChartHeightPx,
	}
	for _, e := range entries {
		doc.Bars = append(doc.Bars, chartBar{
			Label:   e.label,
			Display: strconv.FormatFloat(e.value, 'f', -1, 64),
			Height:  int(e.value / maxValue * float64(barChartHeightPx-40)),
		})
	}

	htmlFile, err := os.CreateTemp(filepath.Dir(path), "chart-*.html")
	if err != nil {
		return "", err
	}
	htmlPath := htmlFile.Name()
	defer os.Remove(htmlPath)
	if err := barTemplate.Execute(htmlFile, doc); err != nil {
		htmlFile.Close()
		return "", err
	}
	if err := htmlFile.Close(); err != nil {
		return "", err
	}

	imgPath := strings.TrimSuffix(path, ".xlsx") + "_chart.png"
	if err := capture.PNG(ctx, capture.Options{
		HTMLPath:   htmlPath,
		OutputPath: imgPath,
		Width:      width,
		Height:     height,
	}); err != nil {
		return "", err
	}
	log.Info("rendered chart image", "path", imgPath, "bars", len(doc.Bars))
	return imgPath, nil
}
