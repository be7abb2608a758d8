package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const histogramBuckets = 20

// RenderHistogram draws the timing distribution of a result as a bar
// chart PNG under dir. It returns the path of the written file.
func RenderHistogram(result *Result, dir string) (string, error) {
	if len(result.Durations) == 0 {
		return "", fmt.Errorf("benchmark %s has no recorded durations", result.Name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create histogram directory: %w", err)
	}

	min := result.Durations[0].Seconds()
	max := min
	for _, d := range result.Durations {
		sec := d.Seconds()
		if sec < min {
			min = sec
		}
		if sec > max {
			max = sec
		}
	}

	width := (max - min) / histogramBuckets
	if width <= 0 {
		width = 1e-9
	}

	counts := make([]int, histogramBuckets)
	for _, d := range result.Durations {
		bucket := int((d.Seconds() - min) / width)
		if bucket >= histogramBuckets {
			bucket = histogramBuckets - 1
		}
		counts[bucket]++
	}

	bars := make([]chart.Value, 0, histogramBuckets)
	for i, count := range counts {
		bars = append(bars, chart.Value{
			Label: formatSeconds(min + width*float64(i)),
			Value: float64(count),
			Style: chart.Style{
				FillColor:   drawing.ColorBlue,
				StrokeColor: drawing.ColorBlue,
			},
		})
	}

	barChart := chart.BarChart{
		Title:      result.Name,
		TitleStyle: chart.Shown(),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:      1024,
		Height:     480,
		BarWidth:   30,
		BarSpacing: 10,
		Bars:       bars,
		XAxis:      chart.Shown(),
		YAxis: chart.YAxis{
			Name:      "Iterations",
			NameStyle: chart.Shown(),
			Style:     chart.Shown(),
		},
	}

	path := filepath.Join(dir, sanitizeFilename(result.Name)+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create histogram file: %w", err)
	}
	defer f.Close()

	if err := barChart.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render histogram: %w", err)
	}
	return path, nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", " ", "_", ":", "_")
	return replacer.Replace(strings.ToLower(name))
}
