package viz

import "github.com/guptarohit/asciigraph"

// PlotTrace renders a scalar series as an ASCII line chart.
func PlotTrace(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// Sparkline renders a compact chart for live views.
func Sparkline(data []float64, width int) string {
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(5),
		asciigraph.Width(width),
	)
}
