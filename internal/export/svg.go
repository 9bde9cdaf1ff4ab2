package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/engine"
)

var palette = []string{
	"#4fc3f7", "#81c784", "#ffb74d", "#e57373", "#ba68c8",
	"#4db6ac", "#fff176", "#f06292", "#a1887f", "#90a4ae",
}

// WriteSVG renders population trajectories as one polyline per species,
// with a vertical marker at each hurricane.
func WriteSVG(w io.Writer, history []eco.Sample, events []engine.Event, width, height int) error {
	if len(history) == 0 {
		return fmt.Errorf("empty history")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}

	const margin = 40.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	t0 := history[0].T
	t1 := history[len(history)-1].T
	tSpan := t1 - t0
	if tSpan <= 0 {
		tSpan = 1
	}

	nMax := 0.0
	for _, s := range history {
		for _, n := range s.N {
			if n > nMax {
				nMax = n
			}
		}
	}
	if nMax <= 0 {
		nMax = 1
	}

	toX := func(t float64) float64 { return margin + (t-t0)/tSpan*plotW }
	toY := func(n float64) float64 { return margin + (1-n/nMax)*plotH }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#101418"/>
`, width, height, width, height))

	// Axes.
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#556" stroke-width="1"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#556" stroke-width="1"/>
`, margin, margin+plotH, margin+plotW, margin+plotH,
		margin, margin, margin, margin+plotH))

	for _, ev := range events {
		x := toX(ev.T)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e57373" stroke-width="1" stroke-dasharray="4,3" opacity="0.6"/>
<text x="%.1f" y="%.1f" fill="#e57373" font-size="10" font-family="monospace">%s</text>
`, x, margin, x, margin+plotH, x+2, margin+10, ev.Label))
	}

	dim := len(history[0].N)
	for i := 0; i < dim; i++ {
		var pts strings.Builder
		for j, s := range history {
			if j > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.1f,%.1f", toX(s.T), toY(s.N[i]))
		}
		color := palette[i%len(palette)]
		sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>
`, pts.String(), color))
	}

	// Scale labels.
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#99a" font-size="10" font-family="monospace">%.2f</text>
<text x="%.1f" y="%.1f" fill="#99a" font-size="10" font-family="monospace">t=%.1f</text>
<text x="%.1f" y="%.1f" fill="#99a" font-size="10" font-family="monospace">t=%.1f</text>
`, 4.0, margin+4, nMax,
		margin, margin+plotH+14, t0,
		margin+plotW-30, margin+plotH+14, t1))

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
