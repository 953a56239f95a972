package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/vec"
)

var tracePalette = []string{
	"#ff00ff", "#00ffff", "#ffff00", "#ff8800", "#00ff88", "#8888ff", "#ff4477", "#cccccc",
}

// TracesToSVG draws each body's path in arena coordinates, y pointing down
// as on screen, and marks where it ended with a circle of radius r.
func TracesToSVG(w io.Writer, arena physics.Arena, traces map[int][]vec.Vec2, r float64) error {
	ids := make([]int, 0, len(traces))
	for id := range traces {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, arena.Width, arena.Height, arena.Width, arena.Height))

	for i, id := range ids {
		points := traces[id]
		if len(points) == 0 {
			continue
		}
		color := tracePalette[i%len(tracePalette)]

		sb.WriteString(fmt.Sprintf(`<path id="body-%d" fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1" d="M`, id, color))
		for j, p := range points {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")

		last := points[len(points)-1]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, last.X, last.Y, r, color))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// SeriesToSVG plots values against their index as a single line.
func SeriesToSVG(w io.Writer, values []float64, width, height int, strokeColor string) error {
	if len(values) < 2 {
		return fmt.Errorf("need at least 2 values to plot, got %d", len(values))
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	_, err := io.WriteString(w, sb.String())
	return err
}
