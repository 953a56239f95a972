package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/collide/internal/physics"
)

func toColor(c physics.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

// drawBodies draws every body in its own color, then once more in its glow
// color while highlighted.
func (a *App) drawBodies() {
	for _, b := range a.World.Bodies {
		center := rl.NewVector2(float32(b.Position.X), float32(b.Position.Y))
		r := float32(b.Radius())
		rl.DrawCircleV(center, r, toColor(b.Color))
		if b.Highlighted {
			rl.DrawCircleV(center, r, toColor(b.GlowColor))
		}
	}
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 20, 72
	width, height := 240, 40

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(a.MaxHistory))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	drawText(fmt.Sprintf("KE %.1f", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 12, ColText)
}
