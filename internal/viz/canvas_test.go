package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0, "")
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	c.Set(3, 7, lipgloss.Color("#ff0000"))
	if c.Grid[1][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[1][1])
	}
	if c.Colors[1][1] != "#ff0000" {
		t.Errorf("color not recorded: %q", c.Colors[1][1])
	}
	if !c.IsSet(3, 7) || c.IsSet(2, 7) {
		t.Error("IsSet disagrees with Set")
	}

	// out of range is ignored
	c.Set(-1, 0, "")
	c.Set(100, 100, "")
}

func TestFillCircleStaysWithinRadius(t *testing.T) {
	c := NewCanvas(20, 10)
	cx, cy, r := 20.0, 20.0, 6.0
	c.FillCircle(cx, cy, r, "#00ff00")

	lit := 0
	for y := 0; y < c.DotsHigh(); y++ {
		for x := 0; x < c.DotsWide(); x++ {
			if !c.IsSet(x, y) {
				continue
			}
			lit++
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy > r*r {
				t.Errorf("dot (%d, %d) outside circle", x, y)
			}
		}
	}
	if lit < 80 {
		t.Errorf("circle too sparse: %d dots", lit)
	}
}

func TestCanvasClearAndString(t *testing.T) {
	c := NewCanvas(3, 2)
	c.FillCircle(2, 2, 2, "#ffffff")
	c.Clear()

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line != strings.Repeat(string(rune(blank)), 3) {
			t.Errorf("expected blank row, got %q", line)
		}
	}
}
