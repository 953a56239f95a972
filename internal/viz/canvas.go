package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid with one color per character cell. The last
// color written to a cell wins.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]lipgloss.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// DotsWide and DotsHigh are the canvas size in sub-pixels.
func (c *Canvas) DotsWide() int { return c.Width * 2 }
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y) in color col. Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int, col lipgloss.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	if col != "" {
		c.Colors[row][cx] = col
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// FillCircle lights every dot whose center lies within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col lipgloss.Color) {
	if r < 0.5 {
		r = 0.5
	}
	x0, x1 := int(cx-r), int(cx+r)+1
	y0, y1 := int(cy-r), int(cy+r)+1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, col)
			}
		}
	}
}

// DrawRect outlines the sub-pixel rectangle [0, w) x [0, h).
func (c *Canvas) DrawRect(w, h int, col lipgloss.Color) {
	for x := 0; x < w; x++ {
		c.Set(x, 0, col)
		c.Set(x, h-1, col)
	}
	for y := 0; y < h; y++ {
		c.Set(0, y, col)
		c.Set(w-1, y, col)
	}
}

// String renders without colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each cell with the last color written to it.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			col := c.Colors[i][j]
			if col == "" || r == blank {
				b.WriteRune(r)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
