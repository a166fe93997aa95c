// Package viz renders rope paths and spring traces for the terminal.
package viz

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Braille patterns pack 2x4 dots per character cell, Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the dot at sub-pixel coordinates; the canvas is (Width*2) x
// (Height*4) sub-pixels. Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws between sub-pixel coordinates with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps a world-space XY window onto a canvas. World Y grows up,
// canvas Y grows down.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Fit builds a viewport around the given points with proportional padding.
func Fit(points []mgl64.Vec3, pad float64) Viewport {
	v := Viewport{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	if len(points) == 0 {
		return v
	}

	v.MinX, v.MaxX = points[0].X(), points[0].X()
	v.MinY, v.MaxY = points[0].Y(), points[0].Y()
	for _, p := range points {
		v.MinX = min(v.MinX, p.X())
		v.MaxX = max(v.MaxX, p.X())
		v.MinY = min(v.MinY, p.Y())
		v.MaxY = max(v.MaxY, p.Y())
	}

	spanX := v.MaxX - v.MinX
	spanY := v.MaxY - v.MinY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	v.MinX -= spanX * pad
	v.MaxX += spanX * pad
	v.MinY -= spanY * pad
	v.MaxY += spanY * pad
	return v
}

func (v Viewport) project(c *Canvas, p mgl64.Vec3) (int, int) {
	w := float64(c.Width * 2)
	h := float64(c.Height * 4)
	x := (p.X() - v.MinX) / (v.MaxX - v.MinX) * (w - 1)
	y := (1 - (p.Y()-v.MinY)/(v.MaxY-v.MinY)) * (h - 1)
	return int(x), int(y)
}

// DrawRope draws the path as a polyline in the viewport's XY projection.
func (v Viewport) DrawRope(c *Canvas, points []mgl64.Vec3) {
	if len(points) == 0 {
		return
	}
	px, py := v.project(c, points[0])
	for _, p := range points[1:] {
		x, y := v.project(c, p)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// DrawMarker lights a small cross at a world position.
func (v Viewport) DrawMarker(c *Canvas, p mgl64.Vec3) {
	x, y := v.project(c, p)
	c.Set(x, y)
	c.Set(x-1, y)
	c.Set(x+1, y)
	c.Set(x, y-1)
	c.Set(x, y+1)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
