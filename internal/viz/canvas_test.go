package viz

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 0) // ignored
	c.Set(0, 99) // ignored

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if c.Grid[0][0] == 0x2800 {
		t.Error("top-left cell should have a dot")
	}
	if c.Grid[1][3] == 0x2800 {
		t.Error("bottom-right cell should have a dot")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.DrawLine(0, 0, 3, 7)
	c.Clear()

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("clear left dots behind")
			}
		}
	}
}

func TestFitViewport(t *testing.T) {
	points := []mgl64.Vec3{{0, 0, 0}, {4, 2, 0}}
	v := Fit(points, 0.1)

	if v.MinX >= 0 || v.MaxX <= 4 {
		t.Errorf("x bounds should pad beyond data: [%f, %f]", v.MinX, v.MaxX)
	}
	if v.MinY >= 0 || v.MaxY <= 2 {
		t.Errorf("y bounds should pad beyond data: [%f, %f]", v.MinY, v.MaxY)
	}
}

func TestFitViewportDegenerate(t *testing.T) {
	v := Fit(nil, 0.1)
	if v.MaxX <= v.MinX || v.MaxY <= v.MinY {
		t.Error("empty fit should still produce a usable window")
	}

	v = Fit([]mgl64.Vec3{{3, 3, 0}}, 0.1)
	if v.MaxX <= v.MinX || v.MaxY <= v.MinY {
		t.Error("single-point fit should still produce a usable window")
	}
}

func TestDrawRopeLightsDots(t *testing.T) {
	c := NewCanvas(20, 10)
	points := []mgl64.Vec3{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}}
	v := Fit(points, 0.1)

	v.DrawRope(c, points)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit < 5 {
		t.Errorf("expected a visible polyline, only %d cells lit", lit)
	}
}

func TestPlotTrace(t *testing.T) {
	if PlotTrace(nil, "empty") != "" {
		t.Error("empty trace should produce no plot")
	}
	out := PlotTrace([]float64{0, 1, 0, -1, 0}, "wave")
	if !strings.Contains(out, "wave") {
		t.Error("caption missing from plot")
	}
}
