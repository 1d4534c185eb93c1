package viz

import (
	"strings"
	"testing"

	"github.com/omni-webdev/svt/internal/field"
	"github.com/omni-webdev/svt/internal/orbit"
)

func litCells(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				n++
			}
		}
	}
	return n
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell (0,0) = %#x, want 0x2801", c.Grid[0][0])
	}

	c.Set(3, 7)
	if c.Grid[1][1] != 0x2800|0x80 {
		t.Errorf("cell (1,1) = %#x, want %#x", c.Grid[1][1], 0x2800|0x80)
	}

	// out of bounds is a no-op
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)
	if litCells(c) != 2 {
		t.Errorf("lit cells = %d, want 2", litCells(c))
	}

	c.Clear()
	if litCells(c) != 0 {
		t.Errorf("clear left %d lit cells", litCells(c))
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 4 {
			t.Errorf("line width = %d runes, want 4", len([]rune(line)))
		}
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)
	if litCells(c) == 0 {
		t.Error("diagonal line lit nothing")
	}

	c.Clear()
	c.DrawLine(0, 0, 19, 0)
	// a horizontal line along sub-pixel row 0 stays in canvas row 0
	for row := 1; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] != 0x2800 {
				t.Fatalf("horizontal line leaked into row %d", row)
			}
		}
	}
	for col := 0; col < c.Width; col++ {
		if c.Grid[0][col] == 0x2800 {
			t.Errorf("column %d missing from horizontal line", col)
		}
	}
}

func TestDrawEnergy(t *testing.T) {
	grid, err := field.Square(-5, 5, 41)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	ev, err := field.NewEvaluator(grid, field.DefaultEpsilon)
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	vec, err := ev.EvalAll([]field.Source{
		{Pos: []float64{0, 0}, Kind: field.Rotational, Strength: 10},
	}, 0)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	c := NewCanvas(40, 20)
	c.DrawEnergy(field.EnergyDensity(vec))
	if litCells(c) == 0 {
		t.Error("energy field lit nothing")
	}
}

func TestDrawEnergyZeroField(t *testing.T) {
	grid, err := field.Square(-1, 1, 9)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	energy := &field.ScalarField{Grid: grid, V: make([]float64, grid.Len())}

	c := NewCanvas(20, 10)
	c.DrawEnergy(energy)
	if litCells(c) != 0 {
		t.Errorf("zero field lit %d cells", litCells(c))
	}
}

func TestDrawTrajectory(t *testing.T) {
	points := []orbit.Vec2{
		{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0},
	}
	c := NewCanvas(30, 15)
	c.DrawTrajectory(points)
	if litCells(c) == 0 {
		t.Error("trajectory lit nothing")
	}

	c.Clear()
	c.DrawTrajectory(points[:1])
	if litCells(c) != 0 {
		t.Errorf("single point drew %d cells", litCells(c))
	}
}
