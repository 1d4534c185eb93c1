package viz

import (
	"strings"

	"github.com/omni-webdev/svt/internal/field"
	"github.com/omni-webdev/svt/internal/orbit"
)

// Braille Patterns: 2x4 dots per character cell
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

// Set turns on the sub-pixel at (x, y). The canvas resolution in
// sub-pixels is (Width*2) x (Height*4).
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

// Clear resets the canvas.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
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

// bayer4 is a 4x4 ordered-dither threshold matrix, values in [0,16).
var bayer4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// DrawEnergy shades the log-compressed energy field onto the canvas
// with ordered dithering: brighter regions light more sub-pixels. Only
// the first two grid axes are rendered; a 3D field shows its mid-plane.
func (c *Canvas) DrawEnergy(energy *field.ScalarField) {
	logE := field.LogCompress(energy)
	g := energy.Grid
	shape := g.Shape()
	nx, ny := shape[0], shape[1]

	// Mid-plane offset for 3D grids.
	stride := 1
	offset := 0
	if len(shape) == 3 {
		stride = shape[2]
		offset = shape[2] / 2
	}

	max := 0.0
	for _, v := range logE.V {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return
	}

	pw, ph := c.Width*2, c.Height*4
	for py := 0; py < ph; py++ {
		for px := 0; px < pw; px++ {
			// Map sub-pixel to nearest grid sample. The y axis is
			// flipped so the grid's +y points up on screen.
			i := px * nx / pw
			j := (ph - 1 - py) * ny / ph
			v := logE.V[(i*ny+j)*stride+offset]
			level := int(v / max * 16)
			if level > bayer4[py%4][px%4] {
				c.Set(px, py)
			}
		}
	}
}

// DrawTrajectory maps the positions into the canvas bounds and traces
// them as connected line segments.
func (c *Canvas) DrawTrajectory(points []orbit.Vec2) {
	if len(points) < 2 {
		return
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	pw, ph := c.Width*2, c.Height*4
	toPixel := func(p orbit.Vec2) (int, int) {
		x := int((p.X - minX) / rangeX * float64(pw-1))
		y := ph - 1 - int((p.Y-minY)/rangeY*float64(ph-1))
		return x, y
	}

	px, py := toPixel(points[0])
	for _, p := range points[1:] {
		nx, ny := toPixel(p)
		c.DrawLine(px, py, nx, ny)
		px, py = nx, ny
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
