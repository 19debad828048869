package plot

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Marker flags a point of interest drawn on top of a plot.
type Marker struct {
	X, Y  float64
	Glyph string
}

// Shade ramp for surfaces, darkest to brightest.
var shadeRunes = []rune(" .:-=+*#%@")

// Color ramp applied to the shade runes, cold to hot.
var shadeStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3b4261")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#73daca")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9e64")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#ff007c")),
}

var markerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9e64"))

// ──────────────────────────── Braille canvas ────────────────────────────

// Each braille character packs a 2x4 grid of dots, so a canvas of w-by-h
// characters addresses 2w-by-4h points.
type canvas struct {
	w, h  int
	cells []rune
}

// Dot bit for sub-position (dx in 0..1, dy in 0..3) within a braille cell.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, cells: make([]rune, w*h)}
}

func (c *canvas) set(px, py int) {
	if px < 0 || py < 0 || px >= c.w*2 || py >= c.h*4 {
		return
	}
	idx := (py/4)*c.w + px/2
	c.cells[idx] |= brailleBits[py%4][px%2]
}

func (c *canvas) row(y int) string {
	var sb strings.Builder
	for x := 0; x < c.w; x++ {
		bits := c.cells[y*c.w+x]
		if bits == 0 {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(0x2800 + bits)
		}
	}
	return sb.String()
}

// ──────────────────────────── Curve rendering ────────────────────────────

// RenderCurve draws the sampled curve on a braille grid of width-by-height
// characters. Markers are drawn as whole characters after the curve so they
// stay visible. NaN samples break the line.
func RenderCurve(cv Curve, width, height int, markers []Marker) string {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	c := newCanvas(width, height)
	pxW := float64(width*2 - 1)
	pxH := float64(height*4 - 1)

	xLo, xHi := cv.Xs[0], cv.Xs[len(cv.Xs)-1]
	toPx := func(x float64) float64 { return (x - xLo) / (xHi - xLo) * pxW }
	toPy := func(y float64) float64 { return (cv.YMax - y) / (cv.YMax - cv.YMin) * pxH }

	prevOK := false
	var prevX, prevY float64
	for i := range cv.Xs {
		y := cv.Ys[i]
		if math.IsNaN(y) {
			prevOK = false
			continue
		}
		px := toPx(cv.Xs[i])
		py := toPy(y)
		if prevOK {
			drawSegment(c, prevX, prevY, px, py)
		} else {
			c.set(int(math.Round(px)), int(math.Round(py)))
		}
		prevX, prevY = px, py
		prevOK = true
	}

	// Axis dots where zero crosses the frame.
	if cv.YMin < 0 && cv.YMax > 0 {
		py := int(math.Round(toPy(0)))
		for px := 0; px < width*2; px += 4 {
			c.set(px, py)
		}
	}
	if xLo < 0 && xHi > 0 {
		px := int(math.Round(toPx(0)))
		for py := 0; py < height*4; py += 4 {
			c.set(px, py)
		}
	}

	lines := make([][]rune, height)
	for y := 0; y < height; y++ {
		lines[y] = []rune(c.row(y))
	}
	for _, m := range markers {
		if m.X < xLo || m.X > xHi || m.Y < cv.YMin || m.Y > cv.YMax {
			continue
		}
		col := int(math.Round(toPx(m.X))) / 2
		row := int(math.Round(toPy(m.Y))) / 4
		if row >= 0 && row < height && col >= 0 && col < width {
			g := m.Glyph
			if g == "" {
				g = "●"
			}
			lines[row][col] = []rune(g)[0]
		}
	}

	var sb strings.Builder
	for y, line := range lines {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// drawSegment rasterizes a line between two pixel positions.
func drawSegment(c *canvas, x0, y0, x1, y1 float64) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		c.set(int(math.Round(x0+(x1-x0)*t)), int(math.Round(y0+(y1-y0)*t)))
	}
}

// ──────────────────────────── Surface rendering ────────────────────────────

// RenderSurface draws the sampled grid as a top-down height map: each
// character cell shows the shade of the nearest sample, colored by height.
// Undefined samples render as blanks. Rows run top (YMax) to bottom (YMin)
// so the orientation matches the curve view.
func RenderSurface(s Surface, width, height int, markers []Marker) string {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	n := len(s.Xs)
	span := s.ZMax - s.ZMin

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		j := (height - 1 - row) * (n - 1) / (height - 1)
		for col := 0; col < width; col++ {
			i := col * (n - 1) / (width - 1)
			z := s.Zs[j][i]
			if math.IsNaN(z) {
				sb.WriteByte(' ')
				continue
			}
			idx := int((z - s.ZMin) / span * float64(len(shadeRunes)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(shadeRunes) {
				idx = len(shadeRunes) - 1
			}
			sb.WriteString(shadeStyles[idx].Render(string(shadeRunes[idx])))
		}
		lines[row] = sb.String()
	}

	overlayMarkers(lines, s, width, height, markers)
	return strings.Join(lines, "\n")
}

// RenderContour draws band boundaries of the sampled grid: a cell is marked
// where its level band differs from the cell to its left or above it.
func RenderContour(s Surface, width, height, levels int, markers []Marker) string {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	if levels < 2 {
		levels = 10
	}
	n := len(s.Xs)
	span := s.ZMax - s.ZMin

	band := func(row, col int) int {
		j := (height - 1 - row) * (n - 1) / (height - 1)
		i := col * (n - 1) / (width - 1)
		z := s.Zs[j][i]
		if math.IsNaN(z) {
			return -1
		}
		b := int((z - s.ZMin) / span * float64(levels))
		if b >= levels {
			b = levels - 1
		}
		return b
	}

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		for col := 0; col < width; col++ {
			b := band(row, col)
			if b < 0 {
				sb.WriteByte(' ')
				continue
			}
			edge := (col > 0 && band(row, col-1) != b) ||
				(row > 0 && band(row-1, col) != b)
			if edge {
				style := shadeStyles[b*(len(shadeStyles)-1)/(levels-1)]
				sb.WriteString(style.Render("∙"))
			} else {
				sb.WriteByte(' ')
			}
		}
		lines[row] = sb.String()
	}

	overlayMarkers(lines, s, width, height, markers)
	return strings.Join(lines, "\n")
}

// overlayMarkers stamps marker glyphs onto rendered surface lines. Lines may
// carry ANSI sequences, so the whole row is rebuilt around the marker column.
func overlayMarkers(lines []string, s Surface, width, height int, markers []Marker) {
	xLo, xHi := s.Xs[0], s.Xs[len(s.Xs)-1]
	yLo, yHi := s.Ys[0], s.Ys[len(s.Ys)-1]
	for _, m := range markers {
		if m.X < xLo || m.X > xHi || m.Y < yLo || m.Y > yHi {
			continue
		}
		col := int(math.Round((m.X - xLo) / (xHi - xLo) * float64(width-1)))
		row := height - 1 - int(math.Round((m.Y-yLo)/(yHi-yLo)*float64(height-1)))
		if row < 0 || row >= height {
			continue
		}
		g := m.Glyph
		if g == "" {
			g = "●"
		}
		lines[row] = spliceAt(lines[row], markerStyle.Render(g), col)
	}
}

// spliceAt replaces one visible column of line with the replacement string,
// skipping over ANSI escape sequences when counting columns.
func spliceAt(line, repl string, col int) string {
	runes := []rune(line)
	var sb strings.Builder
	visible := 0
	inEsc := false
	done := false
	for _, r := range runes {
		if r == '\x1b' {
			inEsc = true
			sb.WriteRune(r)
			continue
		}
		if inEsc {
			sb.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		if visible == col && !done {
			sb.WriteString(repl)
			done = true
		} else {
			sb.WriteRune(r)
		}
		visible++
	}
	return sb.String()
}
