package render

// Cell is one terminal character cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

var emptyCell = Cell{Rune: 0, Fg: RGBWhite, Bg: RGBBlack}

// Buffer is a cell grid with touched tracking
// A touched cell has had its background written since the last Clear
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// Width returns the column count
func (b *Buffer) Width() int { return b.width }

// Height returns the row count
func (b *Buffer) Height() int { return b.height }

// Empty reports a zero-sized buffer; drawers skip their tick on it
func (b *Buffer) Empty() bool {
	return b == nil || b.width == 0 || b.height == 0
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x,y
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Touched reports whether the cell background was written
func (b *Buffer) Touched(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.touched[y*b.width+x]
}

// Set composites a cell with the given blend mode
// A zero rune keeps the existing glyph
func (b *Buffer) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	if r != 0 {
		dst.Rune = r
	}
	if mode.bg() {
		dst.Bg = mode.apply(dst.Bg, bg, alpha)
		b.touched[idx] = true
	}
	if mode.fg() {
		dst.Fg = mode.apply(dst.Fg, fg, alpha)
	}
}

// SetFg writes a glyph and foreground, preserving background
func (b *Buffer) SetFg(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Rune = r
	b.cells[idx].Fg = fg
}

// SetBg blends a background color without changing the glyph
func (b *Buffer) SetBg(x, y int, bg RGB, mode BlendMode, alpha float64) {
	b.Set(x, y, 0, RGB{}, bg, mode&BlendMode(0x0F)|BlendMode(flagBg), alpha)
}

// FillRect blends bg over a rectangle, clipped to the buffer
func (b *Buffer) FillRect(x, y, w, h int, bg RGB, mode BlendMode, alpha float64) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, b.width), min(y+h, b.height)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			b.SetBg(col, row, bg, mode, alpha)
		}
	}
}

// Fade blends every cell toward target, used for motion trails
// Glyphs whose foreground falls below the threshold are dropped
func (b *Buffer) Fade(target RGB, alpha float64) {
	for i := range b.cells {
		c := &b.cells[i]
		c.Bg = Blend(c.Bg, target, alpha)
		c.Fg = Blend(c.Fg, target, alpha)
		b.touched[i] = true
		if c.Rune != 0 && luma(c.Fg) <= luma(target)+8 {
			c.Rune = 0
		}
	}
}

func luma(c RGB) int {
	return (int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000
}

// Text writes s starting at x,y and returns the number of cells written
func (b *Buffer) Text(x, y int, s string, fg RGB) int {
	n := 0
	for _, r := range s {
		b.SetFg(x+n, y, r, fg)
		n++
	}
	return n
}

// TextBg writes s with a solid background
func (b *Buffer) TextBg(x, y int, s string, fg, bg RGB) int {
	n := 0
	for _, r := range s {
		b.Set(x+n, y, r, fg, bg, BlendReplace, 1)
		n++
	}
	return n
}

// Line walks a Bresenham line and calls plot for each cell
func Line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Composite draws src onto b at offset ox,oy
// Only touched or glyph-bearing cells of src contribute
func (b *Buffer) Composite(src *Buffer, ox, oy int, mode BlendMode, alpha float64) {
	if src.Empty() || alpha <= 0 {
		return
	}
	for y := 0; y < src.height; y++ {
		dy := y + oy
		if dy < 0 || dy >= b.height {
			continue
		}
		for x := 0; x < src.width; x++ {
			dx := x + ox
			if dx < 0 || dx >= b.width {
				continue
			}
			si := y*src.width + x
			s := src.cells[si]
			di := dy*b.width + dx
			d := &b.cells[di]

			if src.touched[si] {
				d.Bg = mode.apply(d.Bg, s.Bg, alpha)
				b.touched[di] = true
			}
			if s.Rune != 0 && s.Rune != ' ' {
				d.Rune = s.Rune
				d.Fg = mode.apply(d.Bg, s.Fg, alpha)
			}
		}
	}
}

// Each calls fn for every cell with a pointer for in-place filters
func (b *Buffer) Each(fn func(x, y int, c *Cell)) {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			fn(x, y, &b.cells[row+x])
		}
	}
}

// ShiftRow moves one row horizontally by dx cells, filling with empty cells
func (b *Buffer) ShiftRow(y, dx int) {
	if dx == 0 || y < 0 || y >= b.height {
		return
	}
	row := b.cells[y*b.width : (y+1)*b.width]
	tmp := make([]Cell, b.width)
	for x := range tmp {
		tmp[x] = emptyCell
		sx := x - dx
		if sx >= 0 && sx < b.width {
			tmp[x] = row[sx]
		}
	}
	copy(row, tmp)
}
