package game

import (
	"fmt"
	"math"

	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/render"
)

const (
	viewHeaderRows = 3
	Title          = "DATA CORRUPTION CONTAINMENT"
)

var (
	cleanBg   = render.RGB{R: 0, G: 102, B: 255}
	corruptBg = render.RGB{R: 255, G: 0, B: 102}
)

// View renders a board into a panel buffer and maps panel cells back to
// logical board coordinates
type View struct {
	board *Board
}

// NewView creates a view of b
func NewView(b *Board) *View {
	return &View{board: b}
}

// Board returns the viewed board
func (v *View) Board() *Board {
	return v.board
}

// area returns the board rectangle inside a w x h panel
func (v *View) area(w, h int) (x0, y0, bw, bh int) {
	return 0, viewHeaderRows, w, h - viewHeaderRows
}

// CellToBoard maps a panel cell to logical board px; ok is false outside the board
func (v *View) CellToBoard(col, row, w, h int) (x, y float64, ok bool) {
	x0, y0, bw, bh := v.area(w, h)
	if bw <= 0 || bh <= 0 || col < x0 || row < y0 || col >= x0+bw || row >= y0+bh {
		return 0, 0, false
	}
	x = (float64(col-x0) + 0.5) * constants.GameBoardSize / float64(bw)
	y = (float64(row-y0) + 0.5) * constants.GameBoardSize / float64(bh)
	return x, y, true
}

// boardToCell maps logical px to panel cells
func (v *View) boardToCell(x, y float64, w, h int) (float64, float64) {
	x0, y0, bw, bh := v.area(w, h)
	return float64(x0) + x*float64(bw)/constants.GameBoardSize,
		float64(y0) + y*float64(bh)/constants.GameBoardSize
}

// Draw paints the header, links, nodes, hover ring and game-over box
func (v *View) Draw(buf *render.Buffer) {
	w, h := buf.Width(), buf.Height()
	if w == 0 || h <= viewHeaderRows {
		return
	}
	buf.FillRect(0, 0, w, h, render.RGBBlack, render.BlendAlpha, 0.95)

	nodes := v.board.Nodes()
	score := v.board.Score()
	level := v.board.Level()
	selected := v.board.Selected()

	buf.Text(max(0, (w-len(Title))/2), 0, Title, render.RGBCyan)
	buf.Text(1, 1, fmt.Sprintf("SCORE: %d", score), render.RGBCyan)
	levelColor := render.RGBMagenta
	if level > constants.GameDangerLevel {
		levelColor = render.RGB{R: 255, G: 0, B: 0}
	}
	levelText := fmt.Sprintf("CORRUPTION: %.1f%%", level)
	buf.Text(max(0, w-len(levelText)-1), 1, levelText, levelColor)

	for _, n := range nodes {
		fx, fy := v.boardToCell(n.X, n.Y, w, h)
		for _, j := range n.Links {
			if j < 0 || j >= len(nodes) {
				continue
			}
			t := nodes[j]
			tx, ty := v.boardToCell(t.X, t.Y, w, h)
			color := render.RGBCyan
			if n.Corrupted || t.Corrupted {
				color = render.RGBMagenta
			}
			glyph := '·'
			if n.Corrupted && t.Corrupted {
				glyph = '█'
			}
			render.Line(int(fx), int(fy), int(tx), int(ty), func(x, y int) {
				buf.Set(x, y, glyph, color, color, render.BlendAlpha, 0.5)
			})
		}
	}

	if selected >= 0 && selected < len(nodes) {
		n := nodes[selected]
		cx, cy := v.boardToCell(n.X, n.Y, w, h)
		rx := constants.GameHoverRadius * float64(w) / constants.GameBoardSize
		ry := constants.GameHoverRadius * float64(h-viewHeaderRows) / constants.GameBoardSize
		for a := 0.0; a < 2*math.Pi; a += 0.15 {
			buf.SetFg(int(cx+math.Cos(a)*rx), int(cy+math.Sin(a)*ry), '∙', render.RGBYellow)
		}
	}

	for _, n := range nodes {
		cx, cy := v.boardToCell(n.X, n.Y, w, h)
		bg, fg := cleanBg, render.RGBCyan
		if n.Corrupted {
			bg, fg = corruptBg, render.RGBMagenta
		}
		if n.ID == selected {
			bg = render.Scale(bg, 1.3)
		}
		x := int(cx) - len(n.Value)/2
		y := int(cy)
		buf.Set(x-1, y, '[', fg, bg, render.BlendReplace, 1)
		buf.TextBg(x, y, n.Value, render.RGBWhite, bg)
		buf.Set(x+len(n.Value), y, ']', fg, bg, render.BlendReplace, 1)
	}

	if v.board.Over() {
		lines := []string{"SYSTEM CORRUPTED", fmt.Sprintf("Final Score: %d", score)}
		bw := 24
		bx, by := (w-bw)/2, h/2-2
		buf.FillRect(bx, by, bw, 5, render.RGB{R: 255, G: 0, B: 0}, render.BlendAlpha, 0.9)
		for i, l := range lines {
			buf.Text(bx+(bw-len(l))/2, by+1+i*2, l, render.RGBWhite)
		}
	}
}
