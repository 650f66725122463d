package render

import "testing"

func TestBufferOutOfBoundsIgnored(t *testing.T) {
	b := NewBuffer(4, 2)
	b.Set(-1, 0, 'x', RGBWhite, RGBRed, BlendReplace, 1)
	b.Set(4, 1, 'x', RGBWhite, RGBRed, BlendReplace, 1)
	b.Set(0, 2, 'x', RGBWhite, RGBRed, BlendReplace, 1)

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if b.Touched(x, y) {
				t.Fatalf("Expected no touched cells, found %d,%d", x, y)
			}
		}
	}
}

func TestBufferEmpty(t *testing.T) {
	var nilBuf *Buffer
	if !nilBuf.Empty() {
		t.Error("Expected nil buffer to be empty")
	}
	if !NewBuffer(0, 10).Empty() {
		t.Error("Expected zero-width buffer to be empty")
	}
	if NewBuffer(1, 1).Empty() {
		t.Error("Expected 1x1 buffer to be non-empty")
	}
}

func TestBufferResizeClears(t *testing.T) {
	b := NewBuffer(3, 3)
	b.SetFg(1, 1, 'a', RGBCyan)
	b.Resize(2, 2)

	c, ok := b.Get(1, 1)
	if !ok {
		t.Fatal("Expected cell inside resized buffer")
	}
	if c.Rune != 0 {
		t.Errorf("Expected cleared rune, got %q", c.Rune)
	}
	if _, ok := b.Get(2, 2); ok {
		t.Error("Expected 2,2 outside resized buffer")
	}
}

func TestFillRectClips(t *testing.T) {
	b := NewBuffer(5, 5)
	b.FillRect(3, 3, 10, 10, RGBRed, BlendReplace, 1)

	touched := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if b.Touched(x, y) {
				touched++
			}
		}
	}
	if touched != 4 {
		t.Errorf("Expected 4 touched cells, got %d", touched)
	}
}

func TestLineEndpoints(t *testing.T) {
	var pts [][2]int
	Line(0, 0, 4, 2, func(x, y int) {
		pts = append(pts, [2]int{x, y})
	})

	if len(pts) == 0 {
		t.Fatal("Expected line points")
	}
	if pts[0] != [2]int{0, 0} {
		t.Errorf("Expected start 0,0, got %v", pts[0])
	}
	if pts[len(pts)-1] != [2]int{4, 2} {
		t.Errorf("Expected end 4,2, got %v", pts[len(pts)-1])
	}
	if len(pts) != 5 {
		t.Errorf("Expected 5 points for x-major line, got %d", len(pts))
	}
}

func TestCompositeSkipsUntouched(t *testing.T) {
	dst := NewBuffer(4, 1)
	dst.FillRect(0, 0, 4, 1, RGBGray, BlendReplace, 1)

	src := NewBuffer(2, 1)
	src.SetBg(1, 0, RGBRed, BlendReplace, 1)

	dst.Composite(src, 1, 0, BlendReplace, 1)

	if c, _ := dst.Get(1, 0); c.Bg != RGBGray {
		t.Errorf("Expected untouched source cell to keep %v, got %v", RGBGray, c.Bg)
	}
	if c, _ := dst.Get(2, 0); c.Bg != RGBRed {
		t.Errorf("Expected touched source cell to write %v, got %v", RGBRed, c.Bg)
	}
}

func TestShiftRow(t *testing.T) {
	b := NewBuffer(3, 1)
	b.Text(0, 0, "abc", RGBWhite)
	b.ShiftRow(0, 1)

	want := []rune{0, 'a', 'b'}
	for x, r := range want {
		c, _ := b.Get(x, 0)
		if c.Rune != r {
			t.Errorf("Expected %q at %d, got %q", r, x, c.Rune)
		}
	}
}
