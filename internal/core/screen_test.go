package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := range s.Height() {
		if row := s.Row(y); strings.TrimSpace(row) != "" {
			t.Fatalf("new screen row %d = %q, expected blanks", y, row)
		}
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds writes are dropped and reads return a space.
	for _, p := range []Point{{-1, 0}, {100, 0}, {0, -1}, {0, 100}} {
		s.Set(p.X, p.Y, 'A')
		if got := s.Get(p.X, p.Y); got != ' ' {
			t.Errorf("Get(%d, %d) = %q, expected space", p.X, p.Y, got)
		}
	}
	if s.Row(-1) != strings.Repeat(" ", 10) {
		t.Errorf("out of bounds row = %q, expected spaces", s.Row(-1))
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		row  int
		want string
	}{
		{"plain", func(s *Screen) { s.DrawText(2, 1, "Hello") }, 1, "  Hello             "},
		{"clipped", func(s *Screen) { s.DrawText(18, 0, "Hello") }, 0, "                  He"},
		{"centered", func(s *Screen) { s.DrawTextCentered(2, "Hi") }, 2, "         Hi         "},
		{"multibyte", func(s *Screen) { s.DrawText(0, 3, "é→x") }, 3, "é→x                 "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(20, 5)
			tc.draw(s)
			if got := s.Row(tc.row); got != tc.want {
				t.Errorf("Row(%d) = %q, expected %q", tc.row, got, tc.want)
			}
		})
	}
}

func TestScreenShapes(t *testing.T) {
	s := NewScreen(8, 6)
	s.DrawBoxColor(NewRect(0, 0, 5, 4), ColorCyan)
	s.DrawRectColor(NewRect(1, 1, 3, 2), '#', ColorGreen)
	s.DrawHLine(0, 4, 8, '-')
	s.DrawVLine(7, 0, 4, '|')

	want := "┌───┐  |\n" +
		"│###│  |\n" +
		"│###│  |\n" +
		"└───┘  |\n" +
		"--------\n" +
		"        "
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nexpected\n%s", got, want)
	}
	if c := s.GetCell(0, 0).Color; c != ColorCyan {
		t.Errorf("box color = %v, expected cyan", c)
	}
	if c := s.GetCell(2, 2).Color; c != ColorGreen {
		t.Errorf("fill color = %v, expected green", c)
	}
}

func TestScreenClearResetsColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColor(1, 1, "ab", ColorGreen)

	if cell := s.GetCell(1, 1); cell.Rune != 'a' || cell.Color != ColorGreen {
		t.Errorf("GetCell(1, 1) = %+v, expected 'a' green", cell)
	}
	if s.GetCell(0, 1).Color != ColorDefault {
		t.Error("untouched cell should keep the default color")
	}

	s.Clear()
	if s.GetCell(1, 1) != (Cell{Rune: ' ', Color: ColorDefault}) {
		t.Errorf("Clear should reset colors, got %+v", s.GetCell(1, 1))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after shrink size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("shrink lost content, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("grow lost content, row 0 = %q", s.Row(0))
	}
}

func TestScreenDrawRectClips(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRectColor(NewRect(-2, 1, 4, 5), '#', ColorRed)
	s.DrawRectColor(NewRect(4, 0, 2, 2), '@', ColorRed)

	want := "    \n" +
		"##  \n" +
		"##  "
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestScreenDrawPanel(t *testing.T) {
	s := NewScreen(20, 7)
	s.DrawRectColor(NewRect(0, 0, 20, 7), '#', ColorGray)
	s.DrawPanel("GAME OVER", "R")

	if !strings.Contains(s.String(), "GAME OVER") {
		t.Errorf("panel text missing:\n%s", s.String())
	}
	if s.Get(0, 0) != '#' {
		t.Error("panel should not touch cells outside its box")
	}
}

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightWhite, "15"},
		{ColorOrange, "208"},
		{ColorGray, "245"},
		{Color(200), ""},
	}
	for _, tc := range tests {
		if got := tc.c.ANSI(); got != tc.want {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tc.c, got, tc.want)
		}
	}
}
