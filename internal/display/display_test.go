package display

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/AnyUserName/bayer-cli/internal/kernel"
	"github.com/AnyUserName/bayer-cli/internal/palette"
	"github.com/AnyUserName/bayer-cli/internal/viewport"
	"github.com/gdamore/tcell/v2"
)

func simTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	s.SetSize(w, h)
	term := newTerminal(s, palette.Default)
	term.Poll() // drop startup events
	t.Cleanup(func() { term.Close() })
	return term, s
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func cellRune(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	r := cells[y*w+x].Runes
	if len(r) == 0 {
		return ' '
	}
	return r[0]
}

func TestPoll_KeyMap(t *testing.T) {
	term, s := simTerminal(t, 20, 10)
	s.InjectKey(tcell.KeyRune, '+', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, '3', tcell.ModNone)
	s.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone) // unmapped
	s.InjectKey(tcell.KeyRune, 's', tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	got := term.Poll()
	want := []viewport.Event{
		{Action: viewport.ActionZoomIn},
		{Action: viewport.ActionSelectLevel, Level: kernel.Level3},
		{Action: viewport.ActionDarkenLess},
		{Action: viewport.ActionSave},
		{Action: viewport.ActionQuit},
	}
	if len(got) != len(want) {
		t.Fatalf("events: got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if more := term.Poll(); len(more) != 0 {
		t.Errorf("second poll: %+v", more)
	}
}

func TestPoll_Wheel(t *testing.T) {
	term, s := simTerminal(t, 20, 10)
	s.InjectMouse(3, 3, tcell.WheelUp, tcell.ModNone)
	s.InjectMouse(3, 3, tcell.WheelDown, tcell.ModNone)

	got := term.Poll()
	if len(got) != 2 {
		t.Fatalf("events: %+v", got)
	}
	if got[0] != (viewport.Event{Action: viewport.ActionWheel, Delta: 1}) {
		t.Errorf("wheel up: %+v", got[0])
	}
	if got[1] != (viewport.Event{Action: viewport.ActionWheel, Delta: -1}) {
		t.Errorf("wheel down: %+v", got[1])
	}
}

func TestPoll_EmptyDoesNotBlock(t *testing.T) {
	term, _ := simTerminal(t, 20, 10)
	if got := term.Poll(); len(got) != 0 {
		t.Errorf("events: %+v", got)
	}
}

func TestRender_AllForegroundFillsCells(t *testing.T) {
	term, s := simTerminal(t, 10, 6)
	// 20x20 pixels fit 10 cols (20 dots) by 5 rows (20 dots) exactly.
	if err := term.Render(solid(20, 20, palette.Default.Foreground)); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if r := cellRune(s, x, y); r != '⣿' {
				t.Fatalf("cell (%d,%d): %q", x, y, r)
			}
		}
	}
}

func TestRender_AllBackgroundIsBlank(t *testing.T) {
	term, s := simTerminal(t, 10, 6)
	if err := term.Render(solid(20, 20, palette.Default.Background)); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if r := cellRune(s, x, y); r != '\u2800' && r != ' ' {
				t.Fatalf("cell (%d,%d): %q", x, y, r)
			}
		}
	}
}

func TestStatus_BottomRow(t *testing.T) {
	term, s := simTerminal(t, 40, 5)
	term.Status("level 2")
	term.Notify("saved")

	var row strings.Builder
	for x := 0; x < 40; x++ {
		row.WriteRune(cellRune(s, x, 4))
	}
	if got := row.String(); !strings.Contains(got, "level 2") || !strings.Contains(got, "saved") {
		t.Errorf("status row: %q", got)
	}
}

func TestPlot_DotLayout(t *testing.T) {
	fg := palette.Default.Foreground
	img := solid(2, 4, palette.Default.Background)
	img.SetNRGBA(0, 0, fg) // bit 0
	img.SetNRGBA(1, 3, fg) // bit 7

	g := plot(img, fg, 1, 1)
	if g.cols != 1 || g.rows != 1 {
		t.Fatalf("grid: %dx%d", g.cols, g.rows)
	}
	if r := g.at(0, 0); r != '\u2800'|0x01|0x80 {
		t.Errorf("rune: %U", r)
	}
}

func TestPlot_MajorityRule(t *testing.T) {
	fg := palette.Default.Foreground
	// 4x8 frame into one cell: each dot covers 2x2 pixels.
	img := solid(4, 8, palette.Default.Background)
	img.SetNRGBA(0, 0, fg)
	img.SetNRGBA(1, 0, fg) // dot (0,0): 2 of 4 -> set
	img.SetNRGBA(2, 0, fg) // dot (1,0): 1 of 4 -> clear

	g := plot(img, fg, 1, 1)
	if r := g.at(0, 0); r != '\u2800'|0x01 {
		t.Errorf("rune: %U", r)
	}
}

func TestPlot_KeepsAspect(t *testing.T) {
	img := solid(100, 10, palette.Default.Foreground)
	g := plot(img, palette.Default.Foreground, 50, 50)
	// width limits: 100 dots wide -> 50 cols, 10 dots tall -> 3 rows
	if g.cols != 50 || g.rows != 3 {
		t.Errorf("grid: %dx%d", g.cols, g.rows)
	}
}
