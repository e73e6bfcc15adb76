// Package display renders two-tone frames in a terminal with tcell and
// translates terminal input into viewport events.
package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/AnyUserName/bayer-cli/internal/palette"
	"github.com/gdamore/tcell/v2"
)

// Terminal draws frames as braille dots, 2x4 per cell, with one status
// row at the bottom of the screen.
type Terminal struct {
	screen tcell.Screen
	pal    palette.Palette
	frame  tcell.Style
	bar    tcell.Style

	status  string
	message string
}

// NewTerminal takes over the controlling terminal. Close must be called
// to restore it.
func NewTerminal(pal palette.Palette) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return newTerminal(s, pal), nil
}

func newTerminal(s tcell.Screen, pal palette.Palette) *Terminal {
	s.EnableMouse()
	s.HideCursor()
	fg := rgb(pal.Foreground)
	bg := rgb(pal.Background)
	s.SetStyle(tcell.StyleDefault.Foreground(fg).Background(bg))
	s.Clear()
	return &Terminal{
		screen: s,
		pal:    pal,
		frame:  tcell.StyleDefault.Foreground(fg).Background(bg),
		bar:    tcell.StyleDefault.Foreground(bg).Background(fg),
	}
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}

// Render draws frame scaled to fit above the status row and presents it.
func (t *Terminal) Render(frame *image.NRGBA) error {
	w, h := t.screen.Size()
	rows := h - 1
	if w < 1 || rows < 1 {
		return nil
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, y, ' ', nil, t.frame)
		}
	}

	cells := plot(frame, t.pal.Foreground, w, rows)
	offX := (w - cells.cols) / 2
	offY := (rows - cells.rows) / 2
	for cy := 0; cy < cells.rows; cy++ {
		for cx := 0; cx < cells.cols; cx++ {
			t.screen.SetContent(offX+cx, offY+cy, cells.at(cx, cy), nil, t.frame)
		}
	}

	t.drawBar()
	t.screen.Show()
	return nil
}

// Status replaces the viewer status shown in the bottom row.
func (t *Terminal) Status(line string) {
	t.status = line
	t.drawBar()
	t.screen.Show()
}

// Notify shows a transient message next to the status.
func (t *Terminal) Notify(msg string) {
	t.message = msg
	t.drawBar()
	t.screen.Show()
}

func (t *Terminal) drawBar() {
	w, h := t.screen.Size()
	if h < 1 {
		return
	}
	text := []rune(" " + t.status)
	if t.message != "" {
		text = append(text, []rune("  |  "+t.message)...)
	}
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		t.screen.SetContent(x, h-1, r, nil, t.bar)
	}
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
