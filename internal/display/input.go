package display

import (
	"github.com/AnyUserName/bayer-cli/internal/kernel"
	"github.com/AnyUserName/bayer-cli/internal/viewport"
	"github.com/gdamore/tcell/v2"
)

// Keys is the help text for the key map.
const Keys = "+/- or wheel: zoom  [/] or up/down: darkness  i: invert  1-3: level  r: reset  s: save  q: quit"

// runeActions maps printable keys to actions.
var runeActions = map[rune]viewport.Event{
	'+': {Action: viewport.ActionZoomIn},
	'=': {Action: viewport.ActionZoomIn},
	'-': {Action: viewport.ActionZoomOut},
	'_': {Action: viewport.ActionZoomOut},
	']': {Action: viewport.ActionDarkenMore},
	'[': {Action: viewport.ActionDarkenLess},
	'i': {Action: viewport.ActionToggleInvert},
	'r': {Action: viewport.ActionReset},
	'1': {Action: viewport.ActionSelectLevel, Level: kernel.Level1},
	'2': {Action: viewport.ActionSelectLevel, Level: kernel.Level2},
	'3': {Action: viewport.ActionSelectLevel, Level: kernel.Level3},
	's': {Action: viewport.ActionSave},
	'q': {Action: viewport.ActionQuit},
}

// Poll drains all queued terminal events without blocking.
func (t *Terminal) Poll() []viewport.Event {
	var events []viewport.Event
	for t.screen.HasPendingEvent() {
		tev := t.screen.PollEvent()
		if tev == nil {
			// screen finalized
			return append(events, viewport.Event{Action: viewport.ActionQuit})
		}
		if _, ok := tev.(*tcell.EventResize); ok {
			t.screen.Sync()
		}
		if ev, ok := translate(tev); ok {
			events = append(events, ev)
		}
	}
	return events
}

func translate(tev tcell.Event) (viewport.Event, bool) {
	switch e := tev.(type) {
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return viewport.Event{Action: viewport.ActionQuit}, true
		case tcell.KeyUp:
			return viewport.Event{Action: viewport.ActionDarkenMore}, true
		case tcell.KeyDown:
			return viewport.Event{Action: viewport.ActionDarkenLess}, true
		case tcell.KeyRune:
			ev, ok := runeActions[e.Rune()]
			return ev, ok
		}
	case *tcell.EventMouse:
		btn := e.Buttons()
		switch {
		case btn&tcell.WheelUp != 0:
			return viewport.Event{Action: viewport.ActionWheel, Delta: 1}, true
		case btn&tcell.WheelDown != 0:
			return viewport.Event{Action: viewport.ActionWheel, Delta: -1}, true
		}
	case *tcell.EventResize:
		return viewport.Event{Action: viewport.ActionRefresh}, true
	}
	return viewport.Event{}, false
}
