// Package viewport turns discrete input events into zoom and dither
// parameter changes for the interactive preview.
package viewport

import (
	"fmt"

	"github.com/AnyUserName/bayer-cli/internal/crop"
	"github.com/AnyUserName/bayer-cli/internal/dither"
	"github.com/AnyUserName/bayer-cli/internal/kernel"
)

const (
	// ZoomStep is the zoom change of one key press or wheel tick.
	ZoomStep = 10
	// DarknessStep is the darkness change of one key press.
	DarknessStep = 0.01
)

// Action is a logical input, independent of the key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionZoomIn
	ActionZoomOut
	ActionWheel
	ActionDarkenMore
	ActionDarkenLess
	ActionToggleInvert
	ActionReset
	ActionSelectLevel
	ActionSave
	ActionQuit
	ActionRefresh
)

var actionNames = [...]string{
	"none", "zoom-in", "zoom-out", "wheel", "darken-more", "darken-less",
	"toggle-invert", "reset", "select-level", "save", "quit", "refresh",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Event is one input. Delta carries the signed wheel ticks for
// ActionWheel; Level carries the target for ActionSelectLevel.
type Event struct {
	Action Action
	Delta  int
	Level  kernel.Level
}

// Signal tells the frame loop about events it must act on itself.
type Signal int

const (
	SignalNone Signal = iota
	SignalSave
	SignalQuit
	SignalRefresh
)

// State is the interactive viewer state. It is a plain value so the
// loop can compare frames for changes.
type State struct {
	Zoom int
	dither.Params
}

// Controller owns the viewer state for one source image.
type Controller struct {
	state   State
	theta   float64
	width   int
	height  int
	maxZoom int
}

// New creates a controller for a w x h source starting from params.
func New(w, h int, params dither.Params) *Controller {
	theta := crop.Angle(w, h)
	maxZoom := crop.MaxZoom(theta, w, h)
	return &Controller{
		state:   State{Params: params},
		theta:   theta,
		width:   w,
		height:  h,
		maxZoom: maxZoom - maxZoom%ZoomStep, // stay on whole steps so zooming out returns to 0
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Params returns the current dither parameters.
func (c *Controller) Params() dither.Params { return c.state.Params }

// Crop returns the crop window for the current zoom.
func (c *Controller) Crop() crop.Rect {
	return crop.Compute(c.state.Zoom, c.theta, c.width, c.height)
}

// Handle applies one event and reports whether the loop has to save,
// quit or redraw.
func (c *Controller) Handle(ev Event) Signal {
	s := &c.state
	switch ev.Action {
	case ActionZoomIn:
		c.zoomBy(ZoomStep)
	case ActionZoomOut:
		c.zoomBy(-ZoomStep)
	case ActionWheel:
		c.zoomBy(ev.Delta * ZoomStep)
	case ActionDarkenMore:
		s.Darkness += DarknessStep
	case ActionDarkenLess:
		s.Darkness -= DarknessStep
	case ActionToggleInvert:
		s.Inverted = !s.Inverted
	case ActionReset:
		s.Darkness = 0
		s.Level = kernel.DefaultLevel
		s.Zoom = 0
	case ActionSelectLevel:
		if ev.Level.Valid() {
			s.Level = ev.Level
		}
	case ActionSave:
		return SignalSave
	case ActionQuit:
		return SignalQuit
	case ActionRefresh:
		return SignalRefresh
	}
	return SignalNone
}

// zoomBy moves the zoom by d. A move below zero is ignored; a move past
// the largest usable whole-step zoom stops there.
func (c *Controller) zoomBy(d int) {
	z := c.state.Zoom + d
	if z < 0 {
		return
	}
	c.state.Zoom = min(z, c.maxZoom)
}
