package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/AnyUserName/bayer-cli/internal/dither"
	"github.com/AnyUserName/bayer-cli/internal/encoder"
	"github.com/AnyUserName/bayer-cli/internal/hasher"
	"github.com/AnyUserName/bayer-cli/internal/palette"
	"github.com/AnyUserName/bayer-cli/internal/viewport"
)

// DefaultFrameInterval paces the interactive loop at about 60 frames
// per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Display presents two-tone frames.
type Display interface {
	// Render draws the frame and presents it.
	Render(frame *image.NRGBA) error
	// Status replaces the one-line viewer status.
	Status(line string)
}

// Input yields pending input events without blocking.
type Input interface {
	Poll() []viewport.Event
}

// LoopConfig holds the parameters of an interactive session.
type LoopConfig struct {
	Output        string // exact save path
	Params        dither.Params
	Palette       palette.Palette
	Quality       int
	FrameInterval time.Duration
	Logf          func(format string, args ...any)
}

// Loop is the interactive preview: each iteration drains input, updates
// the viewport and re-renders the zoomed, dithered frame.
type Loop struct {
	cfg      LoopConfig
	src      *image.NRGBA
	ctrl     *viewport.Controller
	display  Display
	input    Input
	registry *encoder.Registry

	frame      *image.NRGBA
	frameState viewport.State
	frameHash  uint64
	drawnHash  uint64
	drawn      bool
	saves      int
}

// NewLoop prepares a session over src. The source is not copied and
// must not be modified while the loop runs.
func NewLoop(src *image.NRGBA, display Display, input Input, cfg LoopConfig) *Loop {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Logf == nil {
		cfg.Logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[bayer] "+format+"\n", args...)
		}
	}
	b := src.Bounds()
	return &Loop{
		cfg:      cfg,
		src:      src,
		ctrl:     viewport.New(b.Dx(), b.Dy(), cfg.Params),
		display:  display,
		input:    input,
		registry: encoder.NewRegistry(),
	}
}

// State returns the current viewer state.
func (l *Loop) State() viewport.State { return l.ctrl.State() }

// Saves returns the number of frames written so far.
func (l *Loop) Saves() int { return l.saves }

// Run iterates until a quit event or ctx is done. Cancellation is only
// observed between iterations.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		running, err := l.Step()
		if err != nil || !running {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Step runs one iteration and reports whether the loop keeps running.
func (l *Loop) Step() (bool, error) {
	var save, quit, refresh bool
	for _, ev := range l.input.Poll() {
		switch l.ctrl.Handle(ev) {
		case viewport.SignalSave:
			save = true
		case viewport.SignalQuit:
			quit = true
		case viewport.SignalRefresh:
			refresh = true
		}
		if quit {
			break
		}
	}

	if quit {
		// a save requested in the same batch as quit is still honored
		if save {
			l.save(l.current())
		}
		return false, nil
	}

	frame := l.current()
	if refresh || !l.drawn || l.frameHash != l.drawnHash {
		if err := l.display.Render(frame); err != nil {
			return false, fmt.Errorf("render: %w", err)
		}
		l.drawnHash = l.frameHash
		l.drawn = true
	}
	if save {
		l.save(frame)
	}
	return true, nil
}

// current returns the frame for the current state, recomputing it only
// when the state changed since the last call.
func (l *Loop) current() *image.NRGBA {
	state := l.ctrl.State()
	if l.frame != nil && state == l.frameState {
		return l.frame
	}
	l.frame = RenderFrame(l.src, l.ctrl.Crop(), state.Params, l.cfg.Palette)
	l.frameState = state
	l.frameHash = hasher.Frame(l.frame)
	l.display.Status(describe(state, l.ctrl))
	return l.frame
}

func (l *Loop) save(frame *image.NRGBA) {
	n, err := l.registry.Save(l.cfg.Output, frame, l.cfg.Quality)
	if err != nil {
		l.cfg.Logf("save failed: %v", err)
		return
	}
	l.saves++
	l.cfg.Logf("Saved dithered image to: %s (%d bytes, frame %s)",
		l.cfg.Output, n, hasher.Hex(l.frameHash, 8))
}

func describe(s viewport.State, c *viewport.Controller) string {
	r := c.Crop()
	inv := ""
	if s.Inverted {
		inv = "  inverted"
	}
	return fmt.Sprintf("level %s  darkness %+.2f  zoom %d  crop %dx%d%s",
		s.Level, s.Darkness, s.Zoom, r.W, r.H, inv)
}
