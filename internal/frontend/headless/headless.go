// Package headless implements a frontend without host input and output
// devices. It runs a fixed number of frames as fast as possible and dumps
// the final framebuffer as text.
package headless

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// DefaultFrames is the number of frames run if no frame count is set.
const DefaultFrames = 60

const (
	pixelOn  = '#'
	pixelOff = '.'
)

// Headless runs a session for a fixed number of frames.
type Headless struct {
	logger *log.Logger
	output io.Writer
	frames int
}

var _ frontend.Frontend = (*Headless)(nil)

// New returns a headless frontend that writes the framebuffer dump to output.
func New(logger *log.Logger, output io.Writer, frames int) *Headless {
	if frames <= 0 {
		frames = DefaultFrames
	}
	return &Headless{
		logger: logger,
		output: output,
		frames: frames,
	}
}

// Run executes the frames and writes the framebuffer dump. A cancelled
// context stops the run early and still writes the dump.
func (h *Headless) Run(ctx context.Context, session frontend.Session) error {
	frame := 0
	for ; frame < h.frames; frame++ {
		if ctx.Err() != nil {
			break
		}
		if err := session.RunFrame(); err != nil {
			return fmt.Errorf("running frame: %w", err)
		}
	}

	h.logger.Debug("Headless run finished", log.Int("frames", frame))

	if err := WriteDump(h.output, session.Display()); err != nil {
		return fmt.Errorf("writing framebuffer dump: %w", err)
	}
	return nil
}

// WriteDump writes one text line per framebuffer row, '#' marking pixels
// that are on.
func WriteDump(w io.Writer, view display.View) error {
	line := make([]byte, view.Width()+1)
	line[view.Width()] = '\n'

	for y := range view.Height() {
		for x := range view.Width() {
			line[x] = pixelOff
			if view.Pixel(x, y) {
				line[x] = pixelOn
			}
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("writing row %d: %w", y, err)
		}
	}
	return nil
}
