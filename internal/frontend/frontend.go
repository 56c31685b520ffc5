// Package frontend defines the contract between an emulation session and
// the host frontends that drive, render and feed it.
package frontend

import (
	"context"
	"image/color"
	"unicode"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// Session is a running program as seen by a frontend.
type Session interface {
	// RunFrame executes the cycles of one frame.
	RunFrame() error
	// Keypad returns the input latch to write host key state to.
	Keypad() *keypad.Keypad
	// Display returns the framebuffer to render.
	Display() display.View
	// FrameRate returns the number of frames per second.
	FrameRate() int
	// Paused reports whether frames are currently skipped.
	Paused() bool
	// SetPaused pauses or resumes the execution.
	SetPaused(paused bool)
	// Reset restarts the loaded program.
	Reset() error
}

// Frontend drives a session until the program is stopped, the context is
// cancelled or an execution error occurs.
type Frontend interface {
	Run(ctx context.Context, session Session) error
}

// Layout lists the host keys of the default layout, row by row in the
// order of the hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var Layout = [keypad.Count]rune{
	'1', '2', '3', '4',
	'q', 'w', 'e', 'r',
	'a', 's', 'd', 'f',
	'z', 'x', 'c', 'v',
}

// LayoutKeys contains the keypad key of every Layout entry.
var LayoutKeys = [keypad.Count]keypad.Key{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// KeyForRune returns the keypad key that a host character maps to.
func KeyForRune(r rune) (keypad.Key, bool) {
	r = unicode.ToLower(r)
	for i, layout := range Layout {
		if layout == r {
			return LayoutKeys[i], true
		}
	}
	return 0, false
}

// PixelsRGBA converts the framebuffer of the view to 8 bit RGBA pixels in
// row major order, reusing dst if it is large enough.
func PixelsRGBA(view display.View, dst []byte, on, off color.RGBA) []byte {
	size := view.Width() * view.Height() * 4
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	for i, cell := range view.Pixels() {
		c := off
		if cell == display.PixelOn {
			c = on
		}
		offset := i * 4
		dst[offset] = c.R
		dst[offset+1] = c.G
		dst[offset+2] = c.B
		dst[offset+3] = c.A
	}
	return dst
}
