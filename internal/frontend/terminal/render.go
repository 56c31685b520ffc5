package terminal

import (
	"github.com/retroenv/retrochip8/internal/display"
)

const (
	blockFull   = "█"
	blockTop    = "▀"
	blockBottom = "▄"
)

// appendFrame appends the ANSI text of the framebuffer to buf. Every
// terminal line combines two framebuffer rows using half block characters.
func appendFrame(buf []byte, view display.View, paused bool) []byte {
	buf = append(buf, cursorHome...)

	for y := 0; y < view.Height(); y += 2 {
		for x := range view.Width() {
			top := view.Pixel(x, y)
			bottom := y+1 < view.Height() && view.Pixel(x, y+1)

			switch {
			case top && bottom:
				buf = append(buf, blockFull...)
			case top:
				buf = append(buf, blockTop...)
			case bottom:
				buf = append(buf, blockBottom...)
			default:
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\r', '\n')
	}

	if paused {
		buf = append(buf, "PAUSED  P: resume  Esc: quit"...)
	} else {
		buf = append(buf, "P: pause  Backspace: reset  Esc: quit"...)
	}
	// clear the rest of the status line
	buf = append(buf, "\x1b[K"...)
	return buf
}
