// Package terminal implements a frontend that renders to an ANSI terminal
// and reads the keyboard from a raw mode terminal input.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	keyCtrlC     = 0x03
	keyEscape    = 0x1B
	keyBackspace = 0x7F
)

const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

// DefaultHoldFrames is the number of frames a key stays pressed after the
// terminal reported it. Terminals only report key presses, a held key
// repeats its press before the hold runs out.
const DefaultHoldFrames = 6

// Options defines options to control the terminal frontend.
type Options struct {
	Frames     int // frames to run, 0 runs until quit
	HoldFrames int // frames a key stays pressed
}

// Terminal runs a session in the terminal. Escape or Ctrl+C quits, P toggles
// the pause state and Backspace restarts the program.
type Terminal struct {
	logger  *log.Logger
	input   io.Reader
	output  io.Writer
	options Options
}

var _ frontend.Frontend = (*Terminal)(nil)

// New returns a terminal frontend. If input is a terminal it is switched to
// raw mode while the frontend runs.
func New(logger *log.Logger, input io.Reader, output io.Writer, options Options) *Terminal {
	if options.HoldFrames <= 0 {
		options.HoldFrames = DefaultHoldFrames
	}
	return &Terminal{
		logger:  logger,
		input:   input,
		output:  output,
		options: options,
	}
}

// Run drives the session with a frame ticker until it is quit.
func (t *Terminal) Run(ctx context.Context, session frontend.Session) error {
	restore, err := t.makeRaw()
	if err != nil {
		return err
	}
	defer restore()

	if _, err := fmt.Fprint(t.output, hideCursor+clearScreen); err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}
	defer func() { _, _ = fmt.Fprint(t.output, showCursor+"\r\n") }()

	keys := make(chan byte, 64)
	done := make(chan struct{})
	defer close(done)
	go readInput(t.input, keys, done)

	ticker := time.NewTicker(time.Second / time.Duration(session.FrameRate()))
	defer ticker.Stop()

	t.logger.Debug("Terminal frontend started", log.Int("fps", session.FrameRate()))

	hold := newHoldState(t.options.HoldFrames)
	buf := make([]byte, 0, 4096)
	frame := 0

	for t.options.Frames == 0 || frame < t.options.Frames {
		select {
		case <-ctx.Done():
			return nil

		case b, ok := <-keys:
			if !ok {
				keys = nil // input ended, keep running without keyboard
				continue
			}
			quit, err := t.handleKey(session, hold, b, frame)
			if err != nil || quit {
				return err
			}

		case <-ticker.C:
			hold.expire(session.Keypad(), frame)
			if err := session.RunFrame(); err != nil {
				return fmt.Errorf("running frame: %w", err)
			}
			frame++

			buf = appendFrame(buf[:0], session.Display(), session.Paused())
			if _, err := t.output.Write(buf); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
		}
	}
	return nil
}

// handleKey applies a single input byte. It returns whether the frontend
// should quit.
func (t *Terminal) handleKey(session frontend.Session, hold *holdState, b byte, frame int) (bool, error) {
	switch b {
	case keyCtrlC, keyEscape:
		return true, nil

	case keyBackspace:
		if err := session.Reset(); err != nil {
			return false, fmt.Errorf("resetting session: %w", err)
		}
		return false, nil

	case 'p', 'P':
		session.SetPaused(!session.Paused())
		return false, nil
	}

	if key, ok := frontend.KeyForRune(rune(b)); ok {
		hold.press(session.Keypad(), key, frame)
	}
	return false, nil
}

func (t *Terminal) makeRaw() (func(), error) {
	file, ok := t.input.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return func() {}, nil
	}

	fd := int(file.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, state) }, nil
}

// readInput forwards input bytes to the channel until the input ends or
// done is closed. A blocking read on a terminal only returns with the next
// key press, the goroutine ends with the process in that case.
func readInput(input io.Reader, keys chan<- byte, done <-chan struct{}) {
	defer close(keys)

	buf := make([]byte, 16)
	for {
		n, err := input.Read(buf)
		for _, b := range buf[:n] {
			select {
			case keys <- b:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// holdState emulates key releases for input sources that only report presses.
type holdState struct {
	frames int
	until  [keypad.Count]int // frame after which the key is released, -1 if released
}

func newHoldState(frames int) *holdState {
	h := &holdState{frames: frames}
	for i := range h.until {
		h.until[i] = -1
	}
	return h
}

func (h *holdState) press(keys *keypad.Keypad, key keypad.Key, frame int) {
	keys.Press(key)
	h.until[key] = frame + h.frames
}

func (h *holdState) expire(keys *keypad.Keypad, frame int) {
	for i, until := range h.until {
		if until >= 0 && frame >= until {
			keys.Release(keypad.Key(i))
			h.until[i] = -1
		}
	}
}
