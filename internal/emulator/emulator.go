// Package emulator binds a machine to the frame based timing and the
// buzzer that the frontends drive.
package emulator

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// Options defines the frame timing of a session.
type Options struct {
	CyclesPerFrame int // instruction cycles executed by every frame
	FrameRate      int // frames per second
}

// Session runs a machine frame by frame.
type Session struct {
	logger  *log.Logger
	machine *chip8.Machine
	beeper  audio.Beeper
	options Options

	paused bool
	frames uint64
}

var _ frontend.Session = (*Session)(nil)

// New returns a session for the machine with a loaded program.
func New(logger *log.Logger, machine *chip8.Machine, beeper audio.Beeper, options Options) *Session {
	return &Session{
		logger:  logger,
		machine: machine,
		beeper:  beeper,
		options: options,
	}
}

// RunFrame executes the cycles of one frame and updates the buzzer from the
// sound timer. A paused session executes nothing and keeps silent.
func (s *Session) RunFrame() error {
	if s.paused {
		s.beeper.SetActive(false)
		return nil
	}

	for range s.options.CyclesPerFrame {
		if err := s.machine.Cycle(); err != nil {
			s.beeper.SetActive(false)
			return fmt.Errorf("running frame %d: %w", s.frames, err)
		}
	}

	s.beeper.SetActive(s.machine.SoundActive())
	s.frames++
	return nil
}

// Keypad returns the input latch of the machine.
func (s *Session) Keypad() *keypad.Keypad {
	return s.machine.Keypad()
}

// Display returns the framebuffer of the machine.
func (s *Session) Display() display.View {
	return s.machine.Display()
}

// Framebuffer returns the framebuffer including its change tracking.
func (s *Session) Framebuffer() *display.Framebuffer {
	return s.machine.Display()
}

// FrameRate returns the number of frames per second.
func (s *Session) FrameRate() int {
	return s.options.FrameRate
}

// Frames returns the number of completed frames.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// SetPaused pauses or resumes the session.
func (s *Session) SetPaused(paused bool) {
	if s.paused == paused {
		return
	}
	s.paused = paused
	if paused {
		s.logger.Debug("Session paused", log.Uint64("frame", s.frames))
	} else {
		s.logger.Debug("Session resumed", log.Uint64("frame", s.frames))
	}
}

// Reset restarts the loaded program.
func (s *Session) Reset() error {
	if err := s.machine.Reset(); err != nil {
		return fmt.Errorf("resetting machine: %w", err)
	}
	s.frames = 0
	s.beeper.SetActive(false)
	s.logger.Info("Program restarted")
	return nil
}

// Close releases the buzzer.
func (s *Session) Close() error {
	if err := s.beeper.Close(); err != nil {
		return fmt.Errorf("closing beeper: %w", err)
	}
	return nil
}
