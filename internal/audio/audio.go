// Package audio implements the buzzer that sounds while the sound timer of
// the machine is running.
package audio

// Beeper is a sound output that is switched on and off once per frame.
type Beeper interface {
	SetActive(active bool)
	Close() error
}

// Silent is a beeper without output, used for muted and headless runs.
type Silent struct {
	active bool
}

var _ Beeper = (*Silent)(nil)

// SetActive records the requested state.
func (s *Silent) SetActive(active bool) {
	s.active = active
}

// Active returns the last requested state.
func (s *Silent) Active() bool {
	return s.active
}

// Close implements Beeper.
func (s *Silent) Close() error {
	return nil
}
