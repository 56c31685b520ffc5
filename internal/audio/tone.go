package audio

import (
	"encoding/binary"
	"sync/atomic"
)

// bytesPerSample is the size of one signed 16 bit little endian mono sample.
const bytesPerSample = 2

// Tone is a square wave generator that produces signed 16 bit little
// endian mono samples. While inactive it produces silence. The active state
// can be changed concurrently to reads from the audio driver.
type Tone struct {
	active atomic.Bool

	amplitude int16
	period    int // samples per full wave
	position  int // sample position inside the current wave
}

// NewTone returns an inactive tone with the given frequency and amplitude.
func NewTone(sampleRate, frequency int, amplitude int16) *Tone {
	period := 2
	if frequency > 0 && sampleRate/frequency > period {
		period = sampleRate / frequency
	}
	return &Tone{
		amplitude: amplitude,
		period:    period,
	}
}

// SetActive switches the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active reports whether the tone is switched on.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with samples. It never fails and always fills complete
// samples, a trailing odd byte is left untouched.
func (t *Tone) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerSample
	if !t.active.Load() {
		clear(p[:samples*bytesPerSample])
		t.position = 0
		return samples * bytesPerSample, nil
	}

	half := t.period / 2
	for i := range samples {
		value := t.amplitude
		if t.position >= half {
			value = -t.amplitude
		}
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(value))

		t.position++
		if t.position == t.period {
			t.position = 0
		}
	}
	return samples * bytesPerSample, nil
}
