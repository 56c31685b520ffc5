package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	frequency  = 440
	amplitude  = 3000
	bufferSize = 50 * time.Millisecond
)

// Buzzer plays a square wave tone through the host audio device while it
// is active.
type Buzzer struct {
	mutex  sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	tone   *Tone
}

var _ Beeper = (*Buzzer)(nil)

// NewBuzzer opens the host audio device and starts the silent player.
func NewBuzzer() (*Buzzer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := NewTone(sampleRate, frequency, amplitude)
	player := ctx.NewPlayer(tone)
	player.Play()

	return &Buzzer{
		ctx:    ctx,
		player: player,
		tone:   tone,
	}, nil
}

// SetActive switches the tone on or off.
func (b *Buzzer) SetActive(active bool) {
	b.tone.SetActive(active)
}

// Close stops the playback.
func (b *Buzzer) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
