package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestSession(t *testing.T, image []byte) *emulator.Session {
	t.Helper()

	logger := log.NewTestLogger(t)
	machine := chip8.New(logger, chip8.Options{Seed: 1})
	assert.NoError(t, machine.LoadProgram(image))
	return emulator.New(logger, machine, &audio.Silent{}, emulator.Options{CyclesPerFrame: 4, FrameRate: 200})
}

func TestHoldState(t *testing.T) {
	keys := keypad.New()
	hold := newHoldState(2)

	hold.press(keys, 0xA, 5)
	hold.expire(keys, 6)
	assert.True(t, keys.IsPressed(0xA))

	// a repeated press extends the hold
	hold.press(keys, 0xA, 6)
	hold.expire(keys, 7)
	assert.True(t, keys.IsPressed(0xA))

	hold.expire(keys, 8)
	assert.False(t, keys.IsPressed(0xA))
}

func TestAppendFrame(t *testing.T) {
	fb := display.New()
	fb.DrawSprite(0, 0, []byte{0xC0, 0x80}) // (0,0) (1,0) (0,1)
	fb.DrawSprite(2, 1, []byte{0x80})       // (2,1)

	output := string(appendFrame(nil, fb, false))
	assert.True(t, strings.HasPrefix(output, cursorHome+blockFull+blockTop+blockBottom+" "))

	lines := strings.Split(output, "\r\n")
	assert.Len(t, lines, display.Height/2+1)
	assert.Contains(t, lines[len(lines)-1], "P: pause")

	paused := string(appendFrame(nil, fb, true))
	assert.Contains(t, paused, "PAUSED")
}

func TestRun_QuitsOnEscape(t *testing.T) {
	session := newTestSession(t, []byte{0x12, 0x00})
	var output bytes.Buffer
	frontend := New(log.NewTestLogger(t), strings.NewReader("\x1b"), &output, Options{})

	err := frontend.Run(context.Background(), session)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(output.String(), hideCursor+clearScreen))
	assert.Contains(t, output.String(), showCursor)
}

func TestRun_FrameLimit(t *testing.T) {
	// V0 += 1, jp $200
	session := newTestSession(t, []byte{0x70, 0x01, 0x12, 0x00})
	var output bytes.Buffer
	frontend := New(log.NewTestLogger(t), strings.NewReader(""), &output, Options{Frames: 3})

	assert.NoError(t, frontend.Run(context.Background(), session))
	assert.Equal(t, uint64(3), session.Frames())
	assert.Contains(t, output.String(), cursorHome)
}

func TestRun_ContextCancel(t *testing.T) {
	session := newTestSession(t, []byte{0x12, 0x00})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frontend := New(log.NewTestLogger(t), strings.NewReader(""), &bytes.Buffer{}, Options{})
	assert.NoError(t, frontend.Run(ctx, session))
}

func TestHandleKey(t *testing.T) {
	session := newTestSession(t, []byte{0x12, 0x00})
	frontend := New(log.NewTestLogger(t), strings.NewReader(""), &bytes.Buffer{}, Options{})
	hold := newHoldState(DefaultHoldFrames)

	quit, err := frontend.handleKey(session, hold, 'w', 0)
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, session.Keypad().IsPressed(0x5))

	_, err = frontend.handleKey(session, hold, 'P', 0)
	assert.NoError(t, err)
	assert.True(t, session.Paused())

	_, err = frontend.handleKey(session, hold, keyBackspace, 0)
	assert.NoError(t, err)
	assert.False(t, session.Keypad().IsPressed(0x5))

	quit, err = frontend.handleKey(session, hold, keyCtrlC, 0)
	assert.NoError(t, err)
	assert.True(t, quit)
}
