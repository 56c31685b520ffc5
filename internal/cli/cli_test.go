package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}

//nolint:funlen // table of flag combinations
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "defaults",
			args: []string{"prog", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "pong.ch8", opts.Input)
				assert.Equal(t, options.FrontendWindow, opts.Frontend)
				assert.Equal(t, options.DefaultCyclesPerFrame, opts.CyclesPerFrame)
				assert.Equal(t, options.DefaultFrameRate, opts.FrameRate)
				assert.Equal(t, options.DefaultScale, opts.Scale)
				assert.Equal(t, uint64(0), opts.Seed)
				assert.False(t, opts.Mute)
				assert.False(t, opts.Disasm)
			},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "pong.ch8", opts.Input)
			},
		},
		{
			name: "emulation flags",
			args: []string{"prog", "-f", "HEADLESS", "-cpf", "10", "-fps", "60", "-scale", "4",
				"-seed", "99", "-mute", "-frames", "5", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, options.FrontendHeadless, opts.Frontend)
				assert.Equal(t, 10, opts.CyclesPerFrame)
				assert.Equal(t, 60, opts.FrameRate)
				assert.Equal(t, 4, opts.Scale)
				assert.Equal(t, uint64(99), opts.Seed)
				assert.True(t, opts.Mute)
				assert.Equal(t, 5, opts.Frames)
			},
		},
		{
			name: "listing flags",
			args: []string{"prog", "-disasm", "-o", "pong.asm", "-nohexcomments", "-z", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Disasm)
				assert.Equal(t, "pong.asm", opts.Output)
				listing := opts.Listing()
				assert.False(t, listing.HexComments)
				assert.True(t, listing.OffsetComments)
				assert.True(t, listing.ZeroBytes)
			},
		},
		{
			name: "logging flags",
			args: []string{"prog", "-debug", "-trace", "-q", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Debug)
				assert.True(t, opts.Trace)
				assert.True(t, opts.Quiet)
			},
		},
		{
			name: "trace implies debug",
			args: []string{"prog", "-trace", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Debug)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			opts, err := ParseFlags()
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"missing ROM", []string{"prog"}, true},
		{"unknown flag", []string{"prog", "-nope", "pong.ch8"}, true},
		{"flag after ROM", []string{"prog", "pong.ch8", "-debug"}, true},
		{"unknown frontend", []string{"prog", "-f", "vga", "pong.ch8"}, false},
		{"zero cycles per frame", []string{"prog", "-cpf", "0", "pong.ch8"}, false},
		{"negative frame rate", []string{"prog", "-fps", "-1", "pong.ch8"}, false},
		{"zero scale", []string{"prog", "-scale", "0", "pong.ch8"}, false},
		{"negative frames", []string{"prog", "-frames", "-3", "pong.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"pong.ch8"}))
	assert.NoError(t, validateArgs([]string{"pong.ch8", "extra"}))
	assert.Error(t, validateArgs([]string{"pong.ch8", "-q"}))
}
