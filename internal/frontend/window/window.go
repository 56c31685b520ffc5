// Package window implements a desktop window frontend based on ebiten.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

var (
	pixelOn  = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	pixelOff = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	overlay  = color.RGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}
)

// hostKeys contains the ebiten key of every frontend.Layout entry.
var hostKeys = [keypad.Count]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

// Options defines options to control the window.
type Options struct {
	Scale int    // host pixels per framebuffer pixel
	Title string // window title
}

// Window runs a session in a desktop window. Escape quits, P toggles the
// pause state and Backspace restarts the program.
type Window struct {
	logger  *log.Logger
	options Options
}

var _ frontend.Frontend = (*Window)(nil)

// New returns a window frontend.
func New(logger *log.Logger, options Options) *Window {
	return &Window{
		logger:  logger,
		options: options,
	}
}

// Run opens the window and drives the session until it is closed.
func (w *Window) Run(ctx context.Context, session frontend.Session) error {
	g := &game{
		ctx:     ctx,
		logger:  w.logger,
		session: session,
	}

	ebiten.SetWindowSize(display.Width*w.options.Scale, display.Height*w.options.Scale)
	ebiten.SetWindowTitle(w.options.Title)
	ebiten.SetTPS(session.FrameRate())
	ebiten.SetRunnableOnUnfocused(true)

	w.logger.Debug("Window frontend started",
		log.Int("scale", w.options.Scale),
		log.Int("fps", session.FrameRate()))

	err := ebiten.RunGame(g)
	switch {
	case errors.Is(err, ebiten.Termination):
		return nil
	case err != nil:
		return fmt.Errorf("running window: %w", err)
	default:
		return nil
	}
}

// game implements ebiten.Game.
type game struct {
	ctx     context.Context
	logger  *log.Logger
	session frontend.Session

	image  *ebiten.Image
	pixels []byte
}

var _ ebiten.Game = (*game)(nil)

func (g *game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.session.SetPaused(!g.session.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if err := g.session.Reset(); err != nil {
			return fmt.Errorf("resetting session: %w", err)
		}
	}

	g.pollKeys()

	if err := g.session.RunFrame(); err != nil {
		return fmt.Errorf("running frame: %w", err)
	}
	return nil
}

func (g *game) pollKeys() {
	keys := g.session.Keypad()
	for i, hostKey := range hostKeys {
		if ebiten.IsKeyPressed(hostKey) {
			keys.Press(frontend.LayoutKeys[i])
		} else {
			keys.Release(frontend.LayoutKeys[i])
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(display.Width, display.Height)
	}

	g.pixels = frontend.PixelsRGBA(g.session.Display(), g.pixels, pixelOn, pixelOff)
	g.image.WritePixels(g.pixels)
	screen.DrawImage(g.image, nil)

	if g.session.Paused() {
		text.Draw(screen, "PAUSED", basicfont.Face7x13, 11, 20, overlay)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}
