// Package display implements the monochrome CHIP-8 framebuffer and
// sprite compositing.
package display

const (
	// Width is the logical framebuffer width in pixels.
	Width = 64
	// Height is the logical framebuffer height in pixels.
	Height = 32

	// PixelOff is the cell value of a pixel that is off.
	PixelOff uint32 = 0x00000000
	// PixelOn is the cell value of a pixel that is on.
	PixelOn uint32 = 0xFFFFFFFF
)

// spriteWidth is the number of pixels encoded by one sprite row byte.
const spriteWidth = 8

// View is the read-only side of the framebuffer that renderers consume.
type View interface {
	Width() int
	Height() int
	Pixel(x, y int) bool
	Pixels() []uint32
}

// Framebuffer is a grid of binary pixels, each stored in a 32 bit cell
// so that hosts can upload it as a texture without conversion.
type Framebuffer struct {
	cells [Width * Height]uint32
	dirty bool
}

var _ View = (*Framebuffer)(nil)

// New returns a cleared framebuffer.
func New() *Framebuffer {
	return &Framebuffer{dirty: true}
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int {
	return Width
}

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int {
	return Height
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	clear(f.cells[:])
	f.dirty = true
}

// Pixel reports whether the pixel at the given position is on.
// Coordinates wrap around the framebuffer edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.cells[index(x, y)] == PixelOn
}

// Pixels returns a copy of all pixel cells in row major order.
func (f *Framebuffer) Pixels() []uint32 {
	pixels := make([]uint32, len(f.cells))
	copy(pixels, f.cells[:])
	return pixels
}

// DrawSprite XORs the sprite rows onto the framebuffer with its origin at
// (x, y). Each row byte holds 8 pixels, bit 7 being the leftmost one. Only set
// sprite bits toggle pixels, pixels that leave an edge continue on the
// opposite edge. It returns whether any pixel was turned off.
func (f *Framebuffer) DrawSprite(x, y int, rows []byte) bool {
	collision := false

	for row, bits := range rows {
		if bits == 0 {
			continue
		}
		for col := range spriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}

			i := index(x+col, y+row)
			if f.cells[i] == PixelOn {
				collision = true
			}
			f.cells[i] ^= PixelOn
		}
	}

	f.dirty = true
	return collision
}

// Dirty reports whether the framebuffer changed since the last ClearDirty.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty resets the change tracking after a frame was presented.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}

func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}
