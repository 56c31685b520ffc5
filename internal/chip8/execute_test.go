package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/register"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // table of register arithmetic cases
func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		name  string
		x, y  uint8
		op    uint16
		want  uint8
		flag  uint8
		noVF  bool // instruction does not touch VF
		setVF uint8
	}{
		{name: "or", x: 0x0C, y: 0x03, op: 0x8011, want: 0x0F, noVF: true, setVF: 7},
		{name: "and", x: 0x0C, y: 0x06, op: 0x8012, want: 0x04, noVF: true, setVF: 7},
		{name: "xor", x: 0x0C, y: 0x06, op: 0x8013, want: 0x0A, noVF: true, setVF: 7},
		{name: "load register", x: 0x01, y: 0x99, op: 0x8010, want: 0x99, noVF: true, setVF: 7},
		{name: "add without carry", x: 0x10, y: 0x20, op: 0x8014, want: 0x30, flag: 0},
		{name: "add with carry", x: 0xFF, y: 0x02, op: 0x8014, want: 0x01, flag: 1},
		{name: "add to exactly 256", x: 0x80, y: 0x80, op: 0x8014, want: 0x00, flag: 1},
		{name: "sub without borrow", x: 0x30, y: 0x10, op: 0x8015, want: 0x20, flag: 1},
		{name: "sub with borrow", x: 0x10, y: 0x30, op: 0x8015, want: 0xE0, flag: 0},
		{name: "sub equal values", x: 0x10, y: 0x10, op: 0x8015, want: 0x00, flag: 0},
		{name: "subn without borrow", x: 0x10, y: 0x30, op: 0x8017, want: 0x20, flag: 1},
		{name: "subn with borrow", x: 0x30, y: 0x10, op: 0x8017, want: 0xE0, flag: 0},
		{name: "shift right odd", x: 0x05, y: 0xFF, op: 0x8016, want: 0x02, flag: 1},
		{name: "shift right even", x: 0x04, y: 0xFF, op: 0x8016, want: 0x02, flag: 0},
		{name: "shift left high bit", x: 0x81, y: 0x00, op: 0x801E, want: 0x02, flag: 1},
		{name: "shift left no high bit", x: 0x41, y: 0x00, op: 0x801E, want: 0x82, flag: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.op)
			m.Registers().V[0].Set(tt.x)
			m.Registers().V[1].Set(tt.y)
			m.Registers().V[register.Flag].Set(tt.setVF)

			runCycles(t, m, 1)

			assert.Equal(t, tt.want, m.Registers().V[0].Get())
			if tt.noVF {
				assert.Equal(t, tt.setVF, m.Registers().V[register.Flag].Get())
			} else {
				assert.Equal(t, tt.flag, m.Registers().V[register.Flag].Get())
			}
		})
	}
}

func TestExecute_FlagRegisterAsOperand(t *testing.T) {
	// VF receives the carry after the sum is stored
	m := newTestMachine(t, 0x8F14)
	m.Registers().V[register.Flag].Set(0xFF)
	m.Registers().V[1].Set(0x02)

	runCycles(t, m, 1)

	assert.Equal(t, uint8(1), m.Registers().V[register.Flag].Get())
}

func TestExecute_AddImmediate(t *testing.T) {
	m := newTestMachine(t, 0x60FF, 0x7002)
	m.Registers().V[register.Flag].Set(5)

	runCycles(t, m, 2)

	assert.Equal(t, uint8(0x01), m.Registers().V[0].Get())
	assert.Equal(t, uint8(5), m.Registers().V[register.Flag].Get())
}

func TestExecute_Index(t *testing.T) {
	m := newTestMachine(t, 0xAFFF, 0x6002, 0xF01E)

	runCycles(t, m, 2)
	assert.Equal(t, uint16(0xFFF), m.Registers().I.Get())

	runCycles(t, m, 1)
	assert.Equal(t, uint16(0x1001), m.Registers().I.Get())
	assert.Equal(t, uint8(0), m.Registers().V[register.Flag].Get())
}

func TestExecute_FontAddress(t *testing.T) {
	tests := []struct {
		value uint8
		want  uint16
	}{
		{0x0, memory.FontStart},
		{0xA, memory.FontStart + 50},
		{0xF, memory.FontStart + 75},
		{0x1B, memory.FontStart + 55}, // only the low nibble selects the glyph
	}

	for _, tt := range tests {
		m := newTestMachine(t, 0xF329)
		m.Registers().V[3].Set(tt.value)

		runCycles(t, m, 1)

		assert.Equal(t, tt.want, m.Registers().I.Get())
	}
}

func TestExecute_BCD(t *testing.T) {
	m := newTestMachine(t, 0x60FE, 0xA300, 0xF033)

	runCycles(t, m, 3)

	digits, err := m.Memory().ReadBlock(0x300, 3)
	assert.NoError(t, err)
	assert.Equal(t, []byte{2, 5, 4}, digits)
	assert.Equal(t, uint16(0x300), m.Registers().I.Get())
}

func TestExecute_BCDOutOfRange(t *testing.T) {
	m := newTestMachine(t, 0xAFFE, 0xF033)

	runCycles(t, m, 1)
	err := m.Cycle()

	assert.True(t, errors.Is(err, memory.ErrOutOfRange))
}

func TestExecute_StoreAndLoadRegisters(t *testing.T) {
	m := newTestMachine(t,
		0x6011, // V0 = $11
		0x6122, // V1 = $22
		0x6233, // V2 = $33
		0x6344, // V3 = $44
		0xA400, // I = $400
		0xF255, // store V0-V2
		0x6000, // V0 = 0
		0x6100, // V1 = 0
		0x6200, // V2 = 0
		0xF165, // load V0-V1
	)

	runCycles(t, m, 6)
	stored, err := m.Memory().ReadBlock(0x400, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x00}, stored)
	assert.Equal(t, uint16(0x400), m.Registers().I.Get())

	runCycles(t, m, 4)
	assert.Equal(t, uint8(0x11), m.Registers().V[0].Get())
	assert.Equal(t, uint8(0x22), m.Registers().V[1].Get())
	assert.Equal(t, uint8(0x00), m.Registers().V[2].Get())
	assert.Equal(t, uint8(0x44), m.Registers().V[3].Get())
	assert.Equal(t, uint16(0x400), m.Registers().I.Get())
}

func TestExecute_StoreOutOfRange(t *testing.T) {
	m := newTestMachine(t, 0xAFFE, 0xF255)

	runCycles(t, m, 1)
	err := m.Cycle()

	assert.True(t, errors.Is(err, memory.ErrOutOfRange))
	var execErr *ExecutionError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, uint16(0x202), execErr.PC)
}

func TestExecute_DrawCollision(t *testing.T) {
	m := newTestMachine(t,
		0xA000|memory.FontStart, // I = glyph 0
		0xD015,                  // draw at V0, V1
		0xD015,                  // draw again, erasing
	)

	runCycles(t, m, 2)
	assert.Equal(t, uint8(0), m.Registers().V[register.Flag].Get())
	assert.True(t, m.Display().Pixel(0, 0))
	assert.True(t, m.Display().Pixel(3, 0))
	assert.False(t, m.Display().Pixel(4, 0))

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.Registers().V[register.Flag].Get())
	for y := range 5 {
		for x := range 8 {
			assert.False(t, m.Display().Pixel(x, y))
		}
	}
}

func TestExecute_DrawWraps(t *testing.T) {
	m := newTestMachine(t,
		0x603E, // V0 = 62
		0x611F, // V1 = 31
		0xA300, // I = $300
		0xD012, // draw 2 rows
	)
	assert.NoError(t, m.Memory().WriteBlock(0x300, []byte{0xF0, 0x80}))

	runCycles(t, m, 4)

	assert.True(t, m.Display().Pixel(62, 31))
	assert.True(t, m.Display().Pixel(63, 31))
	assert.True(t, m.Display().Pixel(0, 31))
	assert.True(t, m.Display().Pixel(1, 31))
	assert.True(t, m.Display().Pixel(62, 0))
	assert.False(t, m.Display().Pixel(63, 0))
}

func TestExecute_ClearScreen(t *testing.T) {
	m := newTestMachine(t, 0x00E0)
	m.Display().DrawSprite(10, 10, []byte{0xFF})

	runCycles(t, m, 1)

	assert.False(t, m.Display().Pixel(10, 10))
}

func TestExecute_SkipKey(t *testing.T) {
	tests := []struct {
		name    string
		op      uint16
		value   uint8
		pressed bool
		skipped bool
	}{
		{"pressed key skips", 0xE09E, 0x5, true, true},
		{"released key does not skip", 0xE09E, 0x5, false, false},
		{"not pressed skips on released", 0xE0A1, 0x5, false, true},
		{"not pressed does not skip on pressed", 0xE0A1, 0x5, true, false},
		{"out of range key is not pressed", 0xE09E, 0x42, false, false},
		{"out of range key skips not pressed", 0xE0A1, 0x42, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.op)
			m.Registers().V[0].Set(tt.value)
			if tt.pressed {
				m.Keypad().Press(5)
			}

			runCycles(t, m, 1)

			want := uint16(memory.ProgramStart + 2)
			if tt.skipped {
				want += 2
			}
			assert.Equal(t, want, m.Registers().PC.Get())
		})
	}
}

func TestExecute_WaitForKey(t *testing.T) {
	m := newTestMachine(t,
		0x6005, // V0 = 5
		0xF015, // DT = 5
		0xF70A, // V7 = key
		0x6101, // V1 = 1
	)

	runCycles(t, m, 3)
	target, waiting := m.AwaitingKey()
	assert.True(t, waiting)
	assert.Equal(t, uint8(7), target)
	assert.Equal(t, uint16(0x206), m.Registers().PC.Get())
	dt := m.Registers().DT.Get()

	runCycles(t, m, 2)
	_, waiting = m.AwaitingKey()
	assert.True(t, waiting)
	assert.Equal(t, uint16(0x206), m.Registers().PC.Get())
	assert.Equal(t, dt-2, m.Registers().DT.Get())

	m.Keypad().Press(0xB)
	m.Keypad().Press(0x9)
	runCycles(t, m, 1)
	_, waiting = m.AwaitingKey()
	assert.False(t, waiting)
	assert.Equal(t, uint8(0x9), m.Registers().V[7].Get())
	assert.Equal(t, uint8(0), m.Registers().V[1].Get())

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.Registers().V[1].Get())
}

func TestExecute_WaitForKeyAlreadyPressed(t *testing.T) {
	m := newTestMachine(t, 0xF30A)
	m.Keypad().Press(0xC)

	runCycles(t, m, 1)

	_, waiting := m.AwaitingKey()
	assert.False(t, waiting)
	assert.Equal(t, uint8(0xC), m.Registers().V[3].Get())
}

func TestExecute_Random(t *testing.T) {
	m := newTestMachine(t, 0xC00F, 0xC100)

	runCycles(t, m, 2)

	assert.Equal(t, uint8(0), m.Registers().V[0].Get()&0xF0)
	assert.Equal(t, uint8(0), m.Registers().V[1].Get())
}

func TestExecute_RandomSeedIsDeterministic(t *testing.T) {
	program := []uint16{0xC0FF, 0xC1FF, 0xC2FF, 0xC3FF}
	first := newTestMachine(t, program...)
	second := newTestMachine(t, program...)

	runCycles(t, first, len(program))
	runCycles(t, second, len(program))

	for i := range len(program) {
		assert.Equal(t, first.Registers().V[i].Get(), second.Registers().V[i].Get())
	}
}
