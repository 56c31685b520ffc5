// Package register implements the CHIP-8 register file.
package register

import "fmt"

// Count is the number of general purpose V registers.
const Count = 16

// Flag is the index of the VF register that instructions use for
// carry, borrow and collision results.
const Flag = 0xF

// Value is the set of cell widths a register can have.
type Value interface {
	~uint8 | ~uint16
}

// Register is a named scalar cell. Arithmetic wraps around at the cell width.
type Register[T Value] struct {
	name  string
	value T
}

// New returns a register with the given name and initial value.
func New[T Value](name string, value T) Register[T] {
	return Register[T]{name: name, value: value}
}

// Name returns the register name used in traces and errors.
func (r *Register[T]) Name() string {
	return r.name
}

// Get returns the current value.
func (r *Register[T]) Get() T {
	return r.value
}

// Set replaces the current value.
func (r *Register[T]) Set(value T) {
	r.value = value
}

// Increment adds 1.
func (r *Register[T]) Increment() {
	r.value++
}

// IncrementBy adds n.
func (r *Register[T]) IncrementBy(n T) {
	r.value += n
}

// Decrement subtracts 1.
func (r *Register[T]) Decrement() {
	r.value--
}

// DecrementBy subtracts n.
func (r *Register[T]) DecrementBy(n T) {
	r.value -= n
}

// Equal reports whether the register holds value.
func (r *Register[T]) Equal(value T) bool {
	return r.value == value
}

// EqualRegister reports whether both registers hold the same value.
func (r *Register[T]) EqualRegister(other *Register[T]) bool {
	return r.value == other.value
}

// Less reports whether the register value is below value.
func (r *Register[T]) Less(value T) bool {
	return r.value < value
}

// Greater reports whether the register value is above value.
func (r *Register[T]) Greater(value T) bool {
	return r.value > value
}

// GreaterRegister reports whether the register value is above the other register value.
func (r *Register[T]) GreaterRegister(other *Register[T]) bool {
	return r.value > other.value
}

func (r *Register[T]) String() string {
	if _, ok := any(r.value).(uint16); ok {
		return fmt.Sprintf("%s=$%04X", r.name, r.value)
	}
	return fmt.Sprintf("%s=$%02X", r.name, r.value)
}

// Timer is an 8 bit countdown register that never goes below 0.
type Timer struct {
	Register[uint8]
}

// NewTimer returns a stopped timer.
func NewTimer(name string) Timer {
	return Timer{Register: New[uint8](name, 0)}
}

// Decay decrements a running timer by one.
func (t *Timer) Decay() {
	if t.value > 0 {
		t.value--
	}
}

// Active reports whether the timer is still counting.
func (t *Timer) Active() bool {
	return t.value > 0
}

// File holds all CPU visible registers of the machine.
type File struct {
	V  [Count]Register[uint8]
	I  Register[uint16]
	PC Register[uint16]
	DT Timer // delay timer
	ST Timer // sound timer
}

// NewFile returns a register file with all registers zeroed and the
// program counter set to pc.
func NewFile(pc uint16) *File {
	f := &File{
		I:  New[uint16]("I", 0),
		PC: New("PC", pc),
		DT: NewTimer("DT"),
		ST: NewTimer("ST"),
	}
	for i := range f.V {
		f.V[i] = New[uint8](fmt.Sprintf("V%X", i), 0)
	}
	return f
}

// Reset zeroes all registers and sets the program counter to pc.
func (f *File) Reset(pc uint16) {
	for i := range f.V {
		f.V[i].Set(0)
	}
	f.I.Set(0)
	f.PC.Set(pc)
	f.DT.Set(0)
	f.ST.Set(0)
}

// DecayTimers decrements both running timers by one.
func (f *File) DecayTimers() {
	f.DT.Decay()
	f.ST.Decay()
}
