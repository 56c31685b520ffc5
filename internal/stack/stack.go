// Package stack implements the bounded CHIP-8 call stack.
package stack

import (
	"errors"
	"fmt"
)

// Capacity is the number of return addresses the call stack can hold.
const Capacity = 16

var (
	// ErrStackOverflow is returned when pushing to a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when popping or peeking an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is a fixed capacity LIFO of return addresses.
type Stack struct {
	entries [Capacity]uint16
	sp      int
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Push adds a return address on top of the stack.
func (s *Stack) Push(address uint16) error {
	if s.sp == Capacity {
		return fmt.Errorf("%w: pushing $%04X at depth %d", ErrStackOverflow, address, s.sp)
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the top return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Top returns the top return address without removing it.
func (s *Stack) Top() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	return s.entries[s.sp-1], nil
}

// Len returns the number of stored return addresses.
func (s *Stack) Len() int {
	return s.sp
}

// Cap returns the stack capacity.
func (s *Stack) Cap() int {
	return Capacity
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.sp = 0
}
