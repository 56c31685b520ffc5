// Package keypad implements the 16 key CHIP-8 input latch.
package keypad

// Count is the number of keys on the hexadecimal keypad.
const Count = 16

// Key is the index of a key on the keypad, 0x0 to 0xF.
type Key uint8

// Keypad holds the pressed state of every key. It is written by the host
// input source and read by the instructions.
type Keypad struct {
	keys [Count]bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Press marks a key as pressed. Keys outside of the keypad are ignored.
func (k *Keypad) Press(key Key) {
	if key < Count {
		k.keys[key] = true
	}
}

// Release marks a key as released. Keys outside of the keypad are ignored.
func (k *Keypad) Release(key Key) {
	if key < Count {
		k.keys[key] = false
	}
}

// ReleaseAll marks all keys as released.
func (k *Keypad) ReleaseAll() {
	clear(k.keys[:])
}

// IsPressed reports whether the key is currently pressed.
func (k *Keypad) IsPressed(key Key) bool {
	return key < Count && k.keys[key]
}

// FirstPressed returns the lowest pressed key.
func (k *Keypad) FirstPressed() (Key, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return Key(i), true
		}
	}
	return 0, false
}
