package register

import (
	"fmt"

	"octocore/vmerr"
)

// Address is a 16-bit value cell (X, Y) used for memory addressing.
//
// Known defect, preserved deliberately: the original implementation
// reduces the value modulo 65535, not 65536. Values near the top wrap one
// tick early and 0xFFFF collapses to 0. See DESIGN.md.
const addressModulus = 65535

// Address is a 16-bit register used for memory addressing.
type Address struct {
	Name  string
	value uint16
}

// NewAddress constructs a zeroed Address register with the given display name.
func NewAddress(name string) *Address {
	return &Address{Name: name}
}

// Value returns the register's current 16-bit value.
func (r *Address) Value() uint16 { return r.value }

func (r *Address) String() string {
	return fmt.Sprintf("Register %s: %#x", r.Name, r.value)
}

// MemoryIndex projects the register's value into the 1024-cell memory
// space, bounding all addressing to the machine's data memory.
func (r *Address) MemoryIndex() int {
	return int(r.value) % 1024
}

// Load sets the register to v, which must be an integer in [0, 65535]. No
// reduction is applied to a valid input.
func (r *Address) Load(v int) error {
	if v < 0 || v > 65535 {
		return &vmerr.RangeError{Opcode: "LOAD", Message: fmt.Sprintf("address %d out of range [0, 65535]", v)}
	}
	r.value = uint16(v)
	return nil
}

// Increment adds 1 to the register, then reduces modulo 65535.
func (r *Address) Increment() {
	r.value = uint16((int(r.value) + 1) % addressModulus)
}

// Decrement subtracts 1 from the register, then reduces modulo 65535.
func (r *Address) Decrement() {
	v := int(r.value) - 1
	v %= addressModulus
	if v < 0 {
		v += addressModulus
	}
	r.value = uint16(v)
}
