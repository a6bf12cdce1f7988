// Package register implements the two register classes of the machine: an
// 8-bit Byte register (A, B, C, D) and a 16-bit Address register (X, Y).
//
// Both classes re-establish their range invariant after every mutator, the
// way original_source/codes.py's Register1B/Register2B classes do via
// "%= 256" / "%= 65535" in _validate_val.
package register

import (
	"fmt"

	"octocore/vmerr"
)

// A Source is the input to a Byte mutator: either another Byte register or
// an immediate integer. It models the dynamic "register or int" argument
// typing of the original Python register classes as a small tagged variant,
// resolved once per call instead of via repeated isinstance checks.
type Source struct {
	reg    *Byte
	imm    int
	isReg  bool
	hasImm bool
}

// FromByte wraps a Byte register as a Source.
func FromByte(r *Byte) Source { return Source{reg: r, isReg: true} }

// FromImmediate wraps an integer immediate as a Source. The immediate is
// range-checked against [-128, 255] when the Source is resolved, not here.
func FromImmediate(v int) Source { return Source{imm: v, hasImm: true} }

func (s Source) resolve(opcode string) (int, error) {
	if s.isReg {
		return int(s.reg.Value()), nil
	}
	if !s.hasImm {
		return 0, &vmerr.TypeError{Opcode: opcode, Message: "operand is neither a register nor an immediate"}
	}
	if s.imm < -128 || s.imm > 255 {
		return 0, &vmerr.RangeError{Opcode: opcode, Message: fmt.Sprintf("immediate %d out of range [-128, 255]", s.imm)}
	}
	return s.imm, nil
}

// Byte is an 8-bit value cell. Its invariant, 0 <= value <= 255, is
// re-established by every mutator via reduction modulo 256.
type Byte struct {
	Name  string
	value uint8
}

// NewByte constructs a zeroed Byte register with the given display name.
func NewByte(name string) *Byte {
	return &Byte{Name: name}
}

// Value returns the register's current unsigned byte value.
func (r *Byte) Value() uint8 { return r.value }

func (r *Byte) String() string {
	return fmt.Sprintf("Register %s: %#x", r.Name, r.value)
}

func reduce256(v int) uint8 {
	v %= 256
	if v < 0 {
		v += 256
	}
	return uint8(v)
}

// Load sets the register to v, reduced modulo 256. v may be another Byte
// register or an immediate in [-128, 255].
func (r *Byte) Load(v Source) error {
	raw, err := v.resolve("LOAD")
	if err != nil {
		return err
	}
	r.value = reduce256(raw)
	return nil
}

// Add computes a + b and stores the result modulo 256. a must be a byte
// register; b may be a byte register or an immediate.
func (r *Byte) Add(a *Byte, b Source) (uint8, error) {
	bv, err := b.resolve("ADD")
	if err != nil {
		return 0, err
	}
	r.value = reduce256(int(a.Value()) + bv)
	return r.value, nil
}

// Sub computes a - b and stores the result modulo 256.
func (r *Byte) Sub(a *Byte, b Source) (uint8, error) {
	bv, err := b.resolve("SUB")
	if err != nil {
		return 0, err
	}
	r.value = reduce256(int(a.Value()) - bv)
	return r.value, nil
}

// Orl stores the bitwise OR of two byte registers, modulo 256 (always a
// no-op reduction since OR of two bytes is already a byte).
func (r *Byte) Orl(a, b *Byte) uint8 {
	r.value = reduce256(int(a.Value()) | int(b.Value()))
	return r.value
}

// Andl stores the bitwise AND of two byte registers.
func (r *Byte) Andl(a, b *Byte) uint8 {
	r.value = reduce256(int(a.Value()) & int(b.Value()))
	return r.value
}

// Xorl stores the bitwise XOR of two byte registers.
func (r *Byte) Xorl(a, b *Byte) uint8 {
	r.value = reduce256(int(a.Value()) ^ int(b.Value()))
	return r.value
}

// Lsl stores the logical left shift of a's value by k bits (0 <= k <= 7),
// modulo 256.
func (r *Byte) Lsl(a *Byte, k int) (uint8, error) {
	if k < 0 || k > 7 {
		return 0, &vmerr.RangeError{Opcode: "LSL", Message: fmt.Sprintf("shift amount %d out of range [0,7]", k)}
	}
	r.value = reduce256(int(a.Value()) << uint(k))
	return r.value, nil
}

// Lsr stores the logical right shift of a's value by k bits (0 <= k <= 7).
func (r *Byte) Lsr(a *Byte, k int) (uint8, error) {
	if k < 0 || k > 7 {
		return 0, &vmerr.RangeError{Opcode: "LSR", Message: fmt.Sprintf("shift amount %d out of range [0,7]", k)}
	}
	r.value = a.Value() >> uint(k)
	return r.value, nil
}

// Inv stores the bitwise NOT of the current value over 8 bits (255 -
// current), the way Python's codes.py sidesteps `~x` semantics.
func (r *Byte) Inv() uint8 {
	r.value = 255 - r.value
	return r.value
}

// Cmp performs a three-way comparison of the current value against o,
// returning -1, 0, or +1 for less, equal, or greater. It does not mutate r.
func (r *Byte) Cmp(o Source) (int, error) {
	ov, err := o.resolve("CMP")
	if err != nil {
		return 0, err
	}
	switch {
	case int(r.value) == ov:
		return 0, nil
	case int(r.value) > ov:
		return 1, nil
	default:
		return -1, nil
	}
}
