// Package cpu implements the fetch-decode-execute loop of the machine:
// registers, flags, memory, labels, and program counter, stepped one
// instruction at a time under external (driver) control.
//
// Grounded on original_source/codes.py's CPU class for semantics, and on
// hejops-gone/cpu/cpu.go's shape (a struct owning all machine state plus a
// single-step tick/Step method, and a RenderState/status-style text dump)
// for the Go idiom.
package cpu

import (
	"fmt"
	"strings"

	"octocore/asm"
	"octocore/mem"
	"octocore/register"
	"octocore/vmerr"
)

// CPU owns registers, flags, memory, labels, and program for its entire
// lifetime; it is the sole owner of this state and is strictly
// single-threaded (spec.md §5).
type CPU struct {
	A, B, C, D *register.Byte
	X, Y       *register.Address

	Zero     bool
	Negative bool

	memory  *mem.Memory
	labels  asm.Labels
	program asm.Program
	pc      int
}

// New constructs a CPU from an assembled program, memory, and label table.
// It validates that memory is exactly 1024 cells and that every label
// index is non-negative, per spec.md §6.
func New(program asm.Program, memory *mem.Memory, labels asm.Labels) (*CPU, error) {
	if memory == nil {
		return nil, fmt.Errorf("memory must not be nil")
	}
	if len(memory) != mem.Size {
		return nil, fmt.Errorf("memory length is not %d", mem.Size)
	}
	for name, idx := range labels {
		if idx < 0 {
			return nil, fmt.Errorf("label %q has a negative index", name)
		}
	}

	return &CPU{
		A: register.NewByte("A"),
		B: register.NewByte("B"),
		C: register.NewByte("C"),
		D: register.NewByte("D"),
		X: register.NewAddress("X"),
		Y: register.NewAddress("Y"),

		memory:  memory,
		labels:  labels,
		program: program,
	}, nil
}

// PC returns the current program counter.
func (c *CPU) PC() int { return c.pc }

func (c *CPU) byteRegister(id register.ID) *register.Byte {
	switch id {
	case register.A:
		return c.A
	case register.B:
		return c.B
	case register.C:
		return c.C
	case register.D:
		return c.D
	default:
		return nil
	}
}

func (c *CPU) addrRegister(id register.ID) *register.Address {
	switch id {
	case register.X:
		return c.X
	case register.Y:
		return c.Y
	default:
		return nil
	}
}

// Step fetches, decodes, and executes a single instruction. It returns
// vmerr.ErrEndOfProgram once the program counter has run off the end of
// the program. Any other error aborts the current instruction without
// advancing the program counter, per spec.md §4.5/§7.
func (c *CPU) Step() error {
	if c.pc >= len(c.program) {
		return vmerr.ErrEndOfProgram
	}
	inst := c.program[c.pc]

	// Branch opcodes take a bare label token, which never resolves as a
	// register or a numeral, so they bypass the generic operand decode.
	if isBranch(inst.Op) {
		incPC, err := c.execBranch(inst.Op, inst.Args[0])
		if err != nil {
			return err
		}
		if incPC {
			c.pc++
		}
		return nil
	}

	operands := make([]operand, len(inst.Args))
	for i, tok := range inst.Args {
		op, err := c.resolveOperand(tok)
		if err != nil {
			return err
		}
		operands[i] = op
	}

	incPC, err := c.execute(inst, operands)
	if err != nil {
		return err
	}
	if incPC {
		c.pc++
	}
	return nil
}

// MemoryRead returns the memory cell at addr, supporting driver-side
// inspection (spec.md §6). addr must be in [0, 1023].
func (c *CPU) MemoryRead(addr int) (int16, error) {
	return c.memory.Read(addr)
}

// NextInstruction returns the instruction the next Step call will execute,
// and whether the program has more instructions left.
func (c *CPU) NextInstruction() (asm.Instruction, bool) {
	if c.pc >= len(c.program) {
		return asm.Instruction{}, false
	}
	return c.program[c.pc], true
}

// RenderState renders the full machine state as human-readable text: each
// register's name and hex value, the Z/N flags, the program counter, and
// either "EXECUTION OVER" or the next instruction's textual form. Grounded
// on original_source/codes.py's CPU.__str__ and hejops-gone/cpu/debugger.go's
// status().
func (c *CPU) RenderState() string {
	var b strings.Builder

	fmt.Fprintln(&b, "REGISTERS:")
	for _, r := range []fmt.Stringer{c.A, c.B, c.C, c.D, c.X, c.Y} {
		fmt.Fprintf(&b, "  %s\n", r)
	}

	fmt.Fprintln(&b, "\nFLAGS")
	fmt.Fprintf(&b, "  Zero Flag: %s\n", bit(c.Zero))
	fmt.Fprintf(&b, "  Negative Flag: %s\n", bit(c.Negative))
	fmt.Fprintf(&b, "  Status byte: %#02x\n", c.flagByte())

	fmt.Fprintf(&b, "\nPROGRAM COUNTER: %d\n", c.pc)
	if inst, ok := c.NextInstruction(); ok {
		fmt.Fprintf(&b, "NEXT INSTRUCTION: %s\n", inst)
	} else {
		fmt.Fprintln(&b, "EXECUTION OVER")
	}

	return b.String()
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
