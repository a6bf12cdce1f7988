package cpu

import (
	"octocore/asm"
	"octocore/mask"
	"octocore/register"
	"octocore/vmerr"
)

// execute dispatches a non-branch inst to its handler, returning whether
// the program counter should still be advanced afterwards. Branch opcodes
// never reach it (Step sends them to execBranch), so it always reports true.
// Grounded on original_source/codes.py's CPU.step match block; structured
// as a Go switch rather than hejops-gone's Opcodes map of closures because
// spec.md's opcodes are dispatched on a fixed small Opcode enum known at
// compile time, not on an arbitrary runtime byte value.
func (c *CPU) execute(inst asm.Instruction, args []operand) (bool, error) {
	switch inst.Op {
	case asm.NOP:
		return true, nil

	case asm.MOV:
		return true, c.execMOV(args)
	case asm.LDI:
		return true, c.execLDI(args)
	case asm.RDM:
		return true, c.execRDM(args)
	case asm.WRM:
		return true, c.execWRM(args)
	case asm.CMP:
		return true, c.execCMP(args)
	case asm.CMPI:
		return true, c.execCMPI(args)

	case asm.INC:
		return true, c.execIncDec(args, true)
	case asm.DEC:
		return true, c.execIncDec(args, false)
	case asm.INV:
		return true, c.execINV(args)

	case asm.LSL:
		return true, c.execShift(args, true)
	case asm.LSR:
		return true, c.execShift(args, false)

	case asm.ADD:
		return true, c.execArith3(args, true)
	case asm.SUB:
		return true, c.execArith3(args, false)
	case asm.ADDI:
		return true, c.execArithI(args, true)
	case asm.SUBI:
		return true, c.execArithI(args, false)

	case asm.ORL:
		return true, c.execLogic(inst.Op, args)
	case asm.ANDL:
		return true, c.execLogic(inst.Op, args)
	case asm.XORL:
		return true, c.execLogic(inst.Op, args)

	default:
		return true, &vmerr.TypeError{Opcode: inst.Op.String(), Message: "unknown instruction"}
	}
}

func (c *CPU) execMOV(args []operand) error {
	dst, src := args[0], args[1]
	switch {
	case dst.isByteReg() && src.isByteReg():
		return dst.byteReg.Load(register.FromByte(src.byteReg))
	case dst.isAddrReg() && src.isAddrReg():
		return dst.addrReg.Load(int(src.addrReg.Value()))
	case dst.isByteReg() || dst.isAddrReg():
		return &vmerr.TypeError{Opcode: "MOV", Message: "incompatible register sizes for MOV"}
	default:
		return &vmerr.TypeError{Opcode: "MOV", Message: "destination is not a register"}
	}
}

func (c *CPU) execLDI(args []operand) error {
	dst, imm := args[0], args[1]
	if !imm.isImmediate() {
		return &vmerr.TypeError{Opcode: "LDI", Message: "second argument must be an immediate"}
	}
	switch {
	case dst.isByteReg():
		return dst.byteReg.Load(register.FromImmediate(int(imm.imm)))
	case dst.isAddrReg():
		return dst.addrReg.Load(int(imm.imm))
	default:
		return &vmerr.TypeError{Opcode: "LDI", Message: "destination is not a register"}
	}
}

func (c *CPU) execRDM(args []operand) error {
	dst, addr := args[0], args[1]
	if !dst.isByteReg() {
		return &vmerr.TypeError{Opcode: "RDM", Message: "destination register not A, B, C, D"}
	}
	if !addr.isAddrReg() {
		return &vmerr.TypeError{Opcode: "RDM", Message: "source register for address not X, Y"}
	}
	v, err := c.memory.Read(addr.addrReg.MemoryIndex())
	if err != nil {
		return err
	}
	return dst.byteReg.Load(register.FromImmediate(int(v)))
}

func (c *CPU) execWRM(args []operand) error {
	addr, src := args[0], args[1]
	if !addr.isAddrReg() {
		return &vmerr.TypeError{Opcode: "WRM", Message: "destination register for address not X, Y"}
	}
	if !src.isByteReg() {
		return &vmerr.TypeError{Opcode: "WRM", Message: "source register not A, B, C, D"}
	}
	return c.memory.Write(addr.addrReg.MemoryIndex(), int16(src.byteReg.Value()))
}

func (c *CPU) execCMP(args []operand) error {
	r1, r2 := args[0], args[1]
	if !r1.isByteReg() || !r2.isByteReg() {
		return &vmerr.TypeError{Opcode: "CMP", Message: "both operands must be byte registers"}
	}
	val, err := r1.byteReg.Cmp(register.FromByte(r2.byteReg))
	if err != nil {
		return err
	}
	c.setFlags(val)
	return nil
}

func (c *CPU) execCMPI(args []operand) error {
	r1, imm := args[0], args[1]
	if !r1.isByteReg() {
		return &vmerr.TypeError{Opcode: "CMPI", Message: "first operand must be a byte register"}
	}
	if !imm.isImmediate() {
		return &vmerr.TypeError{Opcode: "CMPI", Message: "second operand must be an immediate"}
	}
	val, err := r1.byteReg.Cmp(register.FromImmediate(int(imm.imm)))
	if err != nil {
		return err
	}
	c.setFlags(val)
	return nil
}

// isBranch reports whether op takes a bare label token rather than
// register/immediate operands.
func isBranch(op asm.Opcode) bool {
	switch op {
	case asm.JMP, asm.JNZ, asm.JEZ, asm.JNE, asm.JPZ:
		return true
	default:
		return false
	}
}

// execBranch implements the shared JMP/JNZ/JEZ/JNE/JPZ mechanics: resolve
// the label against the label table and, if the opcode's condition holds,
// jump by setting pc directly and reporting that the caller should not
// also advance it. Grounded on original_source/codes.py's `case 6|7|8|9|10`
// branch.
func (c *CPU) execBranch(op asm.Opcode, label string) (bool, error) {
	target, ok := c.labels[label]
	if !ok {
		return true, &vmerr.LabelError{Label: label}
	}

	var taken bool
	switch op {
	case asm.JMP:
		taken = true
	case asm.JNZ:
		taken = !c.Zero
	case asm.JEZ:
		taken = c.Zero
	case asm.JNE:
		taken = c.Negative
	case asm.JPZ:
		taken = !c.Negative
	}

	if taken {
		c.pc = target
		return false, nil
	}
	return true, nil
}

func (c *CPU) execIncDec(args []operand, increment bool) error {
	reg := args[0]
	if !reg.isAddrReg() {
		return &vmerr.TypeError{Opcode: "INC/DEC", Message: "register is not X or Y"}
	}
	if increment {
		reg.addrReg.Increment()
	} else {
		reg.addrReg.Decrement()
	}
	return nil
}

func (c *CPU) execINV(args []operand) error {
	reg := args[0]
	if !reg.isByteReg() {
		return &vmerr.TypeError{Opcode: "INV", Message: "register is not A, B, C, or D"}
	}
	reg.byteReg.Inv()
	return nil
}

// execShift implements LSL/LSR dst, src, k: dst <- (src << k) mod 256, or
// src >> k, where k is an immediate in [0,7].
func (c *CPU) execShift(args []operand, left bool) error {
	dst, src, k := args[0], args[1], args[2]
	if !dst.isByteReg() || !src.isByteReg() {
		return &vmerr.TypeError{Opcode: "LSL/LSR", Message: "destination and source must be byte registers"}
	}
	if !k.isImmediate() {
		return &vmerr.TypeError{Opcode: "LSL/LSR", Message: "shift amount must be an immediate"}
	}
	var val uint8
	var err error
	if left {
		val, err = dst.byteReg.Lsl(src.byteReg, int(k.imm))
	} else {
		val, err = dst.byteReg.Lsr(src.byteReg, int(k.imm))
	}
	if err != nil {
		return err
	}
	c.setFlags(int(val))
	return nil
}

func (c *CPU) execArith3(args []operand, add bool) error {
	dst, r1, r2 := args[0], args[1], args[2]
	if !dst.isByteReg() || !r1.isByteReg() || !r2.isByteReg() {
		return &vmerr.TypeError{Opcode: "ADD/SUB", Message: "all operands must be byte registers"}
	}
	var val uint8
	var err error
	if add {
		val, err = dst.byteReg.Add(r1.byteReg, register.FromByte(r2.byteReg))
	} else {
		val, err = dst.byteReg.Sub(r1.byteReg, register.FromByte(r2.byteReg))
	}
	if err != nil {
		return err
	}
	c.setFlags(int(val))
	return nil
}

func (c *CPU) execArithI(args []operand, add bool) error {
	dst, r1, imm := args[0], args[1], args[2]
	if !dst.isByteReg() || !r1.isByteReg() {
		return &vmerr.TypeError{Opcode: "ADDI/SUBI", Message: "destination and first operand must be byte registers"}
	}
	if !imm.isImmediate() {
		return &vmerr.TypeError{Opcode: "ADDI/SUBI", Message: "third operand must be an immediate"}
	}
	var val uint8
	var err error
	if add {
		val, err = dst.byteReg.Add(r1.byteReg, register.FromImmediate(int(imm.imm)))
	} else {
		val, err = dst.byteReg.Sub(r1.byteReg, register.FromImmediate(int(imm.imm)))
	}
	if err != nil {
		return err
	}
	c.setFlags(int(val))
	return nil
}

func (c *CPU) execLogic(op asm.Opcode, args []operand) error {
	dst, r1, r2 := args[0], args[1], args[2]
	if !dst.isByteReg() || !r1.isByteReg() || !r2.isByteReg() {
		return &vmerr.TypeError{Opcode: op.String(), Message: "all operands must be byte registers"}
	}
	var val uint8
	switch op {
	case asm.ORL:
		val = dst.byteReg.Orl(r1.byteReg, r2.byteReg)
	case asm.ANDL:
		val = dst.byteReg.Andl(r1.byteReg, r2.byteReg)
	case asm.XORL:
		val = dst.byteReg.Xorl(r1.byteReg, r2.byteReg)
	}
	// Pure logical ops set only Z; N is left untouched (spec.md §4.5).
	c.Zero = val == 0
	return nil
}

// setFlags implements spec.md's set_flags(val) for arithmetic, comparison,
// and shift results.
//
// Known defect, preserved deliberately: N is true whenever val < 127, not
// when bit 7 is set or val is negative. This makes N true for nearly every
// value below the top of the byte range; see DESIGN.md.
func (c *CPU) setFlags(val int) {
	c.Zero = val == 0
	c.Negative = val < 127
}

// flagByte packs Z and N into a single status byte for display, reusing
// the teacher's bit-manipulation leaf package the way hejops-gone's
// Cpu.flagsByte packs its status register.
func (c *CPU) flagByte() byte {
	var b byte
	if c.Zero {
		b = mask.Set(b, mask.I1, 1)
	}
	if c.Negative {
		b = mask.Set(b, mask.I2, 1)
	}
	return b
}
