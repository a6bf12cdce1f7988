package cpu

import (
	"octocore/asm"
	"octocore/register"
	"octocore/vmerr"
)

// operandKind distinguishes the three forms an instruction argument token
// can resolve to once decoded.
type operandKind int

const (
	operandByteReg operandKind = iota
	operandAddrReg
	operandImmediate
)

// operand is the decode-time tagged variant spec.md §9 calls for: "model
// operands as a tagged variant { ByteReg(id), AddrReg(id), Immediate(i32) }
// produced during instruction decoding, and dispatch per opcode." The CPU
// builds one of these from a raw token immediately before executing an
// instruction; Instruction itself (asm.Instruction) keeps the token
// unresolved, per spec.md §4.3.
type operand struct {
	kind    operandKind
	byteReg *register.Byte
	addrReg *register.Address
	imm     int64
}

// resolveOperand turns a raw argument token into a tagged operand. A token
// is a register reference if it matches a known register name exactly
// (case-sensitively -- spec.md's asymmetric case rule); otherwise it is
// parsed as a numeral.
func (c *CPU) resolveOperand(tok string) (operand, error) {
	if id, ok := register.Names[tok]; ok {
		switch {
		case id.IsByte():
			return operand{kind: operandByteReg, byteReg: c.byteRegister(id)}, nil
		case id.IsAddress():
			return operand{kind: operandAddrReg, addrReg: c.addrRegister(id)}, nil
		}
	}
	v, err := asm.ParseNumeral(tok)
	if err != nil {
		return operand{}, &vmerr.ParseError{Token: tok, Message: "not a register or numeral: " + err.Error()}
	}
	return operand{kind: operandImmediate, imm: v}, nil
}

func (o operand) isByteReg() bool   { return o.kind == operandByteReg }
func (o operand) isAddrReg() bool   { return o.kind == operandAddrReg }
func (o operand) isImmediate() bool { return o.kind == operandImmediate }
