package asm

import (
	"fmt"
	"strings"

	"octocore/vmerr"
)

// Instruction is a parsed, validated textual instruction: an opcode
// identity together with its ordered, unresolved argument tokens. Tokens
// are kept verbatim (case preserved) -- resolving them into registers or
// immediates happens once per execution, in the CPU's decode step, not
// here. This mirrors spec.md §9's guidance to model operands as a tagged
// variant "produced during instruction decoding", i.e. by the CPU, not the
// assembler.
type Instruction struct {
	Op   Opcode
	Args []string
	Line int
}

// NewInstruction constructs an Instruction from a single already-stripped
// source line (no label, directive, or comment content). Grounded on
// original_source/codes.py's Instruction.__init__.
func NewInstruction(line string, lineNo int) (Instruction, error) {
	normalized := strings.ReplaceAll(line, ",", " ")
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return Instruction{}, &vmerr.ParseError{Line: lineNo, Token: "", Message: "empty instruction"}
	}

	mnemonic := tokens[0]
	op, ok := LookupMnemonic(mnemonic)
	if !ok {
		return Instruction{}, &vmerr.ParseError{Line: lineNo, Token: mnemonic, Message: "operation does not match known list"}
	}

	args := tokens[1:]
	if want := op.Arity(); len(args) != want {
		return Instruction{}, &vmerr.ParseError{
			Line:    lineNo,
			Token:   mnemonic,
			Message: fmt.Sprintf("%s requires %d argument(s), %d given", op, want, len(args)),
		}
	}

	return Instruction{Op: op, Args: args, Line: lineNo}, nil
}

func (i Instruction) String() string {
	s := i.Op.String()
	if len(i.Args) > 0 {
		s += " " + strings.Join(i.Args, " ")
	}
	return s
}
