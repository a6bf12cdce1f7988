package asm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"octocore/mem"
	"octocore/vmerr"
)

// Program is an ordered sequence of Instructions, indexed by the program
// counter.
type Program []Instruction

// Labels maps a label name to the program index immediately following its
// definition.
type Labels map[string]int

// Assemble reads the file at path and produces the program, pre-
// initialized memory, and label table spec.md §4.4 describes. It halts on
// the first error encountered, in source order.
func Assemble(path string) (Program, *mem.Memory, Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	memory := mem.New()
	labels := Labels{}
	var program Program

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		line = strings.TrimSpace(line)
		if idx := strings.Index(line, "--"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.Contains(line, "."):
			if err := applyDirective(line, lineNo, memory); err != nil {
				return nil, nil, nil, err
			}

		case strings.Contains(line, ":"):
			name := strings.TrimSpace(strings.ReplaceAll(line, ":", ""))
			if _, dup := labels[name]; dup {
				return nil, nil, nil, &vmerr.DirectiveError{Line: lineNo, Message: fmt.Sprintf("duplicate label %q", name)}
			}
			labels[name] = len(program)

		default:
			inst, err := NewInstruction(line, lineNo)
			if err != nil {
				return nil, nil, nil, err
			}
			program = append(program, inst)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}

	return program, memory, labels, nil
}

// applyDirective handles a single `.byte` or `.list` directive line.
// Unknown directives are silently accepted and ignored, matching spec.md
// §6's explicit "unknown directives are silently accepted" rule.
func applyDirective(line string, lineNo int, memory *mem.Memory) error {
	tokens := strings.Fields(line)
	switch strings.ToLower(tokens[0]) {
	case ".byte":
		return applyByteDirective(tokens, lineNo, memory)
	case ".list":
		return applyListDirective(tokens, lineNo, memory)
	default:
		return nil
	}
}

func applyByteDirective(tokens []string, lineNo int, memory *mem.Memory) error {
	if len(tokens) != 3 {
		return &vmerr.DirectiveError{Line: lineNo, Message: "incorrect number of arguments for .byte"}
	}
	addr, err := ParseNumeral(tokens[1])
	if err != nil {
		return &vmerr.DirectiveError{Line: lineNo, Message: "bad address: " + err.Error()}
	}
	data, err := ParseNumeral(tokens[2])
	if err != nil {
		return &vmerr.DirectiveError{Line: lineNo, Message: "bad data: " + err.Error()}
	}
	if addr < 0 || addr > 1023 {
		return &vmerr.DirectiveError{Line: lineNo, Message: "address must be within 0 to 1023"}
	}
	if data < -128 || data > 255 {
		return &vmerr.DirectiveError{Line: lineNo, Message: "data must be in range -128 to 255"}
	}
	return memory.Write(int(addr), int16(data))
}

func applyListDirective(tokens []string, lineNo int, memory *mem.Memory) error {
	if len(tokens) < 3 {
		return &vmerr.DirectiveError{Line: lineNo, Message: "incorrect number of arguments for .list"}
	}
	// length is decimal only, matching original_source/codes.py's assemble()
	// (int(tokens[1], 10)) and spec.md's "length is decimal only" rule --
	// unlike addr and the data items, it does not accept 0x/0b prefixes.
	length, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return &vmerr.DirectiveError{Line: lineNo, Message: "bad length: " + err.Error()}
	}
	if length <= 0 || length >= 11 {
		return &vmerr.DirectiveError{Line: lineNo, Message: "length of list must be positive and not exceed 10"}
	}
	addr, err := ParseNumeral(tokens[2])
	if err != nil {
		return &vmerr.DirectiveError{Line: lineNo, Message: "bad address: " + err.Error()}
	}
	if want := int(3 + length); len(tokens) != want {
		return &vmerr.DirectiveError{Line: lineNo, Message: "incorrect number of arguments for .list"}
	}
	// Upper bound (addr+length-1 <= 1023) is validated here, deliberately
	// stricter than original_source/codes.py, which leaves it unchecked.
	// See DESIGN.md's "Open question -- .list bounds" entry.
	if addr < 0 || addr+length-1 > 1023 {
		return &vmerr.DirectiveError{Line: lineNo, Message: "list would write outside memory (0 to 1023)"}
	}
	for i := int64(0); i < length; i++ {
		data, err := ParseNumeral(tokens[3+i])
		if err != nil {
			return &vmerr.DirectiveError{Line: lineNo, Message: "bad data: " + err.Error()}
		}
		if data < -128 || data > 255 {
			return &vmerr.DirectiveError{Line: lineNo, Message: "data must be in range -128 to 255"}
		}
		if err := memory.Write(int(addr+i), int16(data)); err != nil {
			return &vmerr.DirectiveError{Line: lineNo, Message: err.Error()}
		}
	}
	return nil
}
