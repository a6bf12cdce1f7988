package asm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.asm")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestAssembleMoveAndLoad(t *testing.T) {
	path := writeSource(t, "LDI A, 0x2A\nMOV B, A\n")
	program, memory, labels, err := Assemble(path)
	assert.NoError(t, err)
	assert.Len(t, program, 2)
	assert.Empty(t, labels)
	assert.NotNil(t, memory)
}

func TestAssembleCommentsAndBlankLines(t *testing.T) {
	path := writeSource(t, "-- a comment\n\n   \nNOP -- trailing comment\n")
	program, _, _, err := Assemble(path)
	assert.NoError(t, err)
	assert.Len(t, program, 1)
	assert.Equal(t, NOP, program[0].Op)
}

func TestAssembleByteDirective(t *testing.T) {
	path := writeSource(t, ".byte 0x010 99\nNOP\n")
	_, memory, _, err := Assemble(path)
	assert.NoError(t, err)
	v, err := memory.Read(0x10)
	assert.NoError(t, err)
	assert.Equal(t, int16(99), v)
}

func TestAssembleListDirective(t *testing.T) {
	path := writeSource(t, ".list 3 0x3FD 1 2 3\nNOP\n")
	_, memory, _, err := Assemble(path)
	assert.NoError(t, err)
	v, _ := memory.Read(0x3FD)
	assert.Equal(t, int16(1), v)
	v, _ = memory.Read(0x3FF)
	assert.Equal(t, int16(3), v)
}

func TestAssembleListDirectiveRejectsOutOfRange(t *testing.T) {
	path := writeSource(t, ".list 5 0x3FD 1 2 3 4 5\nNOP\n")
	_, _, _, err := Assemble(path)
	assert.Error(t, err)
}

func TestAssembleListDirectiveLengthIsDecimalOnly(t *testing.T) {
	// unlike addr and the data items, length does not accept a 0x/0b prefix.
	path := writeSource(t, ".list 0x3 0x10 1 2 3\nNOP\n")
	_, _, _, err := Assemble(path)
	assert.Error(t, err)
}

func TestAssembleUnknownDirectiveIsIgnored(t *testing.T) {
	path := writeSource(t, ".weird 1 2 3\nNOP\n")
	program, _, labels, err := Assemble(path)
	assert.NoError(t, err)
	assert.Len(t, program, 1)
	assert.Empty(t, labels)
}

func TestAssembleLabelsAndDuplicates(t *testing.T) {
	path := writeSource(t, "LDI A, 0x03\nloop:\nSUBI A, A, 1\nCMPI A, 0\nJNZ loop\n")
	program, _, labels, err := Assemble(path)
	assert.NoError(t, err)
	assert.Len(t, program, 4)
	assert.Equal(t, 1, labels["loop"])

	dup := writeSource(t, "loop:\nNOP\nloop:\nNOP\n")
	_, _, _, err = Assemble(dup)
	assert.Error(t, err)
}
