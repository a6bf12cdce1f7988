package cpu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"octocore/asm"
	"octocore/vmerr"
)

func assembleString(t *testing.T, contents string) *CPU {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.asm")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	program, memory, labels, err := asm.Assemble(path)
	assert.NoError(t, err)

	c, err := New(program, memory, labels)
	assert.NoError(t, err)
	return c
}

func runToEnd(t *testing.T, c *CPU) {
	t.Helper()
	for {
		err := c.Step()
		if err == vmerr.ErrEndOfProgram {
			return
		}
		assert.NoError(t, err)
	}
}

func TestMoveAndLoad(t *testing.T) {
	c := assembleString(t, "LDI A, 0x2A\nMOV B, A\n")
	runToEnd(t, c)

	assert.Equal(t, uint8(0x2A), c.A.Value())
	assert.Equal(t, uint8(0x2A), c.B.Value())
	assert.False(t, c.Zero)
	assert.Equal(t, 2, c.PC())
}

func TestMemoryRoundTrip(t *testing.T) {
	c := assembleString(t, ".byte 0x010 99\nLDI X, 0x010\nRDM A, X\nINC X\nWRM X, A\n")
	runToEnd(t, c)

	v, err := c.MemoryRead(0x10)
	assert.NoError(t, err)
	assert.Equal(t, int16(99), v)
	v, err = c.MemoryRead(0x11)
	assert.NoError(t, err)
	assert.Equal(t, int16(99), v)
	assert.Equal(t, uint16(0x11), c.X.Value())
	assert.Equal(t, uint8(99), c.A.Value())
}

func TestConditionalCountdownLoop(t *testing.T) {
	c := assembleString(t, "LDI A, 0x03\nloop:\nSUBI A, A, 1\nCMPI A, 0\nJNZ loop\n")
	runToEnd(t, c)

	assert.Equal(t, uint8(0), c.A.Value())
	assert.True(t, c.Zero)
}

func TestJumpOnNegative(t *testing.T) {
	c := assembleString(t, "LDI A, 0x01\nLDI B, 0x02\nCMP A, B\nJNE neg\nLDI C, 0xAA\nneg:\nLDI D, 0xBB\n")
	runToEnd(t, c)

	assert.Equal(t, uint8(0), c.C.Value())
	assert.Equal(t, uint8(0xBB), c.D.Value())
}

func TestBitwiseZeroFlagDoesNotTouchNegative(t *testing.T) {
	c := assembleString(t, "LDI A, 0xF0\nLDI B, 0x0F\nANDL C, A, B\n")
	before := c.Negative
	runToEnd(t, c)

	assert.Equal(t, uint8(0), c.C.Value())
	assert.True(t, c.Zero)
	assert.Equal(t, before, c.Negative)
}

func TestShiftFlags(t *testing.T) {
	c := assembleString(t, "LDI A, 0x01\nLSL B, A, 3\n")
	runToEnd(t, c)

	assert.Equal(t, uint8(0x08), c.B.Value())
	assert.False(t, c.Zero)
}

func TestLdiMovCmpRoundTrip(t *testing.T) {
	// Z is true on equality, as spec.md's round-trip law states. N is true
	// here too: the preserved `val < 127` defect (spec.md §9) makes N true
	// for a cmp result of 0, not false as the law's prose claims -- the
	// literal semantics in §4.5 govern over that inconsistent example.
	c := assembleString(t, "LDI A, 0x10\nMOV B, A\nCMP A, B\n")
	runToEnd(t, c)
	assert.True(t, c.Zero)
	assert.True(t, c.Negative)
}

func TestCmpiZero(t *testing.T) {
	c := assembleString(t, "LDI A, 0\nCMPI A, 0\n")
	runToEnd(t, c)
	assert.True(t, c.Zero)
}

func TestAddOverflowWraps(t *testing.T) {
	c := assembleString(t, "LDI A, 0xFF\nLDI B, 0x01\nADD C, A, B\n")
	runToEnd(t, c)
	assert.Equal(t, uint8(0), c.C.Value())
	assert.True(t, c.Zero)
}

func TestSubiUnderflowWraps(t *testing.T) {
	c := assembleString(t, "LDI A, 0\nSUBI A, A, 1\n")
	runToEnd(t, c)
	assert.Equal(t, uint8(255), c.A.Value())
}

func TestStepDoesNotAdvancePCOnFailure(t *testing.T) {
	c := assembleString(t, "JMP nowhere\n")
	pcBefore := c.PC()
	err := c.Step()
	assert.Error(t, err)
	assert.Equal(t, pcBefore, c.PC())
}

func TestRenderStateShowsExecutionOver(t *testing.T) {
	c := assembleString(t, "NOP\n")
	runToEnd(t, c)
	assert.Contains(t, c.RenderState(), "EXECUTION OVER")
}

func TestRenderStateShowsNextInstruction(t *testing.T) {
	c := assembleString(t, "NOP\nNOP\n")
	assert.Contains(t, c.RenderState(), "NOP")
}

func TestLabelErrorForMissingTarget(t *testing.T) {
	c := assembleString(t, "JMP ghost\n")
	var labelErr *vmerr.LabelError
	err := c.Step()
	assert.ErrorAs(t, err, &labelErr)
	assert.Equal(t, "ghost", labelErr.Label)
}

func TestMovAcrossRegisterWidthsIsTypeError(t *testing.T) {
	c := assembleString(t, "LDI A, 1\nLDI X, 2\nMOV A, X\n")
	assert.NoError(t, c.Step())
	assert.NoError(t, c.Step())

	var typeErr *vmerr.TypeError
	err := c.Step()
	assert.ErrorAs(t, err, &typeErr)
}

func TestIncDecRejectByteRegisters(t *testing.T) {
	c := assembleString(t, "INC A\n")
	var typeErr *vmerr.TypeError
	err := c.Step()
	assert.ErrorAs(t, err, &typeErr)
}
