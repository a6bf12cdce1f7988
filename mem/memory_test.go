package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemorySizeIsAlways1024(t *testing.T) {
	m := New()
	assert.Equal(t, Size, len(m))
}

func TestMemoryReadWriteRoundTrip(t *testing.T) {
	m := New()
	assert.NoError(t, m.Write(0x010, 99))
	v, err := m.Read(0x010)
	assert.NoError(t, err)
	assert.Equal(t, int16(99), v)
}

func TestMemoryOutOfRange(t *testing.T) {
	m := New()
	assert.Error(t, m.Write(1024, 1))
	assert.Error(t, m.Write(-1, 1))
	_, err := m.Read(1024)
	assert.Error(t, err)
}

func TestMemoryHoldsSignedByteRange(t *testing.T) {
	m := New()
	assert.NoError(t, m.Write(0, -128))
	assert.NoError(t, m.Write(1, 255))
	v0, _ := m.Read(0)
	v1, _ := m.Read(1)
	assert.Equal(t, int16(-128), v0)
	assert.Equal(t, int16(255), v1)
}
