package vram

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tables := []struct {
		name  string
		input []byte
		n     int64
	}{
		{"empty", nil, 0},
		{"short", bytes.Repeat([]byte{0xaa}, 1000), 1000},
		{"exact", bytes.Repeat([]byte{0xaa}, Size), Size},
		{"long", bytes.Repeat([]byte{0xaa}, Size+100), Size},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m, n, err := Load(bytes.NewReader(table.input))
			require.Nil(t, err)
			assert.Equal(t, table.n, n)
			assert.Equal(t, Size, m.Len())

			b, err := m.MarshalBinary()
			require.Nil(t, err)
			assert.Equal(t, bytes.Repeat([]byte{0xaa}, int(table.n)), b[:table.n])
			assert.Equal(t, make([]byte, Size-int(table.n)), b[table.n:])
		})
	}
}

func TestLoadError(t *testing.T) {
	errRead := errors.New("read failed")
	_, _, err := Load(iotest.ErrReader(errRead))
	assert.Equal(t, errRead, err)
}

func TestFromBytes(t *testing.T) {
	_, err := FromBytes(make([]byte, Size+1))
	assert.Equal(t, ErrTooLarge, err)

	m, err := FromBytes([]byte{1, 2, 3})
	require.Nil(t, err)
	assert.Equal(t, Size, m.Len())
}

func TestPixel32(t *testing.T) {
	b := make([]byte, Size)
	copy(b, []byte{0x11, 0x22, 0x33, 0x44})
	copy(b[Size-4:], []byte{0xde, 0xad, 0xbe, 0xef})

	m, err := FromBytes(b)
	require.Nil(t, err)

	p, err := m.Pixel32(0)
	require.Nil(t, err)
	assert.Equal(t, Pixel(0x44332211), p)
	assert.Equal(t, color.NRGBA{0x11, 0x22, 0x33, 0x44}, p.NRGBA())

	p, err = m.Pixel32(Size - 4)
	require.Nil(t, err)
	assert.Equal(t, uint8(0xde), p.R())
	assert.Equal(t, uint8(0xad), p.G())
	assert.Equal(t, uint8(0xbe), p.B())
	assert.Equal(t, uint8(0xef), p.A())

	for _, offset := range []int{-1, Size - 3, Size, Size + 4} {
		_, err := m.Pixel32(offset)
		assert.Equal(t, ErrOutOfBounds, err, "offset %d", offset)
	}
}

func TestImmutable(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	m, err := FromBytes(b)
	require.Nil(t, err)

	b[0] = 0xff
	out, err := m.MarshalBinary()
	require.Nil(t, err)
	out[1] = 0xff

	p, err := m.Pixel32(0)
	require.Nil(t, err)
	assert.Equal(t, Pixel(0x04030201), p)
}
