/*
Package vram implements a read-only copy of the 4 MiB local memory of the
PlayStation 2 Graphics Synthesizer as captured in a GS dump.

The memory is addressed as 1048576 32-bit little-endian words. Each word is
one PSMCT32 pixel with red in the lowest byte and alpha in the highest.
*/
package vram

import (
	"encoding/binary"
	"errors"
	"image/color"
	"io"
)

const (
	// Size is the size in bytes of GS local memory
	Size = 4 << (10 * 2)

	// BytesPerPixel is the size of one PSMCT32 pixel
	BytesPerPixel = 4

	// Pixels is the number of PSMCT32 pixels that fit in GS local memory
	Pixels = Size / BytesPerPixel
)

var (
	// ErrOutOfBounds is returned when a read would fall outside the image
	ErrOutOfBounds = errors.New("vram: read out of bounds")
	// ErrTooLarge is returned when more than Size bytes are provided
	ErrTooLarge = errors.New("vram: too much memory data")
)

// Pixel is a packed 32-bit pixel value.
type Pixel uint32

// R returns the red channel
func (p Pixel) R() uint8 { return uint8(p) }

// G returns the green channel
func (p Pixel) G() uint8 { return uint8(p >> 8) }

// B returns the blue channel
func (p Pixel) B() uint8 { return uint8(p >> 16) }

// A returns the alpha channel
func (p Pixel) A() uint8 { return uint8(p >> 24) }

// NRGBA returns the pixel as a non-premultiplied color. The GS does not
// premultiply alpha so the channels are returned untouched.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{p.R(), p.G(), p.B(), p.A()}
}

// Image is a fixed size copy of GS local memory. Its length is always Size
// and it is never modified once constructed so it is safe to share between
// goroutines.
type Image struct {
	b []byte
}

// Load reads up to Size bytes from r. If r runs out early the remainder of
// the image is zero-filled; the number of bytes actually read is returned so
// the caller can decide whether to warn about it.
func Load(r io.Reader) (*Image, int64, error) {
	m := &Image{
		b: make([]byte, Size),
	}
	n, err := io.ReadFull(r, m.b)
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
		return m, int64(n), nil
	default:
		return nil, int64(n), err
	}
}

// FromBytes returns an Image holding a copy of b, zero-padded to Size.
func FromBytes(b []byte) (*Image, error) {
	m := new(Image)
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalBinary replaces the contents of the image with a copy of b. It
// exists to satisfy encoding.BinaryUnmarshaler; use FromBytes instead.
func (m *Image) UnmarshalBinary(b []byte) error {
	if len(b) > Size {
		return ErrTooLarge
	}
	m.b = make([]byte, Size)
	copy(m.b, b)
	return nil
}

// MarshalBinary returns a copy of the image contents
func (m *Image) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), m.b...), nil
}

// Len returns the length of the image in bytes, which is always Size
func (m *Image) Len() int {
	return len(m.b)
}

// Pixel32 returns the little-endian 32-bit pixel starting at byte offset.
func (m *Image) Pixel32(offset int) (Pixel, error) {
	if offset < 0 || offset > len(m.b)-BytesPerPixel {
		return 0, ErrOutOfBounds
	}
	return Pixel(binary.LittleEndian.Uint32(m.b[offset:])), nil
}

// WriteTo writes the raw image to w, implementing io.WriterTo.
func (m *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m.b)
	return int64(n), err
}
