package swizzle

import (
	"errors"

	"github.com/bodgit/gsdump/vram"
)

var (
	// ErrZeroStride is returned when the buffer width is zero
	ErrZeroStride = errors.New("swizzle: zero buffer width")
	// ErrOutOfBounds is returned when a coordinate translates to an
	// address outside of GS local memory
	ErrOutOfBounds = errors.New("swizzle: address out of bounds")
)

// PixelAddress32 returns the address, in 32-bit words, of pixel (x, y) in a
// PSMCT32 buffer starting at block base with a width of stride pages.
//
// The base pointer is in 64 pixel block units as used by the FBP and TBP
// registers, so a base that is a multiple of 32 starts on a page boundary.
func PixelAddress32(x, y int, base, stride uint32) (uint32, error) {
	if stride == 0 {
		return 0, ErrZeroStride
	}
	if x < 0 || y < 0 {
		return 0, ErrOutOfBounds
	}

	// With a stride of at least one either page coordinate alone can put
	// the pixel past the end of memory, checking them first also keeps the
	// arithmetic below from overflowing
	pageX, pageY := x/pageWidth, y/pageHeight
	if pageX >= numPages || pageY >= numPages {
		return 0, ErrOutOfBounds
	}
	page := uint64(pageY)*uint64(stride) + uint64(pageX)

	px, py := x%pageWidth, y%pageHeight
	block := blockTable32[py/blockHeight][px/blockWidth]
	slot := columnTable32[py%blockHeight][px%blockWidth]

	addr := (uint64(base)+page*blocksPerPage+uint64(block))*pixelsPerBlock + uint64(slot)
	if addr >= vram.Pixels {
		return 0, ErrOutOfBounds
	}

	return uint32(addr), nil
}

// Offset32 is like PixelAddress32 but returns the byte offset of the pixel.
func Offset32(x, y int, base, stride uint32) (int, error) {
	addr, err := PixelAddress32(x, y, base, stride)
	if err != nil {
		return 0, err
	}
	return int(addr) * vram.BytesPerPixel, nil
}
