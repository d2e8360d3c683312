/*
Package image renders the PSMCT32 contents of GS local memory as an image and
writes it out in a standard format.

GS local memory holds 1048576 32-bit pixels tiled in 64 by 32 pixel pages.
Decoding treats the whole of memory as a single framebuffer of the requested
width, which must be a whole number of pages wide. Unless a height is given it
is however many complete rows fit, so only widths that evenly divide 1048576
show every pixel and only widths that are a power of two keep every page
inside memory.
*/
package image

import (
	"github.com/bodgit/gsdump/swizzle"
	"github.com/bodgit/gsdump/vram"
)

const (
	bytesPerPixel = vram.BytesPerPixel
	numPixels     = vram.Pixels
	widthAlign    = swizzle.PageWidth
	opaque        = 0xff
)

// Options controls how GS local memory is rendered.
type Options struct {
	// Width is the framebuffer width in pixels; a positive multiple of 64
	Width int
	// Height is the framebuffer height in pixels, zero uses as many rows
	// as fit in GS local memory
	Height int
	// Base is the framebuffer base pointer in 64 pixel blocks
	Base uint32
	// ForceAlpha sets every alpha channel to fully opaque
	ForceAlpha bool
	// Workers is the number of goroutines used, one or less decodes on
	// the calling goroutine
	Workers int
}
