/*
Package swizzle implements the PSMCT32 address translation used by the
PlayStation 2 Graphics Synthesizer.

GS local memory is divided into 8 KiB pages which, for 32-bit pixels, hold a
64 by 32 pixel rectangle. Each page is split into thirty-two 8 by 8 pixel
blocks which are not stored in raster order, and the 64 pixels of each block
are themselves arranged in four 2 pixel high columns. Pages are laid out left
to right then top to bottom, with the buffer width given in 64 pixel units.
*/
package swizzle

import "github.com/bodgit/gsdump/vram"

const (
	pageWidth      = 64
	pageHeight     = 32
	blockWidth     = 8
	blockHeight    = 8
	blocksX        = pageWidth / blockWidth
	blocksY        = pageHeight / blockHeight
	blocksPerPage  = blocksX * blocksY
	pixelsPerBlock = blockWidth * blockHeight
	numPages       = vram.Pixels / (blocksPerPage * pixelsPerBlock)

	// PageWidth is the width of a PSMCT32 page in pixels, and therefore the
	// unit in which buffer widths are measured
	PageWidth = pageWidth
	// PageHeight is the height of a PSMCT32 page in pixels
	PageHeight = pageHeight
	// BlockPixels is the number of pixels in a block, the unit in which base
	// pointers are measured
	BlockPixels = pixelsPerBlock
)

// Physical block index within a page, indexed by block row and column.
var blockTable32 = [blocksY][blocksX]uint32{
	{0, 1, 4, 5, 16, 17, 20, 21},
	{2, 3, 6, 7, 18, 19, 22, 23},
	{8, 9, 12, 13, 24, 25, 28, 29},
	{10, 11, 14, 15, 26, 27, 30, 31},
}

// Physical pixel slot within a block, indexed by pixel row and column.
var columnTable32 = [blockHeight][blockWidth]uint32{
	{0, 1, 4, 5, 8, 9, 12, 13},
	{2, 3, 6, 7, 10, 11, 14, 15},
	{16, 17, 20, 21, 24, 25, 28, 29},
	{18, 19, 22, 23, 26, 27, 30, 31},
	{32, 33, 36, 37, 40, 41, 44, 45},
	{34, 35, 38, 39, 42, 43, 46, 47},
	{48, 49, 52, 53, 56, 57, 60, 61},
	{50, 51, 54, 55, 58, 59, 62, 63},
}
