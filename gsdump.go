/*
Package gsdump is a library for rendering the contents of GS local memory
captured in PCSX2 GS dump files.
*/
package gsdump

import (
	"log"

	"github.com/bodgit/gsdump/dump"
	"github.com/bodgit/gsdump/image"
	"github.com/bodgit/gsdump/vram"
)

// Options combines the rendering and encoding options used for every
// conversion.
type Options struct {
	image.Options
	Encoder image.EncoderOptions

	// Jobs is the number of dumps Scan converts at once
	Jobs int
}

// GSDump converts GS dumps to images, optionally recording each conversion
// in a catalog.
type GSDump struct {
	db     *DumpDB
	logger *log.Logger
}

// New returns a GSDump. db may be nil in which case nothing is catalogued.
func New(db *DumpDB, logger *log.Logger) *GSDump {
	return &GSDump{
		db:     db,
		logger: logger,
	}
}

// Convert renders the GS local memory in the dump input to the image file
// output.
func (g *GSDump) Convert(input, output string, o *Options) error {
	// Check the options before doing any work
	c, err := image.DecodeConfig(&o.Options)
	if err != nil {
		return err
	}

	g.logger.Printf("Reading VRAM from: %s\n", input)

	d, err := dump.Open(input)
	if err != nil {
		return err
	}

	g.logger.Printf("VRAM offset: %d bytes (%#x)\n", d.Offset(), d.Offset())
	if d.Serial != "" {
		g.logger.Printf("Serial: %s, CRC: %08X\n", d.Serial, d.Header.CRC)
	}
	if d.Short {
		g.logger.Printf("Warning: \"%s\" contains less than %d bytes of VRAM, padded with zeroes\n", input, vram.Size)
	}

	g.logger.Printf("Image dimensions: %dx%d\n", c.Width, c.Height)
	if o.ForceAlpha {
		g.logger.Println("Alpha channel: Forced to 255")
	}

	m, err := image.Decode(d.VRAM, &o.Options)
	if err != nil {
		return err
	}

	g.logger.Printf("Writing %s to: %s\n", o.Encoder.Format, output)

	if err := image.Save(output, m, &o.Encoder); err != nil {
		return err
	}

	return g.record(d, output, c.Height, o)
}

func (g *GSDump) record(d *dump.Dump, output string, height int, o *Options) error {
	if g.db == nil {
		return nil
	}

	sum, err := sha1VRAM(d.VRAM)
	if err != nil {
		return err
	}

	id, err := g.db.AddDump(sum, d)
	if err != nil {
		return err
	}

	return g.db.AddConversion(id, Conversion{
		Output:     output,
		Width:      o.Width,
		Height:     height,
		Base:       o.Base,
		ForceAlpha: o.ForceAlpha,
	})
}
