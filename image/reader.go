package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/gsdump/swizzle"
	"github.com/bodgit/gsdump/vram"
	"golang.org/x/sync/errgroup"
)

// ErrWidth is returned when the requested width is not a positive multiple
// of the page width
var ErrWidth = errors.New("image: width must be a positive multiple of 64")

// ErrHeight is returned when the requested height is negative
var ErrHeight = errors.New("image: height must not be negative")

type decoder struct {
	m *vram.Image
	o Options

	stride uint32
	image  *image.NRGBA
}

func (d *decoder) config(o *Options) (image.Config, error) {
	if o.Width <= 0 || o.Width%widthAlign != 0 {
		return image.Config{}, fmt.Errorf("%w (got %d)", ErrWidth, o.Width)
	}
	// Anything wider would have no complete rows
	if o.Width > numPixels {
		return image.Config{}, fmt.Errorf("%w (got %d)", ErrWidth, o.Width)
	}

	if o.Height < 0 {
		return image.Config{}, fmt.Errorf("%w (got %d)", ErrHeight, o.Height)
	}

	d.o = *o
	d.stride = uint32(o.Width / swizzle.PageWidth)

	height := o.Height
	if height == 0 {
		height = numPixels / o.Width
	}

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      o.Width,
		Height:     height,
	}, nil
}

func (d *decoder) decodeRows(y0, y1 int) error {
	width := d.image.Rect.Dx()
	for y := y0; y < y1; y++ {
		for x := 0; x < width; x++ {
			offset, err := swizzle.Offset32(x, y, d.o.Base, d.stride)
			if err != nil {
				return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}

			p, err := d.m.Pixel32(offset)
			if err != nil {
				return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}

			i := (y*width + x) * bytesPerPixel
			d.image.Pix[i+0] = p.R()
			d.image.Pix[i+1] = p.G()
			d.image.Pix[i+2] = p.B()
			if d.o.ForceAlpha {
				d.image.Pix[i+3] = opaque
			} else {
				d.image.Pix[i+3] = p.A()
			}
		}
	}
	return nil
}

func (d *decoder) decode(m *vram.Image, o *Options) error {
	c, err := d.config(o)
	if err != nil {
		return err
	}

	d.m = m
	d.image = image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))

	if d.o.Workers <= 1 {
		return d.decodeRows(0, c.Height)
	}

	// Every pixel is independent so split the image into horizontal bands
	band := (c.Height + d.o.Workers - 1) / d.o.Workers

	var g errgroup.Group
	for y := 0; y < c.Height; y += band {
		y0, y1 := y, y+band
		if y1 > c.Height {
			y1 = c.Height
		}
		g.Go(func() error {
			return d.decodeRows(y0, y1)
		})
	}

	return g.Wait()
}

// Decode renders GS local memory m as a PSMCT32 framebuffer.
func Decode(m *vram.Image, o *Options) (*image.NRGBA, error) {
	var d decoder
	if err := d.decode(m, o); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of the image that
// Decode would return without decoding anything.
func DecodeConfig(o *Options) (image.Config, error) {
	var d decoder
	return d.config(o)
}
