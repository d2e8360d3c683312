package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/ericpauley/go-quantize/quantize"
)

var (
	// ErrFormat is returned for an unknown output format
	ErrFormat = errors.New("image: unknown format")
	// ErrColors is returned when the palette size is out of range
	ErrColors = errors.New("image: colors must be between 2 and 256")
)

// Format is an output image format
type Format int

// Supported output formats
const (
	PNG Format = iota
	JPEG
	BMP
)

const (
	// DefaultQuality is the JPEG quality used when none is given
	DefaultQuality = 90
	maxColors      = 256
)

var formats = map[string]Format{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"bmp":  BMP,
}

// ParseFormat returns the Format with the given name or file extension,
// ignoring case and any leading dot
func ParseFormat(name string) (Format, error) {
	if f, ok := formats[strings.ToLower(strings.TrimPrefix(name, "."))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w %q", ErrFormat, name)
}

// FormatFromFilename returns the Format implied by the extension of file
func FormatFromFilename(file string) (Format, error) {
	return ParseFormat(filepath.Ext(file))
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the usual file extension for f including the dot
func (f Format) Extension() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + f.String()
}

// EncoderOptions controls how an image is written.
type EncoderOptions struct {
	Format Format
	// Quality is the JPEG quality, zero means DefaultQuality
	Quality int
	// Colors reduces the image to a palette of this many colors, zero
	// keeps the image in true color
	Colors int
}

func (o *EncoderOptions) encoder() (imgio.Encoder, error) {
	switch o.Format {
	case PNG:
		return imgio.PNGEncoder(), nil
	case JPEG:
		q := o.Quality
		if q == 0 {
			q = DefaultQuality
		}
		return imgio.JPEGEncoder(q), nil
	case BMP:
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("%w %v", ErrFormat, o.Format)
	}
}

func reduce(m image.Image, colors int) (image.Image, error) {
	switch {
	case colors == 0:
		return m, nil
	case colors < 2 || colors > maxColors:
		return nil, fmt.Errorf("%w (got %d)", ErrColors, colors)
	}

	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm, nil
}

func prepare(m image.Image, o *EncoderOptions) (image.Image, imgio.Encoder, error) {
	enc, err := o.encoder()
	if err != nil {
		return nil, nil, err
	}
	if m, err = reduce(m, o.Colors); err != nil {
		return nil, nil, err
	}
	return m, enc, nil
}

// Encode writes m to w using the format described by o.
func Encode(w io.Writer, m image.Image, o *EncoderOptions) error {
	m, enc, err := prepare(m, o)
	if err != nil {
		return err
	}
	return enc(w, m)
}

// Save writes m to file using the format described by o.
func Save(file string, m image.Image, o *EncoderOptions) error {
	m, enc, err := prepare(m, o)
	if err != nil {
		return err
	}
	return imgio.Save(file, m, enc)
}
