package image

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tables := []struct {
		name   string
		format Format
		err    error
	}{
		{"png", PNG, nil},
		{".PNG", PNG, nil},
		{"jpg", JPEG, nil},
		{"jpeg", JPEG, nil},
		{".bmp", BMP, nil},
		{"gif", 0, ErrFormat},
		{"", 0, ErrFormat},
	}

	for _, table := range tables {
		f, err := ParseFormat(table.name)
		if table.err != nil {
			assert.True(t, errors.Is(err, table.err), table.name)
			continue
		}
		require.Nil(t, err)
		assert.Equal(t, table.format, f, table.name)
	}

	f, err := FormatFromFilename("/tmp/out.Jpg")
	require.Nil(t, err)
	assert.Equal(t, JPEG, f)
	assert.Equal(t, ".jpg", f.Extension())
	assert.Equal(t, ".png", PNG.Extension())
	assert.Equal(t, "bmp", BMP.String())
}

func TestEncodePNG(t *testing.T) {
	m, err := Decode(random(t), &Options{Width: 256, Height: 64})
	require.Nil(t, err)

	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, m, &EncoderOptions{Format: PNG}))

	out, err := png.Decode(b)
	require.Nil(t, err)

	// Straight alpha must survive untouched
	nrgba, ok := out.(*image.NRGBA)
	require.True(t, ok, "%T", out)
	assert.Equal(t, m.Pix, nrgba.Pix)
}

func TestEncodeJPEG(t *testing.T) {
	m, err := Decode(zeroes(t), &Options{Width: 128, Height: 32, ForceAlpha: true})
	require.Nil(t, err)

	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, m, &EncoderOptions{Format: JPEG, Quality: 50}))

	c, err := jpeg.DecodeConfig(b)
	require.Nil(t, err)
	assert.Equal(t, 128, c.Width)
	assert.Equal(t, 32, c.Height)
}

func TestEncodeBMP(t *testing.T) {
	m, err := Decode(zeroes(t), &Options{Width: 64, Height: 8})
	require.Nil(t, err)

	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, m, &EncoderOptions{Format: BMP}))
	assert.Equal(t, []byte("BM"), b.Bytes()[:2])
}

func TestEncodeColors(t *testing.T) {
	m, err := Decode(random(t), &Options{Width: 64, Height: 64, ForceAlpha: true})
	require.Nil(t, err)

	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, m, &EncoderOptions{Format: PNG, Colors: 16}))

	out, err := png.Decode(b)
	require.Nil(t, err)

	pm, ok := out.(*image.Paletted)
	require.True(t, ok, "%T", out)
	assert.LessOrEqual(t, len(pm.Palette), 16)
	assert.Equal(t, m.Bounds(), pm.Bounds())

	for _, colors := range []int{-1, 1, 257} {
		err := Encode(new(bytes.Buffer), m, &EncoderOptions{Colors: colors})
		assert.True(t, errors.Is(err, ErrColors), "%d colors", colors)
	}

	err = Encode(new(bytes.Buffer), m, &EncoderOptions{Format: Format(42)})
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestSave(t *testing.T) {
	m, err := Decode(random(t), &Options{Width: 128, Height: 16})
	require.Nil(t, err)

	file := filepath.Join(t.TempDir(), "out.png")
	require.Nil(t, Save(file, m, &EncoderOptions{Format: PNG}))

	out, err := imgio.Open(file)
	require.Nil(t, err)
	assert.Equal(t, m.Bounds(), out.Bounds())
}
