/*
Package dump implements a reader for PCSX2 GS dump files.

A dump starts with a 32-bit 0xFFFFFFFF marker where older dumps stored the
game CRC, followed by the 32-bit size of the header blob. The blob starts with
a fixed 36 byte header giving the location of the game serial and an RGBA
screenshot within the blob. The frozen GS state follows the blob and after 509
bytes of register state comes the 4 MiB of GS local memory. All values are
little-endian.
*/
package dump

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/bodgit/gsdump/vram"
)

const (
	// Magic is the marker expected at the start of every dump
	Magic = 0xffffffff

	// MetadataSize is the number of bytes of frozen state that precede GS
	// local memory
	MetadataSize = 509

	preambleLength = 8
	maxHeaderSize  = 64 << (10 * 2)
)

// ErrInvalidContainer is returned when the file is not a GS dump or ends
// before GS local memory starts
var ErrInvalidContainer = errors.New("dump: invalid container")

// Dump is a decoded GS dump.
type Dump struct {
	Header     Header
	HeaderSize uint32

	// Serial is the game serial, empty if the dump doesn't record one
	Serial string
	// Screenshot is the screenshot taken when the dump was created, nil if
	// the dump doesn't contain one
	Screenshot *image.NRGBA

	// VRAM is the captured GS local memory
	VRAM *vram.Image
	// Short is true if the file ended before all of GS local memory was
	// read and the remainder was zero-filled
	Short bool
}

// Offset returns the byte offset of GS local memory within the file
func (d *Dump) Offset() int64 {
	return preambleLength + int64(d.HeaderSize) + MetadataSize
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func invalid(err error) error {
	if err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: unexpected end of file", ErrInvalidContainer)
	}
	return err
}

type decoder struct {
	r    io.Reader
	d    *Dump
	blob []byte
}

func (d *decoder) readPreamble() error {
	var tmp [preambleLength]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		return invalid(err)
	}

	if magic := binary.LittleEndian.Uint32(tmp[0:]); magic != Magic {
		return fmt.Errorf("%w: bad marker %#08x", ErrInvalidContainer, magic)
	}

	d.d.HeaderSize = binary.LittleEndian.Uint32(tmp[4:])
	switch {
	case d.d.HeaderSize < HeaderLength:
		return fmt.Errorf("%w: header size %d smaller than header", ErrInvalidContainer, d.d.HeaderSize)
	case d.d.HeaderSize > maxHeaderSize:
		return fmt.Errorf("%w: header size %d too large", ErrInvalidContainer, d.d.HeaderSize)
	}

	return nil
}

func (d *decoder) readHeader() error {
	d.blob = make([]byte, d.d.HeaderSize)
	if err := readFull(d.r, d.blob); err != nil {
		return invalid(err)
	}

	if err := d.d.Header.UnmarshalBinary(d.blob); err != nil {
		return err
	}

	h := &d.d.Header

	if b := field(d.blob, h.SerialOffset, h.SerialSize); b != nil {
		d.d.Serial = strings.TrimRight(string(b), "\x00")
	}

	// Screenshot pixels are stored as 32-bit RGBA
	w, ht := int(h.ScreenshotWidth), int(h.ScreenshotHeight)
	if b := field(d.blob, h.ScreenshotOffset, h.ScreenshotSize); b != nil && w > 0 && ht > 0 && len(b) == w*ht*4 {
		m := image.NewNRGBA(image.Rect(0, 0, w, ht))
		copy(m.Pix, b)
		d.d.Screenshot = m
	}

	return nil
}

func (d *decoder) readVRAM() error {
	// Skip the frozen register state
	if _, err := io.CopyN(io.Discard, d.r, MetadataSize); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return invalid(err)
	}

	m, n, err := vram.Load(d.r)
	if err != nil {
		return err
	}
	d.d.VRAM = m
	d.d.Short = n < vram.Size

	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r
	d.d = new(Dump)

	if err := d.readPreamble(); err != nil {
		return err
	}

	if err := d.readHeader(); err != nil {
		return err
	}

	return d.readVRAM()
}

// Decode reads a GS dump from r.
func Decode(r io.Reader) (*Dump, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return d.d, nil
}

// Open reads the GS dump stored in file.
func Open(file string) (*Dump, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}
