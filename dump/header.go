package dump

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// HeaderLength is the size in bytes of the fixed part of the dump header
const HeaderLength = 36

var errShortHeader = errors.New("dump: header too short")

// Header is the fixed structure found at the start of the header blob. The
// offsets are relative to the start of the header.
type Header struct {
	StateVersion     uint32
	StateSize        uint32
	SerialOffset     uint32
	SerialSize       uint32
	CRC              uint32
	ScreenshotWidth  uint32
	ScreenshotHeight uint32
	ScreenshotOffset uint32
	ScreenshotSize   uint32
}

// MarshalBinary encodes the header into its little-endian form
func (h *Header) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := binary.Write(b, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes the header from the first HeaderLength bytes of b
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderLength {
		return errShortHeader
	}
	return binary.Read(bytes.NewReader(b[:HeaderLength]), binary.LittleEndian, h)
}

// field returns the slice of blob described by offset and size, or nil if it
// doesn't fit
func field(blob []byte, offset, size uint32) []byte {
	end := uint64(offset) + uint64(size)
	if size == 0 || end > uint64(len(blob)) {
		return nil
	}
	return blob[offset:end]
}
