package gsdump

import (
	"crypto/sha1"
	"fmt"

	"github.com/bodgit/gsdump/vram"
)

// sha1VRAM returns the checksum used to identify a dump in the catalog. Only
// GS local memory is hashed so dumps of the same frame recorded with
// different headers are considered the same.
func sha1VRAM(m *vram.Image) (string, error) {
	h := sha1.New()
	if _, err := m.WriteTo(h); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}
