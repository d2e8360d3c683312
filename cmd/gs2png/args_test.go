package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/bodgit/gsdump/dump"
	"github.com/bodgit/gsdump/vram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestReorderArgs(t *testing.T) {
	app := newApp()
	flags := append(app.Flags, cli.HelpFlag, cli.VersionFlag)

	tables := []struct {
		name string
		args []string
		want []string
	}{
		{
			"flags first",
			[]string{"gs2png", "-w", "512", "in.gs", "out.png"},
			[]string{"gs2png", "-w", "512", "in.gs", "out.png"},
		},
		{
			"flags last",
			[]string{"gs2png", "in.gs", "out.png", "--width", "512"},
			[]string{"gs2png", "--width", "512", "in.gs", "out.png"},
		},
		{
			"mixed",
			[]string{"gs2png", "in.gs", "out.png", "-w", "512", "--force-alpha"},
			[]string{"gs2png", "-w", "512", "--force-alpha", "in.gs", "out.png"},
		},
		{
			"between",
			[]string{"gs2png", "in.gs", "--force-alpha", "out.png", "--width=256"},
			[]string{"gs2png", "--force-alpha", "--width=256", "in.gs", "out.png"},
		},
		{
			"subcommand",
			[]string{"gs2png", "scan", "dumps", "-j", "2", "-v"},
			[]string{"gs2png", "-j", "2", "-v", "scan", "dumps"},
		},
		{
			"help",
			[]string{"gs2png", "in.gs", "-h"},
			[]string{"gs2png", "-h", "in.gs"},
		},
		{
			"unknown flag",
			[]string{"gs2png", "in.gs", "out.png", "--bogus"},
			[]string{"gs2png", "in.gs", "out.png", "--bogus"},
		},
		{
			"terminator",
			[]string{"gs2png", "-w", "512", "--", "-in.gs", "--force-alpha"},
			[]string{"gs2png", "-w", "512", "--", "-in.gs", "--force-alpha"},
		},
		{
			"missing value",
			[]string{"gs2png", "in.gs", "out.png", "--width"},
			[]string{"gs2png", "--width", "in.gs", "out.png"},
		},
		{"empty", []string{}, []string{}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, reorderArgs(table.args, flags))
		})
	}
}

func TestConvertFlagsLast(t *testing.T) {
	dir := t.TempDir()

	blob, err := (&dump.Header{}).MarshalBinary()
	require.Nil(t, err)

	b := new(bytes.Buffer)
	require.Nil(t, binary.Write(b, binary.LittleEndian, []uint32{dump.Magic, uint32(len(blob))}))
	b.Write(blob)
	b.Write(make([]byte, dump.MetadataSize+vram.Size))

	input := filepath.Join(dir, "in.gs")
	require.Nil(t, os.WriteFile(input, b.Bytes(), 0o644))

	last, first := filepath.Join(dir, "last.png"), filepath.Join(dir, "first.png")

	tables := []struct {
		args   []string
		output string
	}{
		{[]string{"gs2png", input, last, "--width", "512", "--force-alpha"}, last},
		{[]string{"gs2png", "-w", "512", "--force-alpha", input, first}, first},
	}

	for _, table := range tables {
		app := newApp()
		require.Nil(t, app.Run(reorderArgs(table.args, append(app.Flags, cli.HelpFlag, cli.VersionFlag))))

		m, err := imgio.Open(table.output)
		require.Nil(t, err)
		assert.Equal(t, 512, m.Bounds().Dx())
		assert.Equal(t, 2048, m.Bounds().Dy())

		_, _, _, a := m.At(0, 0).RGBA()
		assert.Equal(t, uint32(0xffff), a)
	}
}
