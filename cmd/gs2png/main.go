package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/bodgit/gsdump"
	"github.com/bodgit/gsdump/image"
	"github.com/urfave/cli/v2"
)

const defaultWidth = 1024

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openDB(c *cli.Context) (*gsdump.DumpDB, error) {
	if !c.IsSet("db") {
		return nil, nil
	}
	return gsdump.NewDumpDB(c.String("db"))
}

func options(c *cli.Context, output string) (*gsdump.Options, error) {
	o := &gsdump.Options{
		Options: image.Options{
			Width:      c.Int("width"),
			Height:     c.Int("height"),
			Base:       uint32(c.Uint("base")),
			ForceAlpha: c.Bool("force-alpha"),
			Workers:    runtime.NumCPU(),
		},
		Encoder: image.EncoderOptions{
			Quality: c.Int("quality"),
			Colors:  c.Int("colors"),
		},
		Jobs: c.Int("jobs"),
	}

	var err error
	switch {
	case c.IsSet("format"):
		o.Encoder.Format, err = image.ParseFormat(c.String("format"))
	case output != "":
		o.Encoder.Format, err = image.FormatFromFilename(output)
	default:
		o.Encoder.Format = image.PNG
	}
	if err != nil {
		return nil, err
	}

	// Check now so a bad width is reported before touching any files
	if _, err := image.DecodeConfig(&o.Options); err != nil {
		return nil, err
	}

	return o, nil
}

func run(c *cli.Context, output string, f func(*gsdump.GSDump, *gsdump.Options) error) error {
	o, err := options(c, output)
	if err != nil {
		return cli.Exit(err, 1)
	}

	db, err := openDB(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if db != nil {
		defer db.Close()
	}

	if err := f(gsdump.New(db, newLogger(c)), o); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	if !c.IsSet("db") {
		return cli.Exit("list requires --db", 1)
	}

	db, err := gsdump.NewDumpDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	entries, err := db.Dumps()
	if err != nil {
		return cli.Exit(err, 1)
	}

	w := c.App.Writer
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%08X\n", e.SHA1, e.Serial, e.CRC)
		for _, conv := range e.Conversions {
			fmt.Fprintf(w, "\t%s\t%dx%d\t%d\t%t\n", conv.Output, conv.Width, conv.Height, conv.Base, conv.ForceAlpha)
		}
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "gs2png"
	app.Usage = "Convert PCSX2 GS dump VRAM to an image"
	app.Version = "1.0.0"
	app.ArgsUsage = "INPUT OUTPUT"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"w"},
			Value:   defaultWidth,
			Usage:   "output image width in pixels, a multiple of 64",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "output image height in pixels, default uses all of VRAM",
		},
		&cli.BoolFlag{
			Name:  "force-alpha",
			Usage: "force alpha channel to 255 (prevents transparency)",
		},
		&cli.UintFlag{
			Name:  "base",
			Usage: "framebuffer base pointer in 64 pixel blocks",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format (png, jpeg or bmp), default from the output extension",
		},
		&cli.IntFlag{
			Name:  "quality",
			Value: image.DefaultQuality,
			Usage: "JPEG quality",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "reduce output to a palette of this many colors",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of dumps to convert at once when scanning",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "record conversions in this catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() != 2 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		input, output := c.Args().Get(0), c.Args().Get(1)

		return run(c, output, func(g *gsdump.GSDump, o *gsdump.Options) error {
			return g.Convert(input, output, o)
		})
	}

	app.Commands = []*cli.Command{
		{
			Name:        "scan",
			Usage:       "Convert every dump found in a directory",
			Description: "Each .gs file is converted to an image alongside it.",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return run(c, "", func(g *gsdump.GSDump, o *gsdump.Options) error {
					return g.Scan(c.Args().First(), o)
				})
			},
		},
		{
			Name:   "list",
			Usage:  "List the dumps recorded in the catalog",
			Action: list,
		},
	}

	return app
}

func main() {
	app := newApp()

	if err := app.Run(reorderArgs(os.Args, append(app.Flags, cli.HelpFlag, cli.VersionFlag))); err != nil {
		log.Fatal(err)
	}
}
