package main

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// reorderArgs moves any of flags found after the positional arguments to the
// front so "gs2png INPUT OUTPUT --width 512" parses the same as
// "gs2png --width 512 INPUT OUTPUT". Everything after "--" and anything that
// isn't a known flag is left in order.
func reorderArgs(args []string, flags []cli.Flag) []string {
	if len(args) == 0 {
		return args
	}

	takesValue := make(map[string]bool)
	for _, f := range flags {
		_, isBool := f.(*cli.BoolFlag)
		for _, name := range f.Names() {
			takesValue[name] = !isBool
		}
	}

	var front, rest []string
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}

		name := strings.TrimLeft(arg, "-")
		if name == arg || name == "" {
			rest = append(rest, arg)
			continue
		}

		name, _, hasValue := strings.Cut(name, "=")
		value, ok := takesValue[name]
		if !ok {
			rest = append(rest, arg)
			continue
		}

		front = append(front, arg)
		if value && !hasValue && i+1 < len(args) {
			i++
			front = append(front, args[i])
		}
	}

	return append(append([]string{args[0]}, front...), rest...)
}
