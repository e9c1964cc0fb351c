package main

import (
	"flag"
	"fmt"

	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/palette"
)

type colorsCmd struct {
	*root
	fs  *flag.FlagSet
	all bool
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.all, "all", false, "list every colour name accepted by scripts and the config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	if c.all {
		for _, name := range palette.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}
	fmt.Fprintln(stdout, "palette colors (* marks the default stroke color):")
	for idx, entry := range palette.Swatches() {
		marker := " "
		if entry.Color == c.config.Paint.Stroke {
			marker = "*"
		}
		hex := palette.Hex(entry.Color)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ExitOnError)
	cmd := &widthsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	fmt.Fprintln(stdout, "stroke widths (* marks the default width):")
	for w := int(editor.MinStrokeWidth); w <= int(editor.MaxStrokeWidth); w++ {
		marker := " "
		if float64(w) == c.config.Paint.StrokeWidth {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %3dpx\n", marker, w)
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
