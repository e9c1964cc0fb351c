package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/easel/internal/document"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/render"
)

// replayCmd runs an event script against a headless canvas and exports the
// result.
type replayCmd struct {
	*root
	fs *flag.FlagSet

	script      string
	output      string
	format      string
	background  string
	width       int
	height      int
	toClipboard bool
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "file to write the result to")
	fs.StringVar(&c.format, "format", "", "output format (png, jpg, gif, bmp, tiff, pdf); defaults to the output extension")
	fs.StringVar(&c.background, "background", "", "image to paint over; sets the canvas size")
	fs.IntVar(&c.width, "width", r.config.Width, "canvas width in pixels")
	fs.IntVar(&c.height, "height", r.config.Height, "canvas height in pixels")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		c.script = fs.Arg(0)
	default:
		return nil, &UsageError{of: c}
	}
	if c.output == "" && !c.toClipboard {
		return nil, fmt.Errorf("an output file or -to-clipboard is required")
	}
	if c.format != "" {
		if _, err := document.ParseFormat(c.format); err != nil {
			return nil, err
		}
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", c.width, c.height)
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	w, h := c.width, c.height
	var opts []editor.Option
	if c.background != "" {
		bg, err := document.Load(c.background)
		if err != nil {
			return fmt.Errorf("failed to load background: %w", err)
		}
		w, h = bg.Bounds().Dx(), bg.Bounds().Dy()
		opts = append(opts, editor.WithBackground(bg))
	}
	ed := newEditor(render.NewCanvas(w, h), c.config, opts...)

	in, name, err := c.openScript()
	if err != nil {
		return err
	}
	if closer, ok := in.(io.Closer); ok {
		defer closeWithLog(name, closer)
	}
	if err := ed.Run(in); err != nil {
		return fmt.Errorf("replay %s: %w", name, err)
	}

	img := ed.Composite()
	if c.output != "" {
		f, err := c.outputFormat()
		if err != nil {
			return err
		}
		if err := document.WriteFile(c.output, f, img); err != nil {
			removeWithLog(c.output)
			return fmt.Errorf("failed to save %s: %w", c.output, err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", c.output)
		c.notifySave(c.output)
	}
	if c.toClipboard {
		if err := writeClipboardFn(img); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.notifyCopy("replay result")
	}
	return nil
}

func (c *replayCmd) openScript() (io.Reader, string, error) {
	if c.script == "" || c.script == "-" {
		return stdin, "stdin", nil
	}
	f, err := os.Open(c.script)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open script: %w", err)
	}
	return f, c.script, nil
}

// outputFormat is the -format flag, then the output extension, then the
// configured default.
func (c *replayCmd) outputFormat() (document.Format, error) {
	if c.format != "" {
		return document.ParseFormat(c.format)
	}
	if f, err := document.FormatFor(c.output); err == nil {
		return f, nil
	}
	return c.root.format(), nil
}
