package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/example/easel/internal/appstate"
	"github.com/example/easel/internal/capture"
	"github.com/example/easel/internal/clipboard"
	"github.com/example/easel/internal/config"
	"github.com/example/easel/internal/document"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/render"
)

var (
	captureScreenFn  = capture.Screen
	readClipboardFn  = clipboard.ReadImage
	writeClipboardFn = clipboard.WriteImage
	runWindow        = func(a *appstate.AppState) { a.Run() }
)

// editCmd opens the paint window.
type editCmd struct {
	*root
	fs *flag.FlagSet

	file          string
	width         int
	height        int
	capture       bool
	interactive   bool
	fromClipboard bool
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "image to open as the background; saving writes back to it")
	fs.IntVar(&e.width, "width", r.config.Width, "canvas width in pixels when there is no background")
	fs.IntVar(&e.height, "height", r.config.Height, "canvas height in pixels when there is no background")
	fs.BoolVar(&e.capture, "capture", false, "capture the screen as the background")
	fs.BoolVar(&e.interactive, "interactive", false, "let the desktop portal ask which area to capture")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "use the clipboard image as the background")
	fs.BoolVar(&e.fromClipboard, "from-clip", false, "use the clipboard image as the background (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: e}
	}
	if e.capture && e.fromClipboard {
		return nil, fmt.Errorf("-capture cannot be used with -from-clipboard")
	}
	if e.interactive && !e.capture {
		return nil, fmt.Errorf("-interactive requires -capture")
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", e.width, e.height)
	}
	return e, nil
}

func (e *editCmd) Run() error {
	opts := []document.Option{document.WithFormat(e.format())}
	if e.file != "" {
		opts = append(opts, document.WithPath(e.file))
	}
	doc := document.New(opts...)

	bg, err := e.background(doc)
	if err != nil {
		return err
	}
	w, h := e.width, e.height
	if bg != nil {
		w, h = bg.Bounds().Dx(), bg.Bounds().Dy()
	}

	var app *appstate.AppState
	edOpts := []editor.Option{
		editor.WithDirtyListener(doc.SetDirty),
		editor.WithWarningListener(func(err error) { app.Warn(err) }),
	}
	if bg != nil {
		edOpts = append(edOpts, editor.WithBackground(bg))
	}
	ed := newEditor(render.NewCanvas(w, h), e.config, edOpts...)

	app = appstate.New(
		appstate.WithEditor(ed),
		appstate.WithDocument(doc),
		appstate.WithTheme(e.activeTheme),
		appstate.WithNotifier(e.notifier),
		appstate.WithSaveDir(e.saveDir()),
		appstate.WithFormat(e.format()),
	)
	runWindow(app)
	return nil
}

// background loads the image the canvas is painted over, if any.
func (e *editCmd) background(doc *document.Document) (*image.RGBA, error) {
	switch {
	case e.capture:
		img, err := captureScreenFn(capture.Options{Interactive: e.interactive})
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		e.notifyCapture("screen", img)
		return img, nil
	case e.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return document.ToRGBA(img), nil
	case e.file != "":
		if _, err := os.Stat(e.file); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return doc.Open(e.file)
	}
	return nil, nil
}

// newEditor builds an editor with the configured starting paint.
func newEditor(c *render.Canvas, cfg *config.Config, opts ...editor.Option) *editor.Editor {
	ed := editor.New(c, opts...)
	ed.SetStrokeColor(cfg.Paint.Stroke)
	ed.SetFillColor(cfg.Paint.Fill)
	ed.SetFillEnabled(cfg.Paint.FillEnabled)
	ed.SetStrokeWidth(cfg.Paint.StrokeWidth)
	return ed
}
