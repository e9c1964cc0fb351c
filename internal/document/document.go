// Package document tracks the file behind the canvas: where it was opened
// from or saved to, and whether there are unsaved changes.
package document

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ProgramTitle is the window title prefix.
const ProgramTitle = "Easel"

const unsavedSuffix = "Unsaved Changes!"

// ErrNoPath is returned by Save when the document has never been saved.
var ErrNoPath = errors.New("document has no file name")

// Document holds file state for one canvas.
type Document struct {
	path     string
	format   Format
	dirty    bool
	onChange func(*Document)
}

// Option configures a Document.
type Option func(*Document)

// WithPath sets the file the document saves to.
func WithPath(path string) Option { return func(d *Document) { d.path = path } }

// WithFormat sets the format used when the path has no usable extension.
func WithFormat(f Format) Option { return func(d *Document) { d.format = f } }

// WithChangeListener is called whenever the title would change.
func WithChangeListener(fn func(*Document)) Option { return func(d *Document) { d.onChange = fn } }

// New returns a clean document.
func New(opts ...Option) *Document {
	d := &Document{format: PNG}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Document) notify() {
	if d.onChange != nil {
		d.onChange(d)
	}
}

// Path returns the current file name, or "" for an unsaved document.
func (d *Document) Path() string { return d.path }

// Dirty reports whether there are unsaved changes.
func (d *Document) Dirty() bool { return d.dirty }

// SetDirty records whether the canvas differs from the file.
func (d *Document) SetDirty(dirty bool) {
	if d.dirty == dirty {
		return
	}
	d.dirty = dirty
	d.notify()
}

// Title is the window title for the current state.
func (d *Document) Title() string {
	parts := []string{ProgramTitle}
	if d.path != "" {
		parts = append(parts, filepath.Base(d.path))
	}
	if d.dirty {
		parts = append(parts, unsavedSuffix)
	}
	return strings.Join(parts, " - ")
}

// ConfirmDiscard reports whether it is fine to drop the canvas. When there
// are unsaved changes ask decides.
func (d *Document) ConfirmDiscard(ask func() bool) bool {
	if !d.dirty {
		return true
	}
	return ask != nil && ask()
}

// Open decodes the image at path, adopts path as the document file and
// marks the document clean.
func (d *Document) Open(path string) (*image.RGBA, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	d.path = path
	if f, err := FormatFor(path); err == nil {
		d.format = f
	}
	d.dirty = false
	d.notify()
	return img, nil
}

// Save writes img to the document's file.
func (d *Document) Save(img image.Image) error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.SaveAs(d.path, img)
}

// SaveAs writes img to path, adopts it as the document file and marks the
// document clean.
func (d *Document) SaveAs(path string, img image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		if d.format == "" {
			return err
		}
		f = d.format
	}
	if err := WriteFile(path, f, img); err != nil {
		return err
	}
	d.path = path
	d.format = f
	d.dirty = false
	d.notify()
	return nil
}

// Load decodes any supported image file into an RGBA copy.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// WriteFile encodes img into path.
func WriteFile(path string, format Format, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(out, format, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ToRGBA returns img as an RGBA image anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// flatten composites img over white; JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// Flatten composites layers bottom to top onto a canvas of size.
func Flatten(size image.Rectangle, layers ...image.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, size.Dx(), size.Dy()))
	for _, l := range layers {
		if l == nil {
			continue
		}
		draw.Draw(out, out.Bounds(), l, l.Bounds().Min, draw.Over)
	}
	return out
}
