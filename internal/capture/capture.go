// Package capture grabs the desktop so it can be painted over.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
)

// ErrUnsupported is returned on platforms with no capture backend.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// Options controls a screen grab.
type Options struct {
	// Interactive lets the desktop portal ask the user for an area.
	Interactive bool
	// IncludeCursor asks the portal to paint the pointer into the image.
	IncludeCursor bool
	// Region crops the grab to a rectangle in screen coordinates.
	Region image.Rectangle
}

var (
	grabX11    = x11Screenshot
	grabPortal = portalScreenshot
	onWayland  = runningOnWayland
)

// Screen captures the desktop. Direct X11 reads are tried first unless the
// session is Wayland or the grab is interactive; the screenshot portal is
// the fallback.
func Screen(opts Options) (*image.RGBA, error) {
	var img *image.RGBA
	var err error
	if !opts.Interactive && !onWayland() {
		img, err = grabX11()
		if err != nil {
			log.Printf("x11 capture: %v; trying portal", err)
		}
	}
	if img == nil {
		var perr error
		img, perr = grabPortal(opts.Interactive, opts.IncludeCursor)
		if perr != nil {
			if err != nil {
				return nil, fmt.Errorf("capture screen: %v; portal: %w", err, perr)
			}
			return nil, fmt.Errorf("capture screen: %w", perr)
		}
	}
	if opts.Region.Empty() {
		return img, nil
	}
	return cropToRect(img, opts.Region)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
