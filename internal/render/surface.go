package render

import (
	"image"
	"image/color"

	"github.com/example/easel/internal/shape"
)

// Surface is the raster target records are replayed onto.
type Surface interface {
	Bounds() image.Rectangle
	// Clear resets every pixel to transparent.
	Clear()
	// Save and Restore bracket changes to stroke, fill, width and dash.
	Save()
	Restore()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
	// SetDash sets the dash pattern for strokes; no arguments means solid.
	SetDash(dashes ...float64)

	StrokeLine(a, b shape.Point)
	StrokePath(pts []shape.Point)
	StrokeRect(r shape.Rect)
	FillRect(r shape.Rect)
	StrokeEllipse(c shape.Point, rx, ry float64)
	FillEllipse(c shape.Point, rx, ry float64)
	StrokePolygon(pts []shape.Point)
	FillPolygon(pts []shape.Point)
	StrokeText(at shape.Point, s string)

	// ClearRect makes the pixels under r transparent.
	ClearRect(r shape.Rect)
	// FillImage stretches img over r.
	FillImage(r shape.Rect, img image.Image)

	// Snapshot returns a copy of the current pixels.
	Snapshot() *image.RGBA
}
