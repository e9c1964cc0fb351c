package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/example/easel/internal/shape"
)

// DefaultFontSize is the point size used for text records.
const DefaultFontSize = 16

type paintState struct {
	stroke color.Color
	fill   color.Color
}

// Canvas is a Surface backed by an RGBA image and a gg drawing context.
type Canvas struct {
	img   *image.RGBA
	dc    *gg.Context
	face  font.Face
	cur   paintState
	saved []paintState
}

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithFace sets the font face used by StrokeText.
func WithFace(face font.Face) CanvasOption { return func(c *Canvas) { c.face = face } }

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := &Canvas{
		img: img,
		dc:  gg.NewContextForRGBA(img),
		cur: paintState{stroke: color.Black, fill: color.Black},
	}
	for _, o := range opts {
		o(c)
	}
	if c.face == nil {
		c.face = defaultFace()
	}
	c.dc.SetFontFace(c.face)
	c.SetStrokeColor(c.cur.stroke)
	c.SetFillColor(c.cur.fill)
	return c
}

var textFace font.Face

func defaultFace() font.Face {
	if textFace != nil {
		return textFace
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("parse font: %v", err)
		return nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: DefaultFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face: %v", err)
		return nil
	}
	textFace = face
	return face
}

// Image returns the live pixel buffer.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Clear makes every pixel transparent.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	c.dc.ClearPath()
}

// Save pushes the paint state; Restore pops it.
func (c *Canvas) Save() {
	c.saved = append(c.saved, c.cur)
	c.dc.Push()
}

func (c *Canvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.cur = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
	c.dc.Pop()
}

func (c *Canvas) SetStrokeColor(col color.Color) {
	c.cur.stroke = col
	c.dc.SetStrokeStyle(gg.NewSolidPattern(col))
}

func (c *Canvas) SetFillColor(col color.Color) {
	c.cur.fill = col
	c.dc.SetFillStyle(gg.NewSolidPattern(col))
}

func (c *Canvas) SetLineWidth(w float64) { c.dc.SetLineWidth(w) }

func (c *Canvas) SetDash(dashes ...float64) { c.dc.SetDash(dashes...) }

func (c *Canvas) StrokeLine(a, b shape.Point) {
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.dc.Stroke()
}

func (c *Canvas) StrokePath(pts []shape.Point) {
	if len(pts) == 0 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.Stroke()
}

func (c *Canvas) StrokeRect(r shape.Rect) {
	r = r.Canon()
	c.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	c.dc.Stroke()
}

func (c *Canvas) FillRect(r shape.Rect) {
	r = r.Canon()
	c.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	c.dc.Fill()
}

func (c *Canvas) StrokeEllipse(p shape.Point, rx, ry float64) {
	c.dc.DrawEllipse(p.X, p.Y, rx, ry)
	c.dc.Stroke()
}

func (c *Canvas) FillEllipse(p shape.Point, rx, ry float64) {
	c.dc.DrawEllipse(p.X, p.Y, rx, ry)
	c.dc.Fill()
}

func (c *Canvas) polygon(pts []shape.Point) bool {
	if len(pts) < 2 {
		return false
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	return true
}

func (c *Canvas) StrokePolygon(pts []shape.Point) {
	if c.polygon(pts) {
		c.dc.Stroke()
	}
}

func (c *Canvas) FillPolygon(pts []shape.Point) {
	if c.polygon(pts) {
		c.dc.Fill()
	}
}

// StrokeText draws s in the stroke colour with its baseline origin at p.
func (c *Canvas) StrokeText(p shape.Point, s string) {
	if s == "" || c.face == nil {
		return
	}
	c.dc.Push()
	c.dc.SetColor(c.cur.stroke)
	c.dc.DrawString(s, p.X, p.Y)
	c.dc.Pop()
}

// ClearRect makes the pixels under r transparent, clipped to the canvas.
func (c *Canvas) ClearRect(r shape.Rect) {
	px := r.Pixels().Intersect(c.img.Bounds())
	if px.Empty() {
		return
	}
	draw.Draw(c.img, px, image.Transparent, image.Point{}, draw.Src)
}

// FillImage scales img into r with nearest-neighbour sampling and draws it
// over the existing pixels.
func (c *Canvas) FillImage(r shape.Rect, img image.Image) {
	if img == nil {
		return
	}
	dst := r.Pixels()
	if dst.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, img, img.Bounds(), xdraw.Over, nil)
}

// Snapshot returns a copy of the pixels that later drawing does not touch.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}
