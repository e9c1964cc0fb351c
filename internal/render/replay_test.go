package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/example/easel/internal/shape"
)

// recorder is a Surface that logs the calls it receives.
type recorder struct {
	ops   []string
	depth int
}

func (r *recorder) log(format string, args ...any) { r.ops = append(r.ops, fmt.Sprintf(format, args...)) }

func (r *recorder) Bounds() image.Rectangle     { return image.Rect(0, 0, 100, 100) }
func (r *recorder) Clear()                      { r.log("clear") }
func (r *recorder) Save()                       { r.depth++ }
func (r *recorder) Restore()                    { r.depth-- }
func (r *recorder) SetStrokeColor(c color.Color) { r.log("stroke %v", c) }
func (r *recorder) SetFillColor(c color.Color)   { r.log("fill %v", c) }
func (r *recorder) SetLineWidth(w float64)       { r.log("width %g", w) }
func (r *recorder) SetDash(d ...float64)         { r.log("dash %v", d) }
func (r *recorder) StrokeLine(a, b shape.Point)  { r.log("line %v %v", a, b) }
func (r *recorder) StrokePath(p []shape.Point)   { r.log("path %v", p) }
func (r *recorder) StrokeRect(b shape.Rect)      { r.log("strokerect %v", b) }
func (r *recorder) FillRect(b shape.Rect)        { r.log("fillrect %v", b) }
func (r *recorder) StrokeEllipse(c shape.Point, rx, ry float64) {
	r.log("strokeellipse %v %g %g", c, rx, ry)
}
func (r *recorder) FillEllipse(c shape.Point, rx, ry float64) {
	r.log("fillellipse %v %g %g", c, rx, ry)
}
func (r *recorder) StrokePolygon(p []shape.Point) { r.log("strokepoly %d", len(p)) }
func (r *recorder) FillPolygon(p []shape.Point)   { r.log("fillpoly %d", len(p)) }
func (r *recorder) StrokeText(at shape.Point, s string) {
	r.log("text %v %s", at, s)
}
func (r *recorder) ClearRect(b shape.Rect)                  { r.log("clearrect %v", b) }
func (r *recorder) FillImage(b shape.Rect, img image.Image) { r.log("image %v", b) }
func (r *recorder) Snapshot() *image.RGBA                   { return image.NewRGBA(r.Bounds()) }

func (r *recorder) has(prefix string) bool {
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			return true
		}
	}
	return false
}

var blue = shape.PaintAttributes{Stroke: color.RGBA{0, 0, 255, 255}, Fill: color.RGBA{0, 255, 0, 255}, Width: 4}

func sample() []shape.Record {
	return []shape.Record{
		shape.NewPath(shape.FreehandStroke, shape.Pt(2, 2)).WithPoint(shape.Pt(20, 5)).WithPoint(shape.Pt(30, 30)).WithAttributes(blue),
		shape.NewSegment(shape.Line, shape.Pt(0, 0)).WithEnd(shape.Pt(60, 60)).WithAttributes(shape.DefaultAttributes()),
		shape.NewBox(shape.Rectangle, shape.Rect{X: 10, Y: 40, W: 15, H: 10}).WithAttributes(blue),
		shape.NewEllipse(shape.Oval, shape.Pt(50, 20), 10, 6).WithAttributes(blue),
		shape.NewSegment(shape.Triangle, shape.Pt(5, 60)).WithEnd(shape.Pt(25, 60)).WithAttributes(blue),
		shape.NewText(shape.Pt(5, 90), "hi").WithAttributes(blue),
		shape.NewPath(shape.EraseStroke, shape.Pt(15, 45)).WithPoint(shape.Pt(18, 45)).WithAttributes(blue),
	}
}

func TestReplayDeterministic(t *testing.T) {
	recs := sample()
	a := NewCanvas(100, 100)
	b := NewCanvas(100, 100)
	Replay(a, recs)
	Replay(b, recs)
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Fatalf("two replays of the same records differ")
	}

	// replaying over a dirty surface gives the same pixels as a fresh one
	Replay(a, recs[:2])
	Replay(a, recs)
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Fatalf("replay depends on earlier surface content")
	}
}

func TestReplayDrawsSomething(t *testing.T) {
	c := NewCanvas(40, 40)
	Replay(c, []shape.Record{
		shape.NewBox(shape.Rectangle, shape.Rect{X: 10, Y: 10, W: 10, H: 10}).WithAttributes(blue),
	})
	if got := c.Image().RGBAAt(15, 15); got != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("fill pixel = %v", got)
	}
	if got := c.Image().RGBAAt(2, 2); got.A != 0 {
		t.Fatalf("pixel outside shape = %v", got)
	}
}

func TestEraseClearsPixels(t *testing.T) {
	c := NewCanvas(40, 40)
	fill := shape.NewBox(shape.Rectangle, shape.Rect{X: 0, Y: 0, W: 40, H: 40}).WithAttributes(blue)
	erase := shape.NewPath(shape.EraseStroke, shape.Pt(20, 20)).WithAttributes(shape.PaintAttributes{Width: 6})
	Replay(c, []shape.Record{fill, erase})
	if got := c.Image().RGBAAt(20, 20); got.A != 0 {
		t.Fatalf("erased pixel still painted: %v", got)
	}
	if got := c.Image().RGBAAt(30, 30); got.A == 0 {
		t.Fatalf("pixel outside eraser was cleared")
	}
}

func TestSelectionDrawsDashedOutline(t *testing.T) {
	r := &recorder{}
	Draw(r, shape.NewBox(shape.ImageSelect, shape.Rect{X: 1, Y: 1, W: 5, H: 5}).WithAttributes(blue))
	if !r.has("dash [2]") || !r.has("width 0.5") {
		t.Fatalf("selection outline not dashed: %v", r.ops)
	}
	if !r.has("fillrect") {
		t.Fatalf("selection without pattern should fill with its colour: %v", r.ops)
	}
	if r.depth != 0 {
		t.Fatalf("unbalanced save/restore: %d", r.depth)
	}
}

func TestMoveHasNoOutline(t *testing.T) {
	r := &recorder{}
	pat := image.NewRGBA(image.Rect(0, 0, 5, 5))
	Draw(r, shape.NewBox(shape.ImageMove, shape.Rect{X: 1, Y: 1, W: 5, H: 5}).WithPattern(pat))
	if r.has("strokerect") || r.has("dash") {
		t.Fatalf("move record stroked an outline: %v", r.ops)
	}
	if !r.has("image") {
		t.Fatalf("move record did not stamp its pattern: %v", r.ops)
	}
}

func TestTextUsesUnitWidth(t *testing.T) {
	r := &recorder{}
	Draw(r, shape.NewText(shape.Pt(3, 3), "abc").WithAttributes(blue))
	last := ""
	for _, op := range r.ops {
		if strings.HasPrefix(op, "width") {
			last = op
		}
	}
	if last != "width 1" {
		t.Fatalf("text drawn with %q", last)
	}
}

func TestTriangleDrawsThreeVertices(t *testing.T) {
	r := &recorder{}
	Draw(r, shape.NewSegment(shape.Triangle, shape.Pt(0, 0)).WithEnd(shape.Pt(10, 0)))
	if !r.has("strokepoly 3") || !r.has("fillpoly 3") {
		t.Fatalf("triangle ops: %v", r.ops)
	}
	v := shape.NewSegment(shape.Triangle, shape.Pt(0, 0)).WithEnd(shape.Pt(10, 0)).TriangleVertices()
	if math.Abs(v[2].X-5) > 1e-9 || math.Abs(v[2].Y-8.66) > 0.01 {
		t.Fatalf("apex = %+v", v[2])
	}
}

func TestPatternStamped(t *testing.T) {
	pat := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range pat.Pix {
		pat.Pix[i] = 0xff
	}
	c := NewCanvas(20, 20)
	Replay(c, []shape.Record{shape.NewBox(shape.ImageMove, shape.Rect{X: 10, Y: 10, W: 4, H: 4}).WithPattern(pat)})
	if got := c.Image().RGBAAt(11, 11); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pattern pixel = %v", got)
	}
	if got := c.Image().RGBAAt(9, 9); got.A != 0 {
		t.Fatalf("pattern leaked outside its box: %v", got)
	}
}
