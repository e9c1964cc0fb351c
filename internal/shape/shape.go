package shape

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the primitive a Record describes.
type Kind int

const (
	None Kind = iota
	FreehandStroke
	EraseStroke
	Line
	Rectangle
	Square
	Circle
	Oval
	Triangle
	Text
	ImageSelect
	ImageMove
)

var kindNames = [...]string{
	None:           "none",
	FreehandStroke: "freehand",
	EraseStroke:    "erase",
	Line:           "line",
	Rectangle:      "rectangle",
	Square:         "square",
	Circle:         "circle",
	Oval:           "oval",
	Triangle:       "triangle",
	Text:           "text",
	ImageSelect:    "select",
	ImageMove:      "move",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind from its lower-case name.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return None, false
}

// PaintAttributes is the paint state captured into a record when it is pushed.
type PaintAttributes struct {
	Stroke color.RGBA
	Fill   color.RGBA
	Width  float64
}

// DefaultAttributes is the baseline carried by a freshly constructed record.
func DefaultAttributes() PaintAttributes {
	return PaintAttributes{
		Stroke: color.RGBA{0, 0, 0, 255},
		Fill:   color.RGBA{0, 0, 0, 255},
		Width:  1,
	}
}

// WithFill returns a copy of a with the fill colour replaced.
func (a PaintAttributes) WithFill(c color.RGBA) PaintAttributes {
	a.Fill = c
	return a
}

// Record is one drawing action. Records are values: every mutation returns a
// modified copy and the original is left untouched.
//
// Which geometry fields are meaningful depends on Kind:
//
//	FreehandStroke, EraseStroke   Points
//	Line, Triangle                Start, End
//	Rectangle, Square,
//	ImageSelect, ImageMove        Box
//	Circle, Oval                  Start (centre), RX, RY
//	Text                          Start (anchor), Label
type Record struct {
	ID    uuid.UUID
	Kind  Kind
	Attrs PaintAttributes

	Points []Point
	Start  Point
	End    Point
	Box    Rect
	RX, RY float64
	Label  string

	// Pattern is the raster captured for ImageSelect and ImageMove fills.
	// It is never written to after capture.
	Pattern image.Image
}

func newRecord(kind Kind) Record {
	return Record{ID: uuid.New(), Kind: kind, Attrs: DefaultAttributes()}
}

// NewPath starts a freehand or erase stroke at p.
func NewPath(kind Kind, p Point) Record {
	r := newRecord(kind)
	r.Points = []Point{p}
	return r
}

// NewSegment creates a zero-length line or triangle base anchored at p.
func NewSegment(kind Kind, p Point) Record {
	r := newRecord(kind)
	r.Start, r.End = p, p
	return r
}

// NewBox creates a box-shaped record with its anchor corner at p.
func NewBox(kind Kind, box Rect) Record {
	r := newRecord(kind)
	r.Box = box
	return r
}

// NewEllipse creates a circle or oval centred at c.
func NewEllipse(kind Kind, c Point, rx, ry float64) Record {
	r := newRecord(kind)
	r.Start = c
	r.RX, r.RY = rx, ry
	return r
}

// NewText places label with its baseline origin at p.
func NewText(p Point, label string) Record {
	r := newRecord(Text)
	r.Start = p
	r.Label = label
	return r
}

// New creates the zero-size record a press starts for kind.
func New(kind Kind, p Point) Record {
	switch kind {
	case FreehandStroke, EraseStroke:
		return NewPath(kind, p)
	case Line, Triangle:
		return NewSegment(kind, p)
	case Rectangle, Square, ImageSelect, ImageMove:
		return NewBox(kind, Rect{X: p.X, Y: p.Y})
	case Circle, Oval:
		return NewEllipse(kind, p, 0, 0)
	case Text:
		return NewText(p, "")
	}
	return newRecord(None)
}

// WithPoint appends p to the path.
func (r Record) WithPoint(p Point) Record {
	pts := make([]Point, len(r.Points), len(r.Points)+1)
	copy(pts, r.Points)
	r.Points = append(pts, p)
	return r
}

func (r Record) WithEnd(p Point) Record {
	r.End = p
	return r
}

func (r Record) WithBox(b Rect) Record {
	r.Box = b
	return r
}

// WithOrigin moves the box so that its anchor corner sits at p.
func (r Record) WithOrigin(p Point) Record {
	r.Box.X, r.Box.Y = p.X, p.Y
	return r
}

func (r Record) WithRadii(rx, ry float64) Record {
	r.RX, r.RY = rx, ry
	return r
}

func (r Record) WithKind(k Kind) Record {
	r.Kind = k
	return r
}

func (r Record) WithPattern(img image.Image) Record {
	r.Pattern = img
	return r
}

func (r Record) WithAttributes(a PaintAttributes) Record {
	r.Attrs = a
	return r
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	if r.Points != nil {
		pts := make([]Point, len(r.Points))
		copy(pts, r.Points)
		r.Points = pts
	}
	return r
}
