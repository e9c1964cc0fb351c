// Package editor turns pointer events and toolbar changes into records on an
// action stack and keeps a surface in step with that stack.
package editor

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/example/easel/internal/history"
	"github.com/example/easel/internal/render"
	"github.com/example/easel/internal/shape"
)

const (
	MinStrokeWidth = 1.0
	MaxStrokeWidth = 10.0
)

var (
	// ErrOutOfBounds is reported when a pixel read falls outside the surface.
	ErrOutOfBounds = errors.New("point outside surface")
	// ErrEmptySelection is reported when a selection covers no pixels.
	ErrEmptySelection = errors.New("selection is empty or outside the surface")
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// EventType distinguishes pointer events.
type EventType int

const (
	Press EventType = iota
	Drag
	Release
)

// PointerEvent is a pointer sample in surface coordinates.
type PointerEvent struct {
	Type EventType
	X, Y float64
}

// Editor is the tool dispatcher. All methods must be called from one
// goroutine.
type Editor struct {
	surface    render.Surface
	stack      *history.Stack
	background image.Image

	tool    Tool
	state   State
	drawing shape.Kind
	// selection is the ID of the ImageSelect record this editor started.
	selection uuid.UUID

	stroke color.RGBA
	fill   color.RGBA
	fillOn bool
	width  float64
	text   string

	onDirty func(bool)
	onColor func(color.RGBA)
	onWarn  func(error)
	onTool  func(Tool)
}

// Option configures an Editor.
type Option func(*Editor)

// WithDirtyListener is called with true after every stack mutation.
func WithDirtyListener(fn func(bool)) Option { return func(e *Editor) { e.onDirty = fn } }

// WithColorListener receives colours picked with the dropper.
func WithColorListener(fn func(color.RGBA)) Option { return func(e *Editor) { e.onColor = fn } }

// WithWarningListener receives recoverable failures such as a dropper read
// outside the surface.
func WithWarningListener(fn func(error)) Option { return func(e *Editor) { e.onWarn = fn } }

// WithToolListener is told when the editor changes tool on its own.
func WithToolListener(fn func(Tool)) Option { return func(e *Editor) { e.onTool = fn } }

// WithBackground sets the image shown beneath the surface.
func WithBackground(img image.Image) Option { return func(e *Editor) { e.background = img } }

// New returns an editor drawing onto surface.
func New(surface render.Surface, opts ...Option) *Editor {
	e := &Editor{
		surface: surface,
		stroke:  black,
		fill:    black,
		width:   MinStrokeWidth,
	}
	for _, o := range opts {
		o(e)
	}
	e.stack = history.New(history.WithChangeListener(e.changed))
	return e
}

func (e *Editor) changed() {
	if e.onDirty != nil {
		e.onDirty(true)
	}
}

func (e *Editor) warn(err error) {
	log.Printf("editor: %v", err)
	if e.onWarn != nil {
		e.onWarn(err)
	}
}

func (e *Editor) replay() {
	render.Replay(e.surface, e.stack.Records())
}

// Surface returns the surface the editor draws on.
func (e *Editor) Surface() render.Surface { return e.surface }

// Stack exposes the action stack for inspection.
func (e *Editor) Stack() *history.Stack { return e.stack }

// State returns the gesture state and, while Drawing, the kind being drawn.
func (e *Editor) State() (State, shape.Kind) { return e.state, e.drawing }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches tools and abandons any gesture in progress.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.state = Idle
	e.drawing = shape.None
}

func (e *Editor) switchTool(t Tool) {
	e.tool = t
	if e.onTool != nil {
		e.onTool(t)
	}
}

func (e *Editor) SetStrokeColor(c color.RGBA) { e.stroke = c }

// SetFillColor sets the fill picker colour. It is only captured while the
// fill is enabled.
func (e *Editor) SetFillColor(c color.RGBA) { e.fill = c }

// SetFillEnabled toggles filling of closed shapes.
func (e *Editor) SetFillEnabled(on bool) { e.fillOn = on }

// SetStrokeWidth sets the stroke width, clamped to the supported range.
func (e *Editor) SetStrokeWidth(w float64) {
	e.width = math.Min(MaxStrokeWidth, math.Max(MinStrokeWidth, w))
}

// SetPendingText sets the label the next text press places.
func (e *Editor) SetPendingText(s string) { e.text = s }

// SetBackground replaces the image shown beneath the surface.
func (e *Editor) SetBackground(img image.Image) { e.background = img }

func (e *Editor) Background() image.Image { return e.background }

// Attributes returns the paint attributes a push would capture now.
func (e *Editor) Attributes() shape.PaintAttributes {
	a := shape.PaintAttributes{Stroke: e.stroke, Width: e.width}
	if e.fillOn {
		a.Fill = e.fill
	}
	return a
}

// Settings reports the toolbar paint state.
func (e *Editor) Settings() (stroke, fill color.RGBA, fillOn bool, width float64, text string) {
	return e.stroke, e.fill, e.fillOn, e.width, e.text
}

// Handle dispatches a pointer event.
func (e *Editor) Handle(ev PointerEvent) {
	p := shape.Pt(ev.X, ev.Y)
	switch ev.Type {
	case Press:
		e.Press(p)
	case Drag:
		e.Drag(p)
	case Release:
		e.Release(p)
	}
}

// Press starts a gesture at p.
func (e *Editor) Press(p shape.Point) {
	if e.state == MovingImage || e.tool == ToolMove {
		if e.pickUp(p) {
			return
		}
		e.state = Idle
	}
	switch {
	case e.tool == ToolDropper:
		e.pick(p)
	case e.tool == ToolText:
		e.stack.Push(shape.NewText(p, e.text), e.Attributes())
		e.replay()
	case e.tool == ToolSelect:
		sel := shape.New(shape.ImageSelect, p)
		e.selection = sel.ID
		e.stack.Push(sel, e.Attributes().WithFill(color.RGBA{}))
		e.state = SelectingImage
		e.replay()
	case e.tool.draws():
		kind := e.tool.Kind()
		e.stack.Push(shape.New(kind, p), e.Attributes())
		e.state, e.drawing = Drawing, kind
		e.replay()
	}
}

// Drag continues the gesture. It is ignored unless the top record belongs
// to the gesture the active tool started.
func (e *Editor) Drag(p shape.Point) {
	top, ok := e.stack.Peek()
	if !ok {
		return
	}
	switch e.state {
	case Drawing:
		if top.Kind != e.drawing || top.Kind != e.tool.Kind() {
			return
		}
		e.stack.Pop()
		e.stack.Push(reshape(top, p), e.Attributes())
	case SelectingImage:
		if !e.ownsSelection(top) || e.tool != ToolSelect {
			return
		}
		e.stack.Pop()
		e.stack.Push(reshape(top, p), e.Attributes().WithFill(color.RGBA{}))
	case MovingImage:
		if !e.ownsSelection(top) {
			return
		}
		e.stack.Pop()
		e.stack.Push(top.WithOrigin(p), top.Attrs)
	default:
		return
	}
	e.replay()
}

// Release ends the gesture at p.
func (e *Editor) Release(p shape.Point) {
	switch e.state {
	case Drawing:
		e.state, e.drawing = Idle, shape.None
	case SelectingImage:
		e.finishSelection()
	case MovingImage:
		e.drop(p)
	}
}

// reshape applies the drag constraint of r's kind for pointer position p.
func reshape(r shape.Record, p shape.Point) shape.Record {
	switch r.Kind {
	case shape.FreehandStroke, shape.EraseStroke:
		return r.WithPoint(p)
	case shape.Line, shape.Triangle:
		return r.WithEnd(p)
	case shape.Rectangle, shape.ImageSelect:
		return r.WithBox(shape.Rect{
			X: r.Box.X,
			Y: r.Box.Y,
			W: math.Abs(p.X - r.Box.X),
			H: math.Abs(p.Y - r.Box.Y),
		})
	case shape.Square:
		d := p.X - r.Box.X
		return r.WithBox(shape.Rect{X: r.Box.X, Y: r.Box.Y, W: d, H: d})
	case shape.Circle:
		d := math.Abs(p.X - r.Start.X)
		return r.WithRadii(d, d)
	case shape.Oval:
		return r.WithRadii(math.Abs(p.X-r.Start.X), math.Abs(p.Y-r.Start.Y))
	}
	return r
}

// finishSelection turns the selection box into an image pattern cut from the
// composited canvas, or drops the selection if it covers no pixels.
func (e *Editor) finishSelection() {
	top, ok := e.stack.Peek()
	if !ok || !e.ownsSelection(top) {
		e.state = Idle
		return
	}
	e.stack.Pop()
	e.replay()
	pattern, err := e.crop(top.Box)
	if err != nil {
		log.Printf("editor: selection aborted: %v", err)
		e.state, e.selection = Idle, uuid.Nil
		e.switchTool(ToolNone)
		return
	}
	e.stack.Push(top.WithPattern(pattern), e.Attributes().WithFill(color.RGBA{}))
	e.replay()
	e.state = MovingImage
	e.switchTool(ToolMove)
}

// ownsSelection reports whether r is the selection this editor started.
func (e *Editor) ownsSelection(r shape.Record) bool {
	return e.selection != uuid.Nil && r.Kind == shape.ImageSelect && r.ID == e.selection
}

// pickUp lifts the finished selection off the canvas: a blank record covers
// its old box and the selection follows the pointer. It reports false when
// the top of the stack is not this editor's finished selection.
func (e *Editor) pickUp(p shape.Point) bool {
	top, ok := e.stack.Peek()
	if !ok || !e.ownsSelection(top) || top.Pattern == nil {
		return false
	}
	e.state = MovingImage
	e.stack.Pop()
	blank := shape.NewBox(shape.ImageSelect, top.Box)
	e.stack.Push(blank, e.Attributes().WithFill(white))
	e.stack.Push(top.WithOrigin(p), top.Attrs)
	e.replay()
	return true
}

func (e *Editor) drop(p shape.Point) {
	top, ok := e.stack.Peek()
	if ok && e.ownsSelection(top) {
		e.stack.Pop()
		e.stack.Push(top.WithOrigin(p).WithKind(shape.ImageMove), top.Attrs)
		e.replay()
	}
	e.state, e.selection = Idle, uuid.Nil
	e.switchTool(ToolNone)
}

func (e *Editor) pick(p shape.Point) {
	c, err := e.ColorAt(p)
	if err != nil {
		e.warn(err)
		return
	}
	e.stroke = c
	e.fill = c
	if e.onColor != nil {
		e.onColor(c)
	}
}

// ColorAt reads the composited colour under p.
func (e *Editor) ColorAt(p shape.Point) (color.RGBA, error) {
	pt := image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	if !pt.In(e.surface.Bounds()) {
		return color.RGBA{}, ErrOutOfBounds
	}
	return e.Composite().RGBAAt(pt.X, pt.Y), nil
}

func (e *Editor) crop(box shape.Rect) (*image.RGBA, error) {
	r := box.Pixels()
	if r.Empty() || !r.In(e.surface.Bounds()) {
		return nil, ErrEmptySelection
	}
	src := e.Composite()
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), src, r.Min, draw.Src)
	return out, nil
}

// Composite flattens the background and the surface into a new image.
func (e *Editor) Composite() *image.RGBA {
	snap := e.surface.Snapshot()
	if e.background == nil {
		return snap
	}
	out := image.NewRGBA(snap.Bounds())
	draw.Draw(out, out.Bounds(), e.background, e.background.Bounds().Min, draw.Src)
	draw.Draw(out, out.Bounds(), snap, snap.Bounds().Min, draw.Over)
	return out
}

// Undo reverts the last action and redraws.
func (e *Editor) Undo() {
	e.state, e.drawing = Idle, shape.None
	if e.stack.Undo() {
		e.replay()
	}
}

// Redo reapplies the last undone action and redraws.
func (e *Editor) Redo() {
	e.state, e.drawing = Idle, shape.None
	if e.stack.Redo() {
		e.replay()
	}
}

// Clear drops all history and blanks the surface.
func (e *Editor) Clear() {
	e.state, e.drawing, e.selection = Idle, shape.None, uuid.Nil
	e.stack.Clear()
	e.surface.Clear()
}
