package appstate

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/easel/internal/capture"
	"github.com/example/easel/internal/document"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/render"
	"github.com/example/easel/internal/shape"
)

var red = color.RGBA{255, 0, 0, 255}

func newTestSession(t *testing.T, opts ...Option) *session {
	t.Helper()
	doc := document.New()
	ed := editor.New(render.NewCanvas(40, 30), editor.WithDirtyListener(doc.SetDirty))
	all := append([]Option{WithEditor(ed), WithDocument(doc), WithSaveDir(t.TempDir())}, opts...)
	s := New(all...).newSession()
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func (s *session) buttonFor(t *testing.T, match func(buttonKind) bool) image.Point {
	t.Helper()
	for i, k := range s.kinds {
		if match(k) {
			r := s.buttons[i].Rect()
			return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
		}
	}
	t.Fatalf("no matching toolbar button")
	return image.Point{}
}

func click(s *session, p image.Point, b mouse.Button) {
	s.handleMouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: b, Direction: mouse.DirPress})
	s.handleMouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: b, Direction: mouse.DirRelease})
}

func (s *session) gesture(from, to shape.Point) {
	o := s.origin
	s.handleMouse(mouse.Event{X: float32(o.X) + float32(from.X), Y: float32(o.Y) + float32(from.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	s.handleMouse(mouse.Event{X: float32(o.X) + float32(to.X), Y: float32(o.Y) + float32(to.Y), Direction: mouse.DirNone})
	s.handleMouse(mouse.Event{X: float32(o.X) + float32(to.X), Y: float32(o.Y) + float32(to.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func typeKey(s *session, r rune, code key.Code, mods key.Modifiers) bool {
	return s.handleKey(key.Event{Rune: r, Code: code, Modifiers: mods, Direction: key.DirPress})
}

func TestToolbarAndCanvasGesture(t *testing.T) {
	s := newTestSession(t)
	click(s, s.buttonFor(t, func(k buttonKind) bool { return k.kind == kindTool && k.tool == editor.ToolRectangle }), mouse.ButtonLeft)
	if s.ed.Tool() != editor.ToolRectangle {
		t.Fatalf("tool = %v", s.ed.Tool())
	}
	s.gesture(shape.Pt(5, 5), shape.Pt(15, 12))

	recs := s.ed.Stack().Records()
	if len(recs) != 1 || recs[0].Kind != shape.Rectangle {
		t.Fatalf("records = %+v", recs)
	}
	if recs[0].Box != (shape.Rect{X: 5, Y: 5, W: 10, H: 7}) {
		t.Fatalf("box = %+v", recs[0].Box)
	}
	if !s.doc.Dirty() {
		t.Fatalf("drawing did not dirty the document")
	}
	if st, _ := s.ed.State(); st != editor.Idle {
		t.Fatalf("state = %v", st)
	}
}

func TestPressOutsideCanvasIgnored(t *testing.T) {
	s := newTestSession(t)
	s.ed.SetTool(editor.ToolLine)
	sz := s.windowSize()
	if s.handleMouse(mouse.Event{X: float32(sz.X - 1), Y: float32(sz.Y - 1), Button: mouse.ButtonLeft, Direction: mouse.DirPress}) {
		t.Fatalf("press in the status bar reported a change")
	}
	if s.ed.Stack().Len() != 0 {
		t.Fatalf("press outside the canvas drew")
	}
}

func TestSwatchButtons(t *testing.T) {
	s := newTestSession(t)
	swatch := s.buttonFor(t, func(k buttonKind) bool { return k.kind == kindSwatch && k.color == red })

	click(s, swatch, mouse.ButtonRight)
	stroke, fill, fillOn, _, _ := s.ed.Settings()
	if !fillOn || fill != red {
		t.Fatalf("right click: fill %v on=%v", fill, fillOn)
	}
	if stroke == red {
		t.Fatalf("right click changed the stroke")
	}

	click(s, swatch, mouse.ButtonLeft)
	if stroke, _, _, _, _ = s.ed.Settings(); stroke != red {
		t.Fatalf("left click: stroke %v", stroke)
	}

	click(s, s.buttonFor(t, func(k buttonKind) bool { return k.kind == kindFill }), mouse.ButtonLeft)
	if _, _, fillOn, _, _ = s.ed.Settings(); fillOn {
		t.Fatalf("fill toggle did not switch fill off")
	}

	click(s, s.buttonFor(t, func(k buttonKind) bool { return k.kind == kindWidth && k.width == 7 }), mouse.ButtonLeft)
	if _, _, _, w, _ := s.ed.Settings(); w != 7 {
		t.Fatalf("width = %v", w)
	}
}

func TestKeyboardShortcuts(t *testing.T) {
	s := newTestSession(t)
	typeKey(s, 'l', 0, 0)
	if s.ed.Tool() != editor.ToolLine {
		t.Fatalf("tool = %v", s.ed.Tool())
	}
	typeKey(s, '0', 0, 0)
	if _, _, _, w, _ := s.ed.Settings(); w != 10 {
		t.Fatalf("width = %v", w)
	}
	typeKey(s, 'f', 0, 0)
	if _, _, on, _, _ := s.ed.Settings(); !on {
		t.Fatalf("f did not toggle fill")
	}

	s.gesture(shape.Pt(1, 1), shape.Pt(9, 9))
	typeKey(s, 'z', 0, key.ModControl)
	if s.ed.Stack().Len() != 0 {
		t.Fatalf("ctrl+z did not undo")
	}
	typeKey(s, 'y', 0, key.ModControl)
	if s.ed.Stack().Len() != 1 {
		t.Fatalf("ctrl+y did not redo")
	}
	typeKey(s, 'C', 0, key.ModControl|key.ModShift)
	if s.ed.Stack().Len() != 0 || s.ed.Stack().CanRedo() {
		t.Fatalf("ctrl+shift+c did not clear")
	}
	if s.handleKey(key.Event{Rune: 'l', Direction: key.DirRelease}) {
		t.Fatalf("key release handled")
	}
}

func TestTextEntry(t *testing.T) {
	s := newTestSession(t)
	typeKey(s, 'x', 0, 0)
	if s.ed.Tool() != editor.ToolText {
		t.Fatalf("tool = %v", s.ed.Tool())
	}
	for _, r := range "Hil" {
		typeKey(s, r, 0, 0)
	}
	typeKey(s, 0, key.CodeDeleteBackspace, 0)
	if s.text != "Hi" {
		t.Fatalf("text = %q", s.text)
	}
	if s.ed.Tool() != editor.ToolText {
		t.Fatalf("typing a tool letter switched tools")
	}
	if !strings.Contains(s.status(), `text "Hi"`) {
		t.Fatalf("status = %q", s.status())
	}

	o := s.origin
	click(s, o.Add(image.Pt(3, 20)), mouse.ButtonLeft)
	recs := s.ed.Stack().Records()
	if len(recs) != 1 || recs[0].Kind != shape.Text || recs[0].Label != "Hi" {
		t.Fatalf("records = %+v", recs)
	}

	typeKey(s, 0, key.CodeEscape, 0)
	if s.text != "" {
		t.Fatalf("escape did not clear the text")
	}
}

func TestQuitConfirmation(t *testing.T) {
	s := newTestSession(t)
	typeKey(s, 0, key.CodeEscape, 0)
	if !s.quit {
		t.Fatalf("clean document did not quit")
	}

	s = newTestSession(t)
	s.ed.SetTool(editor.ToolLine)
	s.gesture(shape.Pt(1, 1), shape.Pt(5, 5))
	typeKey(s, 'q', 0, key.ModControl)
	if s.quit || !s.pendingQuit {
		t.Fatalf("dirty document quit without confirmation")
	}
	if !strings.Contains(s.status(), "unsaved changes") {
		t.Fatalf("status = %q", s.status())
	}
	typeKey(s, 'q', 0, key.ModControl)
	if !s.quit {
		t.Fatalf("second request did not quit")
	}
}

func TestQuitConfirmationResetByOtherAction(t *testing.T) {
	s := newTestSession(t)
	s.ed.SetTool(editor.ToolLine)
	s.gesture(shape.Pt(1, 1), shape.Pt(5, 5))
	typeKey(s, 'q', 0, key.ModControl)
	typeKey(s, 'z', 0, key.ModControl)
	typeKey(s, 'q', 0, key.ModControl)
	if s.quit {
		t.Fatalf("quit confirmed across another action")
	}
}

func TestSaveToSaveDir(t *testing.T) {
	s := newTestSession(t)
	s.ed.SetTool(editor.ToolLine)
	s.gesture(shape.Pt(1, 1), shape.Pt(5, 5))
	typeKey(s, 's', 0, key.ModControl)

	want := filepath.Join(s.app.saveDir, "easel-20260102-030405.png")
	if s.doc.Path() != want {
		t.Fatalf("path = %q, want %q", s.doc.Path(), want)
	}
	if s.doc.Dirty() {
		t.Fatalf("document dirty after save")
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("saved file: %v", err)
	}
}

func TestClipboardAndCapture(t *testing.T) {
	s := newTestSession(t)
	var copied image.Image
	prevW, prevR, prevC := writeClipboard, readClipboard, captureScreen
	t.Cleanup(func() { writeClipboard, readClipboard, captureScreen = prevW, prevR, prevC })
	writeClipboard = func(img image.Image) error { copied = img; return nil }
	readClipboard = func() (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, 40, 30))
		img.SetRGBA(2, 2, red)
		return img, nil
	}
	captureScreen = func(capture.Options) (*image.RGBA, error) { return nil, errors.New("no display") }

	typeKey(s, 'c', 0, key.ModControl)
	if copied == nil || copied.Bounds().Dx() != 40 {
		t.Fatalf("copied = %v", copied)
	}

	typeKey(s, 'v', 0, key.ModControl)
	if !s.doc.Dirty() {
		t.Fatalf("paste did not dirty the document")
	}
	if c, err := s.ed.ColorAt(shape.Pt(2, 2)); err != nil || c != red {
		t.Fatalf("background pixel = %v, %v", c, err)
	}

	typeKey(s, 'n', 0, key.ModControl)
	if !strings.Contains(s.status(), "capture failed") {
		t.Fatalf("status = %q", s.status())
	}
}

func TestRenderFrame(t *testing.T) {
	s := newTestSession(t)
	s.ed.SetFillColor(red)
	s.ed.SetFillEnabled(true)
	s.ed.SetTool(editor.ToolRectangle)
	s.gesture(shape.Pt(5, 5), shape.Pt(20, 20))

	sz := s.windowSize()
	dst := image.NewRGBA(image.Rectangle{Max: sz})
	s.render(dst)

	if got := dst.RGBAAt(s.origin.X+12, s.origin.Y+12); got != red {
		t.Fatalf("canvas pixel = %v", got)
	}
	light := s.app.theme.CheckerLight
	if got := dst.RGBAAt(s.origin.X+1, s.origin.Y+1); got != light {
		t.Fatalf("transparent pixel = %v, want checker %v", got, light)
	}
	if sz.Y < s.toolbarHeight()+statusHeight {
		t.Fatalf("window %v too short for the toolbar", sz)
	}
}

func TestWarningsReachStatus(t *testing.T) {
	var app *AppState
	doc := document.New()
	ed := editor.New(render.NewCanvas(10, 10), editor.WithWarningListener(func(err error) { app.Warn(err) }))
	app = New(WithEditor(ed), WithDocument(doc))
	s := app.newSession()
	s.ed.SetTool(editor.ToolDropper)
	s.ed.Press(shape.Pt(-5, -5))
	s.takeWarning()
	if !strings.Contains(s.status(), editor.ErrOutOfBounds.Error()) {
		t.Fatalf("status = %q", s.status())
	}
}
