package appstate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/easel/internal/capture"
	"github.com/example/easel/internal/clipboard"
	"github.com/example/easel/internal/document"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/palette"
)

const (
	statusHeight = 20
	buttonHeight = 20
	swatchSize   = 16
	swatchPitch  = 18
	widthHeight  = 14
	gap          = 4
	messageTime  = 3 * time.Second
)

var (
	writeClipboard     = clipboard.WriteImage
	readClipboard      = clipboard.ReadImage
	readClipboardText  = clipboard.ReadText
	captureScreen      = capture.Screen
	errQuitUnconfirmed = errors.New("unsaved changes")
)

// session is the window's view of one editor. It is driven by Main and
// touched only from the event loop.
type session struct {
	app *AppState
	ed  *editor.Editor
	doc *document.Document

	toolbarWidth int
	origin       image.Point
	buttons      []*CacheButton
	kinds        []buttonKind
	hover        int

	bindings map[KeyShortcut]string
	actions  map[string]func()

	dragging    bool
	pendingQuit bool
	quit        bool
	text        string

	message      string
	messageUntil time.Time
	now          func() time.Time
}

type buttonKind struct {
	kind  int
	tool  editor.Tool
	color color.RGBA
	width int
}

const (
	kindTool = iota
	kindSwatch
	kindWidth
	kindFill
)

func (a *AppState) newSession() *session {
	s := &session{
		app:   a,
		ed:    a.editor,
		doc:   a.doc,
		hover: -1,
		now:   time.Now,
	}
	s.buildToolbar()
	s.registerActions()
	return s
}

func (s *session) buildToolbar() {
	th := s.app.theme
	w := 4 * swatchPitch
	for _, t := range editor.Tools() {
		if lw := labelWidth(toolLabel(t, toolKeys[t])) + 8; lw > w {
			w = lw
		}
	}
	s.toolbarWidth = w
	s.origin = image.Pt(w, 0)

	add := func(b Button, k buttonKind) {
		s.buttons = append(s.buttons, &CacheButton{Button: b})
		s.kinds = append(s.kinds, k)
	}

	y := 0
	for _, t := range editor.Tools() {
		add(&ToolButton{
			tool:     t,
			label:    toolLabel(t, toolKeys[t]),
			rect:     image.Rect(0, y, w, y+buttonHeight),
			theme:    th,
			onSelect: s.setTool,
		}, buttonKind{kind: kindTool, tool: t})
		y += buttonHeight
	}

	y += gap
	cols := (w - gap) / swatchPitch
	for i, e := range palette.Swatches() {
		x := gap + (i%cols)*swatchPitch
		row := y + (i/cols)*swatchPitch
		add(&SwatchButton{
			entry:  e,
			rect:   image.Rect(x, row, x+swatchSize, row+swatchSize),
			theme:  th,
			onPick: s.pickSwatch,
		}, buttonKind{kind: kindSwatch, color: e.Color})
	}
	rows := (len(palette.Swatches()) + cols - 1) / cols
	y += rows*swatchPitch + gap

	add(&ActionButton{
		label:      "f:Fill",
		rect:       image.Rect(0, y, w, y+buttonHeight),
		theme:      th,
		onActivate: s.toggleFill,
	}, buttonKind{kind: kindFill})
	y += buttonHeight + gap

	for width := int(editor.MinStrokeWidth); width <= int(editor.MaxStrokeWidth); width++ {
		add(&WidthButton{
			width:    width,
			rect:     image.Rect(0, y, w, y+widthHeight),
			theme:    th,
			onSelect: s.setWidth,
		}, buttonKind{kind: kindWidth, width: width})
		y += widthHeight
	}
}

// toolbarHeight is the height the toolbar needs.
func (s *session) toolbarHeight() int {
	if len(s.buttons) == 0 {
		return 0
	}
	return s.buttons[len(s.buttons)-1].Rect().Max.Y
}

// windowSize fits the canvas and the toolbar side by side above the status bar.
func (s *session) windowSize() image.Point {
	b := s.ed.Surface().Bounds()
	h := b.Dy()
	if th := s.toolbarHeight(); th > h {
		h = th
	}
	return image.Pt(s.toolbarWidth+b.Dx(), h+statusHeight)
}

func (s *session) register(name string, keys KeyboardShortcuts, fn func()) {
	s.actions[name] = fn
	if keys == nil {
		return
	}
	for _, k := range keys.KeyboardShortcuts() {
		s.bindings[k] = name
	}
}

func (s *session) registerActions() {
	s.actions = map[string]func(){}
	s.bindings = map[KeyShortcut]string{}

	s.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, s.ed.Undo)
	s.register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, s.ed.Redo)
	s.register("clear", shortcutList{{Rune: 'c', Modifiers: key.ModControl | key.ModShift}}, s.clear)
	s.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, s.save)
	s.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, s.copy)
	s.register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, s.paste)
	s.register("capture", shortcutList{{Rune: 'n', Modifiers: key.ModControl}}, s.capture)
	s.register("quit", shortcutList{
		{Rune: 'q', Modifiers: key.ModControl},
		{Code: key.CodeEscape},
	}, s.requestQuit)
	s.register("fill", shortcutList{{Rune: 'f'}}, s.toggleFill)
	for t, r := range toolKeys {
		tool := t
		s.register("tool:"+tool.String(), shortcutList{{Rune: r}}, func() { s.setTool(tool) })
	}
	for w := int(editor.MinStrokeWidth); w <= int(editor.MaxStrokeWidth); w++ {
		width := w
		r := rune('0' + w%10)
		s.register(fmt.Sprintf("width:%d", width), shortcutList{{Rune: r}}, func() { s.setWidth(width) })
	}
}

func (s *session) flash(format string, args ...interface{}) {
	s.message = fmt.Sprintf(format, args...)
	s.messageUntil = s.now().Add(messageTime)
	log.Print(s.message)
}

func (s *session) setTool(t editor.Tool) {
	s.ed.SetTool(t)
	s.pendingQuit = false
}

func (s *session) setWidth(w int) { s.ed.SetStrokeWidth(float64(w)) }

func (s *session) pickSwatch(c color.RGBA, fill bool) {
	if fill {
		s.ed.SetFillColor(c)
		s.ed.SetFillEnabled(true)
		return
	}
	s.ed.SetStrokeColor(c)
}

func (s *session) toggleFill() {
	_, _, on, _, _ := s.ed.Settings()
	s.ed.SetFillEnabled(!on)
}

func (s *session) clear() {
	s.ed.Clear()
	s.flash("canvas cleared")
}

// savePath is the document file, or a new timestamped file in the save
// directory for a document that was never saved.
func (s *session) savePath() string {
	if p := s.doc.Path(); p != "" {
		return p
	}
	name := fmt.Sprintf("easel-%s.%s", s.now().Format("20060102-150405"), s.app.format)
	return filepath.Join(s.app.saveDir, name)
}

func (s *session) save() {
	path := s.savePath()
	if err := s.doc.SaveAs(path, s.ed.Composite()); err != nil {
		s.flash("save failed: %v", err)
		return
	}
	s.pendingQuit = false
	s.flash("saved %s", path)
	s.app.notifier.Save(path)
}

func (s *session) copy() {
	if err := writeClipboard(s.ed.Composite()); err != nil {
		s.flash("copy failed: %v", err)
		return
	}
	s.flash("image copied to clipboard")
	s.app.notifier.Copy("canvas")
}

// paste appends clipboard text to the pending label while the text tool is
// active and otherwise replaces the background with the clipboard image.
func (s *session) paste() {
	if s.ed.Tool() == editor.ToolText {
		txt, err := readClipboardText()
		if err != nil {
			s.flash("paste failed: %v", err)
			return
		}
		s.setText(s.text + txt)
		return
	}
	img, err := readClipboard()
	if err != nil {
		s.flash("paste failed: %v", err)
		return
	}
	s.setBackground(document.ToRGBA(img))
	s.flash("pasted background")
}

func (s *session) capture() {
	img, err := captureScreen(capture.Options{})
	if err != nil {
		s.flash("capture failed: %v", err)
		return
	}
	s.setBackground(img)
	s.flash("captured screen")
	s.app.notifier.Capture("screen", img)
}

func (s *session) setBackground(img *image.RGBA) {
	s.ed.SetBackground(img)
	s.doc.SetDirty(true)
}

// requestQuit closes at once when the document is clean. Otherwise the
// first request warns and the second one discards the changes.
func (s *session) requestQuit() {
	if s.doc.ConfirmDiscard(func() bool { return s.pendingQuit }) {
		s.quit = true
		return
	}
	s.pendingQuit = true
	s.flash("%v: press Ctrl+Q again to discard, Ctrl+S to save", errQuitUnconfirmed)
}

func (s *session) setText(t string) {
	s.text = t
	s.ed.SetPendingText(t)
}

// handleKey applies a key event and reports whether the frame changed.
func (s *session) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if s.ed.Tool() == editor.ToolText && e.Modifiers&^key.ModShift == 0 && s.typeText(e) {
		return true
	}
	action, ok := lookup(s.bindings, e)
	if !ok {
		return false
	}
	if action != "quit" {
		s.pendingQuit = false
	}
	s.actions[action]()
	return true
}

// typeText edits the pending label for the text tool.
func (s *session) typeText(e key.Event) bool {
	switch e.Code {
	case key.CodeDeleteBackspace:
		if s.text != "" {
			r := []rune(s.text)
			s.setText(string(r[:len(r)-1]))
		}
		return true
	case key.CodeEscape:
		if s.text == "" {
			return false
		}
		s.setText("")
		return true
	case key.CodeReturnEnter, key.CodeTab:
		return true
	}
	if e.Rune >= ' ' {
		s.setText(s.text + string(e.Rune))
		return true
	}
	return false
}

// handleMouse routes a mouse event to the toolbar or the editor and reports
// whether the frame changed.
func (s *session) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	if s.message != "" && e.Direction == mouse.DirPress {
		s.messageUntil = time.Time{}
	}

	if !s.dragging && p.X < s.toolbarWidth {
		hover := -1
		for i, b := range s.buttons {
			if p.In(b.Rect()) {
				hover = i
				if e.Direction == mouse.DirPress {
					b.Activate(e.Button)
					return true
				}
				break
			}
		}
		changed := hover != s.hover
		s.hover = hover
		return changed
	}
	if s.hover != -1 {
		s.hover = -1
	}

	cx := float64(e.X) - float64(s.origin.X)
	cy := float64(e.Y) - float64(s.origin.Y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if !p.In(s.canvasRect()) {
			return false
		}
		s.dragging = true
		s.ed.Handle(editor.PointerEvent{Type: editor.Press, X: cx, Y: cy})
	case e.Direction == mouse.DirNone && s.dragging:
		s.ed.Handle(editor.PointerEvent{Type: editor.Drag, X: cx, Y: cy})
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease && s.dragging:
		s.dragging = false
		s.ed.Handle(editor.PointerEvent{Type: editor.Release, X: cx, Y: cy})
	default:
		return false
	}
	s.takeWarning()
	return true
}

func (s *session) takeWarning() {
	if w := s.app.takeWarning(); w != "" {
		s.flash("%s", w)
	}
}

func (s *session) canvasRect() image.Rectangle {
	return s.ed.Surface().Bounds().Add(s.origin)
}

func (s *session) buttonState(i int) ButtonState {
	stroke, fill, fillOn, width, _ := s.ed.Settings()
	k := s.kinds[i]
	selected := false
	switch k.kind {
	case kindTool:
		selected = k.tool == s.ed.Tool()
	case kindSwatch:
		selected = k.color == stroke || (fillOn && k.color == fill)
	case kindWidth:
		selected = float64(k.width) == width
	case kindFill:
		selected = fillOn
	}
	switch {
	case selected:
		return StatePressed
	case i == s.hover:
		return StateHover
	}
	return StateDefault
}

// status is the text shown in the bar under the canvas.
func (s *session) status() string {
	if s.message != "" && s.now().Before(s.messageUntil) {
		return s.message
	}
	stroke, fill, fillOn, width, _ := s.ed.Settings()
	fillName := "off"
	if fillOn {
		fillName = palette.Name(fill)
	}
	line := fmt.Sprintf("%s | %s | stroke %s | fill %s | width %g",
		s.doc.Title(), s.ed.Tool(), palette.Name(stroke), fillName, width)
	if s.ed.Tool() == editor.ToolText {
		line += fmt.Sprintf(" | text %q", s.text)
	}
	return line
}

// render draws a full frame into dst.
func (s *session) render(dst *image.RGBA) {
	th := s.app.theme
	b := dst.Bounds()
	fillRect(dst, b, th.Background)
	fillRect(dst, image.Rect(0, 0, s.toolbarWidth, b.Max.Y-statusHeight), th.ToolbarBackground)
	for i, btn := range s.buttons {
		btn.Draw(dst, s.buttonState(i))
	}

	cr := s.canvasRect().Intersect(image.Rect(s.toolbarWidth, 0, b.Max.X, b.Max.Y-statusHeight))
	drawCheckerboard(dst, cr, 8, th.CheckerLight, th.CheckerDark)
	img := s.ed.Composite()
	draw.Draw(dst, cr, img, cr.Min.Sub(s.origin), draw.Over)

	bar := image.Rect(0, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	fillRect(dst, bar, th.ToolbarBackground)
	fillRect(dst, image.Rect(bar.Min.X, bar.Min.Y, bar.Max.X, bar.Min.Y+1), th.ButtonBorder)
	drawLabel(dst, s.status(), 4, bar.Min.Y+14, th.Foreground)
}
