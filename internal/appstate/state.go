// Package appstate is the window front-end: it shows the canvas next to a
// toolbar and feeds mouse and keyboard input to the editor.
package appstate

import (
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/easel/internal/document"
	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/notify"
	"github.com/example/easel/internal/render"
	"github.com/example/easel/internal/theme"
)

// AppState holds what the window needs to run.
type AppState struct {
	editor   *editor.Editor
	doc      *document.Document
	theme    *theme.Theme
	notifier *notify.Notifier
	saveDir  string
	format   document.Format

	mu      sync.Mutex
	warning string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithEditor sets the editor the window drives.
func WithEditor(ed *editor.Editor) Option { return func(a *AppState) { a.editor = ed } }

// WithDocument sets the document behind the canvas.
func WithDocument(doc *document.Document) Option { return func(a *AppState) { a.doc = doc } }

// WithTheme sets the window colours.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.theme = th } }

// WithNotifier sets the desktop notifier used after save, copy and capture.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithSaveDir sets where never-saved documents are written.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.saveDir = dir } }

// WithFormat sets the format for never-saved documents.
func WithFormat(f document.Format) Option { return func(a *AppState) { a.format = f } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{saveDir: ".", format: document.PNG}
	for _, o := range opts {
		o(a)
	}
	if a.editor == nil {
		a.editor = editor.New(render.NewCanvas(800, 600))
	}
	if a.doc == nil {
		a.doc = document.New()
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	return a
}

// Warn shows err in the status bar. It is meant for the editor's warning
// listener.
func (a *AppState) Warn(err error) {
	if err == nil {
		return
	}
	a.mu.Lock()
	a.warning = err.Error()
	a.mu.Unlock()
}

func (a *AppState) takeWarning() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	w := a.warning
	a.warning = ""
	return w
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed or the user quits.
func (a *AppState) Main(s screen.Screen) {
	sess := a.newSession()
	sz := sess.windowSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: a.doc.Title()})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	width, height := sz.X, sz.Y
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				if a.doc.Dirty() {
					log.Printf("window closed with unsaved changes")
				}
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
		case paint.Event:
			drawFrame(s, w, sess, width, height)
		case mouse.Event:
			if sess.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if sess.handleKey(e) {
				w.Send(paint.Event{})
			}
			if sess.quit {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func drawFrame(s screen.Screen, w screen.Window, sess *session, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	sess.render(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
