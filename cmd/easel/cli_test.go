package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/easel/internal/appstate"
	"github.com/example/easel/internal/capture"
	"github.com/example/easel/internal/document"
)

const boxScript = `# red box
tool rectangle
fill red
press 2 2
drag 8 8
release 8 8
`

func newTestRoot(t *testing.T) *root {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EASEL_THEME", "")
	return newRoot()
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestRootUsage(t *testing.T) {
	r := newTestRoot(t)
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: easel", "replay", "-notify-save"} {
		if !strings.Contains(help, want) {
			t.Errorf("help does not mention %q:\n%s", want, help)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	r := newTestRoot(t)
	var uerr *UsageError
	if err := r.Run([]string{"paint"}); !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
}

func TestReplayWritesImage(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "box.txt")
	if err := os.WriteFile(script, []byte(boxScript), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "box.png")

	r := newTestRoot(t)
	if err := r.Run([]string{"replay", "-width", "12", "-height", "10", "-output", out, script}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	img, err := document.Load(out)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 12, 10) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("fill pixel = %v", got)
	}
}

func TestReplayFromStdinWithFormat(t *testing.T) {
	prev := stdin
	stdin = strings.NewReader(boxScript)
	t.Cleanup(func() { stdin = prev })

	out := filepath.Join(t.TempDir(), "box.out")
	r := newTestRoot(t)
	if err := r.Run([]string{"replay", "-width", "10", "-height", "10", "-format", "bmp", "-output", out}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("BM")) {
		t.Fatalf("expected a BMP file")
	}
}

func TestReplayOverBackground(t *testing.T) {
	dir := t.TempDir()
	bgPath := filepath.Join(dir, "bg.png")
	bg := image.NewRGBA(image.Rect(0, 0, 16, 14))
	for i := 0; i < len(bg.Pix); i += 4 {
		bg.Pix[i+1], bg.Pix[i+3] = 255, 255
	}
	if err := document.WriteFile(bgPath, document.PNG, bg); err != nil {
		t.Fatal(err)
	}
	prev := stdin
	stdin = strings.NewReader(boxScript)
	t.Cleanup(func() { stdin = prev })

	out := filepath.Join(dir, "out.png")
	r := newTestRoot(t)
	if err := r.Run([]string{"replay", "-background", bgPath, "-output", out, "-"}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	img, err := document.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 || img.RGBAAt(14, 12) != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("background lost: %v %v", img.Bounds(), img.RGBAAt(14, 12))
	}
}

func TestReplayErrors(t *testing.T) {
	r := newTestRoot(t)
	if _, err := parseReplayCmd(nil, r); err == nil || !strings.Contains(err.Error(), "-to-clipboard is required") {
		t.Fatalf("missing output accepted: %v", err)
	}
	if _, err := parseReplayCmd([]string{"-output", "x.png", "-format", "webp"}, r); !errors.Is(err, document.ErrUnsupportedFormat) {
		t.Fatalf("bad format: %v", err)
	}

	prev := stdin
	stdin = strings.NewReader("tool line\npress 1\n")
	t.Cleanup(func() { stdin = prev })
	cmd, err := parseReplayCmd([]string{"-output", filepath.Join(t.TempDir(), "x.png")}, r)
	if err != nil {
		t.Fatal(err)
	}
	err = cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("script error = %v", err)
	}
}

func TestReplayToClipboard(t *testing.T) {
	var copied image.Image
	prev, prevIn := writeClipboardFn, stdin
	writeClipboardFn = func(img image.Image) error { copied = img; return nil }
	stdin = strings.NewReader(boxScript)
	t.Cleanup(func() { writeClipboardFn, stdin = prev, prevIn })

	r := newTestRoot(t)
	if err := r.Run([]string{"replay", "-width", "9", "-height", "9", "-to-clip"}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if copied == nil || copied.Bounds().Dx() != 9 {
		t.Fatalf("copied = %v", copied)
	}
}

func TestEditCaptureError(t *testing.T) {
	original := captureScreenFn
	sentinel := errors.New("denied")
	captureScreenFn = func(capture.Options) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenFn = original })

	r := newTestRoot(t)
	err := r.Run([]string{"edit", "-capture"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestEditFlagConflicts(t *testing.T) {
	r := newTestRoot(t)
	if _, err := parseEditCmd([]string{"-capture", "-from-clipboard"}, r); err == nil {
		t.Fatalf("capture with clipboard accepted")
	}
	if _, err := parseEditCmd([]string{"-interactive"}, r); err == nil {
		t.Fatalf("-interactive without -capture accepted")
	}
	if _, err := parseEditCmd([]string{"-width", "0"}, r); err == nil {
		t.Fatalf("zero width accepted")
	}
}

func TestEditOpensFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	if err := document.WriteFile(path, document.PNG, image.NewRGBA(image.Rect(0, 0, 30, 20))); err != nil {
		t.Fatal(err)
	}
	var ran *appstate.AppState
	prev := runWindow
	runWindow = func(a *appstate.AppState) { ran = a }
	t.Cleanup(func() { runWindow = prev })

	r := newTestRoot(t)
	cmd, err := parseEditCmd([]string{"-file", path}, r)
	if err != nil {
		t.Fatal(err)
	}
	doc := document.New(document.WithPath(path))
	bg, err := cmd.background(doc)
	if err != nil || bg == nil || bg.Bounds().Dx() != 30 {
		t.Fatalf("background = %v, %v", bg, err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ran == nil {
		t.Fatalf("window not started")
	}

	missing, err := parseEditCmd([]string{"-file", filepath.Join(t.TempDir(), "new.png")}, r)
	if err != nil {
		t.Fatal(err)
	}
	if bg, err := missing.background(document.New()); err != nil || bg != nil {
		t.Fatalf("new file background = %v, %v", bg, err)
	}
}

func TestColorsAndWidths(t *testing.T) {
	out := captureStdout(t)
	r := newTestRoot(t)
	if err := r.Run([]string{"colors"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "* ") || !strings.Contains(out.String(), "#FF0000") {
		t.Fatalf("colors output:\n%s", out)
	}

	out.Reset()
	if err := r.Run([]string{"widths"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "*   1px") || !strings.Contains(out.String(), "10px") {
		t.Fatalf("widths output:\n%s", out)
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	out := captureStdout(t)
	r := newTestRoot(t)
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[paint]") {
		t.Fatalf("config output:\n%s", out)
	}

	if err := r.Run([]string{"config", "save"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".config", "easel", "config.rc")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}
