//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func writeImage(data []byte) { clipboard.Write(clipboard.FmtImage, data) }
func readImage() []byte      { return clipboard.Read(clipboard.FmtImage) }
func writeText(data []byte)  { clipboard.Write(clipboard.FmtText, data) }
func readText() []byte       { return clipboard.Read(clipboard.FmtText) }
