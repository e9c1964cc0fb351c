//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import "errors"

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
