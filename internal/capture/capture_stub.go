//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

func runningOnWayland() bool { return false }

func x11Screenshot() (*image.RGBA, error) { return nil, ErrUnsupported }

func portalScreenshot(bool, bool) (*image.RGBA, error) { return nil, ErrUnsupported }
