package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the colours of the editor window around the canvas.
type Theme struct {
	Name string

	Background color.RGBA // behind the canvas
	Foreground color.RGBA // status text

	ToolbarBackground color.RGBA
	ButtonBackground  color.RGBA
	ButtonActive      color.RGBA // selected tool
	ButtonText        color.RGBA
	ButtonBorder      color.RGBA

	// Transparent canvas pixels show this checkerboard.
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "default",
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		ToolbarBackground: color.RGBA{220, 220, 220, 255},
		ButtonBackground:  color.RGBA{200, 200, 200, 255},
		ButtonActive:      color.RGBA{150, 150, 150, 255},
		ButtonText:        color.RGBA{0, 0, 0, 255},
		ButtonBorder:      color.RGBA{0, 0, 0, 255},
		CheckerLight:      color.RGBA{220, 220, 220, 255},
		CheckerDark:       color.RGBA{192, 192, 192, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:              "dark",
		Background:        color.RGBA{40, 40, 40, 255},
		Foreground:        color.RGBA{230, 230, 230, 255},
		ToolbarBackground: color.RGBA{30, 30, 30, 255},
		ButtonBackground:  color.RGBA{60, 60, 60, 255},
		ButtonActive:      color.RGBA{100, 100, 100, 255},
		ButtonText:        color.RGBA{230, 230, 230, 255},
		ButtonBorder:      color.RGBA{120, 120, 120, 255},
		CheckerLight:      color.RGBA{90, 90, 90, 255},
		CheckerDark:       color.RGBA{70, 70, 70, 255},
	}
}

var builtins = map[string]func() *Theme{
	"default": Default,
	"light":   Default,
	"dark":    Dark,
}

// Builtin returns a fresh copy of a built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in theme names.
func BuiltinNames() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
