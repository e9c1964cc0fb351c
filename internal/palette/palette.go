// Package palette names and parses drawing colours.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Custom is the name reported for colours outside the named set.
const Custom = "Custom"

// Entry is a named swatch.
type Entry struct {
	Name  string
	Color color.RGBA
}

var swatches = []Entry{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Maroon", color.RGBA{128, 0, 0, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Navy", color.RGBA{0, 0, 128, 255}},
	{"Olive", color.RGBA{128, 128, 0, 255}},
	{"Teal", color.RGBA{0, 128, 128, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Silver", color.RGBA{192, 192, 192, 255}},
	{"Gray", color.RGBA{128, 128, 128, 255}},
}

// names maps every opaque named colour to its upper-case name. Where several
// names share a value the alphabetically first wins.
var names = buildNames()

func buildNames() map[color.RGBA]string {
	out := make(map[color.RGBA]string, len(colornames.Names))
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		up := strings.ToUpper(name)
		if prev, ok := out[c]; !ok || up < prev {
			out[c] = up
		}
	}
	return out
}

// Swatches returns the toolbar palette.
func Swatches() []Entry {
	out := make([]Entry, len(swatches))
	copy(out, swatches)
	return out
}

// Name returns the upper-case name of c, or Custom when c has none.
func Name(c color.Color) string {
	if name, ok := names[color.RGBAModel.Convert(c).(color.RGBA)]; ok {
		return name
	}
	return Custom
}

// Names lists every colour name Parse accepts, sorted.
func Names() []string {
	out := make([]string, len(colornames.Names))
	copy(out, colornames.Names)
	sort.Strings(out)
	return out
}

// Parse accepts a colour name, "none"/"transparent", or #RRGGBB[AA].
func Parse(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if name == "none" || name == "transparent" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	for _, e := range swatches {
		if strings.EqualFold(e.Name, name) {
			return e.Color, nil
		}
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 9) {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		if len(name) == 7 {
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
		}
		return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
