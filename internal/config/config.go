package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/easel/internal/palette"
	"github.com/example/easel/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Paint holds the toolbar state a new editor starts with.
type Paint struct {
	Stroke      color.RGBA
	Fill        color.RGBA
	FillEnabled bool
	StrokeWidth float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Format  string
	Width   int
	Height  int
	Paint   Paint
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Format: "png",
		Width:  800,
		Height: 600,
		Paint: Paint{
			Stroke:      color.RGBA{0, 0, 0, 255},
			Fill:        color.RGBA{0, 0, 0, 255},
			StrokeWidth: 1,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "format = %s\n", c.Format)
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	sb.WriteString("\n")

	sb.WriteString("[paint]\n")
	fmt.Fprintf(&sb, "stroke = %s\n", palette.Hex(c.Paint.Stroke))
	if c.Paint.FillEnabled {
		fmt.Fprintf(&sb, "fill = %s\n", palette.Hex(c.Paint.Fill))
	} else {
		sb.WriteString("fill = none\n")
	}
	fmt.Fprintf(&sb, "stroke_width = %s\n", strconv.FormatFloat(c.Paint.StrokeWidth, 'g', -1, 64))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name = %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s = %s\n", f.Name, palette.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
