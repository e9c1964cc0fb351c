package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/easel/internal/editor"
	"github.com/example/easel/internal/palette"
	"github.com/example/easel/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is a toolbar element. Activate receives the mouse button that
// clicked it.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	Activate(b mouse.Button)
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	r := cb.Button.Rect()
	if cb.cache[state] == nil {
		img := image.NewRGBA(r)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, r, cb.cache[state], r.Min, draw.Src)
}

func stateColor(th *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return mix(th.ButtonBackground, th.ButtonActive)
	case StatePressed:
		return th.ButtonActive
	}
	return th.ButtonBackground
}

func mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		uint8((int(a.R) + int(b.R)) / 2),
		uint8((int(a.G) + int(b.G)) / 2),
		uint8((int(a.B) + int(b.B)) / 2),
		255,
	}
}

// ToolButton selects a tool.
type ToolButton struct {
	tool     editor.Tool
	label    string
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func(editor.Tool)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	fillRect(dst, tb.rect, stateColor(tb.theme, state))
	drawLabel(dst, tb.label, tb.rect.Min.X+4, tb.rect.Min.Y+14, tb.theme.ButtonText)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) Activate(mouse.Button) {
	if tb.onSelect != nil {
		tb.onSelect(tb.tool)
	}
}

func toolLabel(t editor.Tool, shortcut rune) string {
	name := t.String()
	name = strings.ToUpper(name[:1]) + name[1:]
	if shortcut == 0 {
		return name
	}
	return fmt.Sprintf("%c:%s", shortcut, name)
}

// SwatchButton sets the stroke colour on a left click and the fill colour
// on a right click.
type SwatchButton struct {
	entry  palette.Entry
	rect   image.Rectangle
	theme  *theme.Theme
	onPick func(c color.RGBA, fill bool)
}

func (sb *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	fillRect(dst, sb.rect, sb.entry.Color)
	switch state {
	case StateHover:
		draw.Draw(dst, sb.rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
	case StatePressed:
		strokeRect(dst, sb.rect, sb.theme.ButtonBorder)
	}
}

func (sb *SwatchButton) Rect() image.Rectangle { return sb.rect }

func (sb *SwatchButton) Activate(b mouse.Button) {
	if sb.onPick != nil {
		sb.onPick(sb.entry.Color, b == mouse.ButtonRight)
	}
}

// WidthButton sets the stroke width.
type WidthButton struct {
	width    int
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func(int)
}

func (wb *WidthButton) Draw(dst *image.RGBA, state ButtonState) {
	fillRect(dst, wb.rect, stateColor(wb.theme, state))
	drawLabel(dst, fmt.Sprintf("%d", wb.width), wb.rect.Min.X+4, wb.rect.Min.Y+11, wb.theme.ButtonText)
	mid := (wb.rect.Min.Y + wb.rect.Max.Y) / 2
	top := mid - wb.width/2
	line := image.Rect(wb.rect.Min.X+24, top, wb.rect.Max.X-4, top+wb.width)
	fillRect(dst, line.Intersect(wb.rect), wb.theme.ButtonText)
}

func (wb *WidthButton) Rect() image.Rectangle { return wb.rect }

func (wb *WidthButton) Activate(mouse.Button) {
	if wb.onSelect != nil {
		wb.onSelect(wb.width)
	}
}

// ActionButton runs an action such as toggling fill.
type ActionButton struct {
	label      string
	rect       image.Rectangle
	theme      *theme.Theme
	onActivate func()
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	fillRect(dst, ab.rect, stateColor(ab.theme, state))
	strokeRect(dst, ab.rect, ab.theme.ButtonBorder)
	drawLabel(dst, ab.label, ab.rect.Min.X+4, ab.rect.Min.Y+14, ab.theme.ButtonText)
}

func (ab *ActionButton) Rect() image.Rectangle { return ab.rect }

func (ab *ActionButton) Activate(mouse.Button) {
	if ab.onActivate != nil {
		ab.onActivate()
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func drawLabel(dst *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		for x := rect.Min.X; x < rect.Max.X; x += size {
			c := light
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 == 1 {
				c = dark
			}
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			fillRect(dst, cell, c)
		}
	}
}
