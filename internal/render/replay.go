package render

import (
	"image/color"

	"github.com/example/easel/internal/shape"
)

const (
	selectionWidth = 0.5
	selectionDash  = 2
	textWidth      = 1.0
)

// Replay clears s and draws records bottom to top.
func Replay(s Surface, records []shape.Record) {
	s.Clear()
	for _, r := range records {
		Draw(s, r)
	}
}

// Draw renders a single record with the paint attributes it carries.
func Draw(s Surface, r shape.Record) {
	s.Save()
	defer s.Restore()

	a := r.Attrs
	s.SetStrokeColor(a.Stroke)
	s.SetFillColor(a.Fill)
	s.SetLineWidth(a.Width)

	switch r.Kind {
	case shape.FreehandStroke:
		s.StrokePath(r.Points)
	case shape.EraseStroke:
		side := a.Width
		for _, p := range r.Points {
			s.ClearRect(shape.Rect{X: p.X - side/2, Y: p.Y - side/2, W: side, H: side})
		}
	case shape.Line:
		s.StrokeLine(r.Start, r.End)
	case shape.Rectangle, shape.Square:
		s.StrokeRect(r.Box)
		s.FillRect(r.Box)
	case shape.Circle, shape.Oval:
		s.StrokeEllipse(r.Start, r.RX, r.RY)
		s.FillEllipse(r.Start, r.RX, r.RY)
	case shape.Triangle:
		v := r.TriangleVertices()
		s.StrokePolygon(v)
		s.FillPolygon(v)
	case shape.Text:
		s.SetLineWidth(textWidth)
		s.StrokeText(r.Start, r.Label)
	case shape.ImageSelect:
		fillBox(s, r)
		s.SetStrokeColor(color.Black)
		s.SetLineWidth(selectionWidth)
		s.SetDash(selectionDash)
		s.StrokeRect(r.Box)
	case shape.ImageMove:
		fillBox(s, r)
	case shape.None:
	}
}

func fillBox(s Surface, r shape.Record) {
	if r.Pattern != nil {
		s.FillImage(r.Box, r.Pattern)
		return
	}
	s.FillRect(r.Box)
}
