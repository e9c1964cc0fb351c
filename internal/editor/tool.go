package editor

import (
	"fmt"
	"strings"

	"github.com/example/easel/internal/shape"
)

// Tool is the toolbar selection that decides what a press does.
type Tool int

const (
	ToolNone Tool = iota
	ToolPencil
	ToolEraser
	ToolLine
	ToolRectangle
	ToolSquare
	ToolCircle
	ToolOval
	ToolTriangle
	ToolText
	ToolSelect
	ToolMove
	ToolDropper
)

var toolNames = [...]string{
	ToolNone:      "none",
	ToolPencil:    "pencil",
	ToolEraser:    "eraser",
	ToolLine:      "line",
	ToolRectangle: "rectangle",
	ToolSquare:    "square",
	ToolCircle:    "circle",
	ToolOval:      "oval",
	ToolTriangle:  "triangle",
	ToolText:      "text",
	ToolSelect:    "select",
	ToolMove:      "move",
	ToolDropper:   "dropper",
}

var toolKinds = [...]shape.Kind{
	ToolNone:      shape.None,
	ToolPencil:    shape.FreehandStroke,
	ToolEraser:    shape.EraseStroke,
	ToolLine:      shape.Line,
	ToolRectangle: shape.Rectangle,
	ToolSquare:    shape.Square,
	ToolCircle:    shape.Circle,
	ToolOval:      shape.Oval,
	ToolTriangle:  shape.Triangle,
	ToolText:      shape.Text,
	ToolSelect:    shape.ImageSelect,
	ToolMove:      shape.ImageSelect,
	ToolDropper:   shape.None,
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Kind is the record kind the tool produces or manipulates.
func (t Tool) Kind() shape.Kind {
	if t < 0 || int(t) >= len(toolKinds) {
		return shape.None
	}
	return toolKinds[t]
}

// draws reports whether a press with t starts a Drawing gesture.
func (t Tool) draws() bool {
	switch t {
	case ToolPencil, ToolEraser, ToolLine, ToolRectangle, ToolSquare,
		ToolCircle, ToolOval, ToolTriangle:
		return true
	}
	return false
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	out := make([]Tool, 0, len(toolNames))
	for t := ToolPencil; t <= ToolDropper; t++ {
		out = append(out, t)
	}
	return append(out, ToolNone)
}

// ParseTool resolves a tool by name. Shape kind names are accepted too.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range toolNames {
		if name == s {
			return Tool(t), nil
		}
	}
	switch s {
	case "freehand", "pen":
		return ToolPencil, nil
	case "erase":
		return ToolEraser, nil
	case "rect":
		return ToolRectangle, nil
	case "ellipse":
		return ToolOval, nil
	case "picker":
		return ToolDropper, nil
	}
	return ToolNone, fmt.Errorf("unknown tool %q", s)
}

// State is the dispatcher's gesture state.
type State int

const (
	Idle State = iota
	Drawing
	SelectingImage
	MovingImage
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case SelectingImage:
		return "selecting"
	case MovingImage:
		return "moving"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
