package editor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/easel/internal/palette"
	"github.com/example/easel/internal/shape"
)

// Command is one line of an event script.
type Command struct {
	Line int
	Name string
	Args []string
}

// ParseScript reads one command per line. Blank lines and lines starting
// with '#' are skipped. The text command keeps the rest of its line verbatim.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rest, _ := strings.Cut(line, " ")
		name = strings.ToLower(name)
		cmd := Command{Line: n, Name: name}
		if name == "text" {
			cmd.Args = []string{strings.TrimSpace(rest)}
		} else {
			cmd.Args = strings.Fields(rest)
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// Run parses and applies a script, stopping at the first bad command.
func (e *Editor) Run(r io.Reader) error {
	cmds, err := ParseScript(r)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		if err := e.Apply(c); err != nil {
			return fmt.Errorf("line %d: %w", c.Line, err)
		}
	}
	return nil
}

// Apply executes a single script command.
func (e *Editor) Apply(c Command) error {
	switch c.Name {
	case "tool":
		if err := expectArgs(c, 1); err != nil {
			return err
		}
		t, err := ParseTool(c.Args[0])
		if err != nil {
			return err
		}
		e.SetTool(t)
	case "stroke", "fill":
		if err := expectArgs(c, 1); err != nil {
			return err
		}
		col, err := palette.Parse(c.Args[0])
		if err != nil {
			return err
		}
		if c.Name == "stroke" {
			e.SetStrokeColor(col)
		} else {
			e.SetFillColor(col)
			e.SetFillEnabled(col.A != 0)
		}
	case "nofill":
		e.SetFillEnabled(false)
	case "width":
		if err := expectArgs(c, 1); err != nil {
			return err
		}
		w, err := strconv.ParseFloat(c.Args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid width %q", c.Args[0])
		}
		e.SetStrokeWidth(w)
	case "text":
		e.SetPendingText(c.Args[0])
	case "press", "drag", "release":
		p, err := pointArgs(c)
		if err != nil {
			return err
		}
		switch c.Name {
		case "press":
			e.Press(p)
		case "drag":
			e.Drag(p)
		default:
			e.Release(p)
		}
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	case "clear":
		e.Clear()
	default:
		return fmt.Errorf("unknown command %q", c.Name)
	}
	return nil
}

func expectArgs(c Command, n int) error {
	if len(c.Args) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", c.Name, n, len(c.Args))
	}
	return nil
}

func pointArgs(c Command) (shape.Point, error) {
	if err := expectArgs(c, 2); err != nil {
		return shape.Point{}, err
	}
	x, err := strconv.ParseFloat(c.Args[0], 64)
	if err != nil {
		return shape.Point{}, fmt.Errorf("invalid x %q", c.Args[0])
	}
	y, err := strconv.ParseFloat(c.Args[1], 64)
	if err != nil {
		return shape.Point{}, fmt.Errorf("invalid y %q", c.Args[1])
	}
	return shape.Pt(x, y), nil
}
