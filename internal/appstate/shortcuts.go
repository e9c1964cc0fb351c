package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/easel/internal/editor"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// toolKeys are the unmodified letters that select a tool.
var toolKeys = map[editor.Tool]rune{
	editor.ToolPencil:    'p',
	editor.ToolEraser:    'e',
	editor.ToolLine:      'l',
	editor.ToolRectangle: 'r',
	editor.ToolSquare:    'q',
	editor.ToolCircle:    'c',
	editor.ToolOval:      'o',
	editor.ToolTriangle:  't',
	editor.ToolText:      'x',
	editor.ToolSelect:    's',
	editor.ToolMove:      'm',
	editor.ToolDropper:   'i',
	editor.ToolNone:      'n',
}

// lookup finds the action bound to e, trying the character first and the
// key code second.
func lookup(bindings map[KeyShortcut]string, e key.Event) (string, bool) {
	if e.Rune > 0 {
		ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}
		if action, ok := bindings[ks]; ok {
			return action, true
		}
	}
	action, ok := bindings[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	return action, ok
}
