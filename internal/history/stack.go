// Package history keeps the ordered log of drawing actions behind undo and
// redo.
package history

import "github.com/example/easel/internal/shape"

// Stack is a last-in-first-out log of records with a single redo slot.
// It is not safe for concurrent use; the editor owns it on the UI goroutine.
type Stack struct {
	records  []shape.Record
	redo     shape.Record
	hasRedo  bool
	onChange func()
}

// Option configures a Stack.
type Option func(*Stack)

// WithChangeListener registers fn to run after every mutation.
func WithChangeListener(fn func()) Option { return func(s *Stack) { s.onChange = fn } }

// New returns an empty stack.
func New(opts ...Option) *Stack {
	s := &Stack{}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Stack) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Push stamps attrs onto r, appends it and empties the redo slot.
func (s *Stack) Push(r shape.Record, attrs shape.PaintAttributes) {
	s.records = append(s.records, r.WithAttributes(attrs))
	s.dropRedo()
	s.changed()
}

// Pop removes the top record. It reports false on an empty stack.
func (s *Stack) Pop() (shape.Record, bool) {
	if len(s.records) == 0 {
		return shape.Record{}, false
	}
	top := s.records[len(s.records)-1]
	s.records[len(s.records)-1] = shape.Record{}
	s.records = s.records[:len(s.records)-1]
	s.changed()
	return top, true
}

// Peek returns the top record without removing it.
func (s *Stack) Peek() (shape.Record, bool) {
	if len(s.records) == 0 {
		return shape.Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Undo removes the most recent action. An ImageMove is undone together with
// the erase record beneath it and leaves nothing to redo; any other record
// moves into the redo slot. It reports whether the stack changed.
func (s *Stack) Undo() bool {
	top, ok := s.Pop()
	if !ok {
		return false
	}
	if top.Kind == shape.ImageMove {
		s.Pop()
		s.dropRedo()
		return true
	}
	s.redo, s.hasRedo = top, true
	return true
}

// Redo pushes the record in the redo slot back with the attributes it was
// captured with. It reports whether the stack changed.
func (s *Stack) Redo() bool {
	if !s.hasRedo {
		return false
	}
	r := s.redo
	s.dropRedo()
	s.records = append(s.records, r)
	s.changed()
	return true
}

// Clear empties the stack and the redo slot.
func (s *Stack) Clear() {
	for i := range s.records {
		s.records[i] = shape.Record{}
	}
	s.records = s.records[:0]
	s.dropRedo()
	s.changed()
}

func (s *Stack) dropRedo() {
	s.redo, s.hasRedo = shape.Record{}, false
}

// CanRedo reports whether the redo slot holds a record.
func (s *Stack) CanRedo() bool { return s.hasRedo }

// Len returns the number of records on the stack.
func (s *Stack) Len() int { return len(s.records) }

// Records returns the records bottom to top. The slice is a copy.
func (s *Stack) Records() []shape.Record {
	out := make([]shape.Record, len(s.records))
	copy(out, s.records)
	return out
}
