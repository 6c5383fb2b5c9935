package astvm

import "github.com/lollipopkit/reggie/lang"

// scopeStack is the "stack of hash maps for locals" spec §4.3 describes.
// Name lookup walks frames top-down and falls through to globals;
// assignment writes to the closest enclosing binding, or to globals if
// no local binding exists anywhere on the stack.
type scopeStack struct {
	frames  []map[string]lang.Value
	globals *lang.Globals
}

func newScopeStack(globals *lang.Globals) *scopeStack {
	return &scopeStack{globals: globals}
}

func (s *scopeStack) push() {
	s.frames = append(s.frames, make(map[string]lang.Value, 4))
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// declare binds name in the innermost frame, shadowing any outer binding
// — this is what makes "a local declared in one branch of a conditional
// is not observable in a sibling branch" hold (spec §4.3, §8): each
// Block pushes its own frame.
func (s *scopeStack) declare(name string, v lang.Value) {
	s.frames[len(s.frames)-1][name] = v
}

// lookup searches inner frames innermost-out, then globals.
func (s *scopeStack) lookup(name string) lang.Value {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v
		}
	}
	return s.globals.Get(name)
}

// assign writes to the closest enclosing binding; if name is bound in no
// frame, it is written to globals (spec §4.3: "global if none").
func (s *scopeStack) assign(name string, v lang.Value) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i][name]; ok {
			s.frames[i][name] = v
			return
		}
	}
	s.globals.Set(name, v)
}
