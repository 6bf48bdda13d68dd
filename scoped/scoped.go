// Package scoped implements a generic scope chain: a stack of key-value
// frames where lookups resolve innermost first and new bindings land in
// the current scope. It is the environment structure of block-scoped
// languages and layered resolvers, offered as a standalone container.
package scoped

// A frame holds the bindings of a single scope.
type frame[K comparable, V any] map[K]V

// Stack is a chain of scopes ordered from the root at the bottom to the
// current scope on top. Lookups walk the chain from the current scope
// outward, so inner bindings shadow outer ones with the same key.
//
// A Stack is not safe for concurrent use.
type Stack[K comparable, V any] struct {
	frames []frame[K, V]
}

// New creates a stack holding a single empty root scope.
func New[K comparable, V any]() *Stack[K, V] {
	return &Stack[K, V]{frames: []frame[K, V]{make(frame[K, V])}}
}

// Depth reports the number of live scopes, the permanent root included.
func (s *Stack[K, V]) Depth() int {
	return len(s.frames)
}

// PushScope enters a fresh scope. Subsequent inserts land there.
func (s *Stack[K, V]) PushScope() {
	s.frames = append(s.frames, make(frame[K, V]))
}

// PopScope leaves the current scope, discarding all of its bindings.
// Popping with only the root scope left is a no-op: the chain always
// keeps at least one scope.
func (s *Stack[K, V]) PopScope() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Insert binds key to value in the current scope, shadowing any binding
// of the same key in outer scopes. It returns the value the current
// scope previously held for key, if any; shadowed outer bindings are
// not reported.
func (s *Stack[K, V]) Insert(key K, value V) (V, bool) {
	cur := s.frames[len(s.frames)-1]
	prev, ok := cur[key]
	cur[key] = value
	return prev, ok
}

// Get returns the value bound to key in the nearest enclosing scope.
func (s *Stack[K, V]) Get(key K) (V, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][key]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Update replaces the value of the nearest binding of key, keeping the
// binding in the scope that declared it. It reports whether a binding
// was found; no binding is created otherwise.
func (s *Stack[K, V]) Update(key K, value V) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i][key]; ok {
			s.frames[i][key] = value
			return true
		}
	}
	return false
}

// Remove deletes the nearest binding of key and returns its value.
// Bindings of the same key in outer scopes are kept and become visible
// again.
func (s *Stack[K, V]) Remove(key K) (V, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][key]; ok {
			delete(s.frames[i], key)
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether key is visible from the current scope.
func (s *Stack[K, V]) Contains(key K) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i][key]; ok {
			return true
		}
	}
	return false
}

// Flatten returns a snapshot of every visible binding. Where several
// scopes bind the same key, the nearest value wins. The snapshot is
// independent of the stack.
func (s *Stack[K, V]) Flatten() map[K]V {
	out := make(map[K]V, len(s.frames[len(s.frames)-1]))
	for _, f := range s.frames {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}
