package scoped

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New[string, int]()
	assert.Equal(t, 1, s.Depth())

	v, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
	assert.False(t, s.Contains("a"))
}

func TestInsertAndGet(t *testing.T) {
	s := New[string, int]()
	prev, ok := s.Insert("a", 1)
	assert.False(t, ok)
	assert.Equal(t, 0, prev)

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, s.Contains("a"))
}

func TestInsertReturnsPrevious(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)
	prev, ok := s.Insert("a", 2)
	assert.True(t, ok)
	assert.Equal(t, 1, prev)

	v, _ := s.Get("a")
	assert.Equal(t, 2, v)
}

func TestInsertShadowReportsNoPrevious(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)
	s.PushScope()

	// The outer binding is shadowed, not replaced, so there is no
	// previous value in the scope the insert targets.
	prev, ok := s.Insert("a", 2)
	assert.False(t, ok)
	assert.Equal(t, 0, prev)

	s.PopScope()
	v, _ := s.Get("a")
	assert.Equal(t, 1, v)
}

func TestShadowingAcrossScopes(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)
	s.Insert("b", 2)
	s.Insert("c", 3)

	s.PushScope()
	s.Insert("a", 4)
	s.Insert("b", 5)

	for key, want := range map[string]int{"a": 4, "b": 5, "c": 3} {
		v, ok := s.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}

	s.PopScope()
	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		v, ok := s.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}
}

func TestPopScopeDiscardsBindings(t *testing.T) {
	s := New[string, int]()
	s.PushScope()
	s.Insert("tmp", 9)
	s.PopScope()

	assert.False(t, s.Contains("tmp"))
	_, ok := s.Get("tmp")
	assert.False(t, ok)
	_, ok = s.Remove("tmp")
	assert.False(t, ok)
}

func TestPopScopeAtRoot(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)

	s.PopScope()
	s.PopScope()

	assert.Equal(t, 1, s.Depth())
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestRemove(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)

	v, ok := s.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.False(t, s.Contains("a"))

	_, ok = s.Remove("a")
	assert.False(t, ok)
}

func TestRemoveUnshadowsOuter(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)
	s.PushScope()
	s.Insert("a", 2)

	v, ok := s.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	// The outer binding survives and is visible again.
	v, ok = s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestRemoveReachesOuter(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)
	s.PushScope()

	v, ok := s.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.False(t, s.Contains("a"))

	s.PopScope()
	assert.False(t, s.Contains("a"))
}

func TestUpdate(t *testing.T) {
	s := New[string, int]()
	s.Insert("a", 1)
	s.PushScope()

	assert.True(t, s.Update("a", 10))
	v, _ := s.Get("a")
	assert.Equal(t, 10, v)

	// The binding stayed in the root scope.
	s.PopScope()
	v, _ = s.Get("a")
	assert.Equal(t, 10, v)
}

func TestUpdateKeepsDeclaringScope(t *testing.T) {
	s := New[string, int]()
	s.Insert("x", 1)
	s.PushScope()
	s.Insert("x", 2)
	s.PushScope()

	assert.True(t, s.Update("x", 3))

	s.PopScope()
	v, _ := s.Get("x")
	assert.Equal(t, 3, v)

	s.PopScope()
	v, _ = s.Get("x")
	assert.Equal(t, 1, v)
}

func TestUpdateMissCreatesNothing(t *testing.T) {
	s := New[string, int]()
	assert.False(t, s.Update("a", 1))
	assert.False(t, s.Contains("a"))
}

func TestContainsTracksVisibility(t *testing.T) {
	s := New[string, int]()
	assert.False(t, s.Contains("a"))

	s.Insert("a", 1)
	s.PushScope()
	assert.True(t, s.Contains("a"))

	s.Insert("b", 2)
	s.PopScope()
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
}

func TestDeepResolution(t *testing.T) {
	s := New[string, int]()
	s.Insert("root", 0)
	s.PushScope()
	s.Insert("mid", 1)
	s.PushScope()
	s.Insert("top", 2)

	// Every depth must resolve from the innermost scope.
	for key, want := range map[string]int{"root": 0, "mid": 1, "top": 2} {
		v, ok := s.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, v, key)
		assert.True(t, s.Contains(key), key)
	}

	s.PushScope()
	v, ok := s.Get("root")
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestDepth(t *testing.T) {
	s := New[string, int]()
	assert.Equal(t, 1, s.Depth())
	s.PushScope()
	s.PushScope()
	assert.Equal(t, 3, s.Depth())
	s.PopScope()
	assert.Equal(t, 2, s.Depth())
}

func TestPointerValues(t *testing.T) {
	type counter struct{ n int }

	s := New[string, *counter]()
	s.Insert("c", &counter{})
	s.PushScope()

	// Mutation through the stored pointer reaches the outer binding.
	c, ok := s.Get("c")
	assert.True(t, ok)
	c.n++

	s.PopScope()
	c, _ = s.Get("c")
	assert.Equal(t, 1, c.n)
}

func TestFlatten(t *testing.T) {
	s := New[string, any]()
	s.Insert("a", 1)
	s.Insert("b", "two")
	s.PushScope()
	s.Insert("a", 10)
	s.Insert("c", true)

	flat := s.Flatten()
	assert.Equal(t, map[string]any{"a": 10, "b": "two", "c": true}, flat)

	// The snapshot does not alias the stack.
	flat["a"] = 99
	v, _ := s.Get("a")
	assert.Equal(t, 10, v)
}

func TestFlattenEmpty(t *testing.T) {
	s := New[string, int]()
	assert.Empty(t, s.Flatten())
}
