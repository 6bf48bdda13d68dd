package scoped

import (
	"testing"
)

// FuzzOps drives a stack with a random operation sequence and checks it
// against a naive model built on a slice of maps. The stack must never
// panic and never drop below one scope, and every lookup must agree
// with the model.
func FuzzOps(f *testing.F) {
	seeds := [][]byte{
		{},
		// insert, push, insert (shadow), get, pop
		{10, 0, 10, 12, 1},
		// push/pop churn past the root
		{0, 1, 1, 1, 0, 0, 1},
		// insert, remove, remove again
		{10, 11, 11},
		// updates at several depths
		{10, 0, 18, 4, 1, 4},
		[]byte("scoped stack"),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, ops []byte) {
		s := New[byte, int]()
		model := []map[byte]int{{}}

		for i, op := range ops {
			key := op >> 3

			switch op % 5 {
			case 0:
				s.PushScope()
				model = append(model, map[byte]int{})
			case 1:
				s.PopScope()
				if len(model) > 1 {
					model = model[:len(model)-1]
				}
			case 2:
				top := model[len(model)-1]
				wantPrev, wantOk := top[key]
				prev, ok := s.Insert(key, i)
				if ok != wantOk || prev != wantPrev {
					t.Fatalf("op %d: Insert(%d) prev = %d, %v, want %d, %v", i, key, prev, ok, wantPrev, wantOk)
				}
				top[key] = i
			case 3:
				s.Remove(key)
				for j := len(model) - 1; j >= 0; j-- {
					if _, ok := model[j][key]; ok {
						delete(model[j], key)
						break
					}
				}
			case 4:
				updated := s.Update(key, i)
				found := false
				for j := len(model) - 1; j >= 0; j-- {
					if _, ok := model[j][key]; ok {
						model[j][key] = i
						found = true
						break
					}
				}
				if updated != found {
					t.Fatalf("op %d: Update(%d) = %v, want %v", i, key, updated, found)
				}
			}

			if s.Depth() < 1 {
				t.Fatalf("op %d: depth dropped to %d", i, s.Depth())
			}
			if s.Depth() != len(model) {
				t.Fatalf("op %d: depth = %d, model has %d scopes", i, s.Depth(), len(model))
			}

			want, wantOk := modelGet(model, key)
			got, ok := s.Get(key)
			if ok != wantOk || got != want {
				t.Fatalf("op %d: Get(%d) = %d, %v, want %d, %v", i, key, got, ok, want, wantOk)
			}
			if s.Contains(key) != wantOk {
				t.Fatalf("op %d: Contains(%d) = %v, want %v", i, key, s.Contains(key), wantOk)
			}
		}
	})
}

func modelGet(model []map[byte]int, key byte) (int, bool) {
	for j := len(model) - 1; j >= 0; j-- {
		if v, ok := model[j][key]; ok {
			return v, true
		}
	}
	return 0, false
}
