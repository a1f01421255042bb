package sparse

import (
	"testing"
)

func TestSet_Basic(t *testing.T) {
	s := New(100)

	if s.Len() != 0 {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	got := s.Values()
	want := []int{5, 10, 3, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values() = %v, want insertion order %v", got, want)
		}
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("set should be empty after Clear")
	}
	for _, v := range want {
		if s.Contains(v) {
			t.Errorf("set should not contain %d after Clear", v)
		}
	}
}

func TestSet_StaleSparseEntries(t *testing.T) {
	s := New(10)
	s.Insert(4)
	s.Insert(8)
	s.Clear()
	s.Insert(8)

	// sparse[4] still points at position 0, which now holds 8.
	if s.Contains(4) {
		t.Error("stale sparse entry reported as member")
	}
	if !s.Contains(8) {
		t.Error("8 should be a member")
	}
}

func TestSet_Bounds(t *testing.T) {
	s := New(3)
	if s.Cap() != 3 {
		t.Errorf("Cap() = %d, want 3", s.Cap())
	}
	for _, v := range []int{-1, 3, 1000} {
		if s.Contains(v) {
			t.Errorf("Contains(%d) should be false", v)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("Insert beyond capacity should panic")
		}
	}()
	s.Insert(3)
}

func TestSet_ZeroCapacity(t *testing.T) {
	s := New(0)
	if s.Contains(0) {
		t.Error("zero-capacity set contains nothing")
	}
	if len(s.Values()) != 0 {
		t.Error("zero-capacity set has no values")
	}
}
