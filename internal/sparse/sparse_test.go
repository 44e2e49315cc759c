package sparse

import (
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

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

	for _, v := range []uint32{10, 3, 7} {
		if !s.Insert(v) {
			t.Errorf("Insert(%d) = false, want true", v)
		}
	}

	s.Clear()
	for _, v := range []uint32{5, 10, 3, 7} {
		if s.Contains(v) {
			t.Errorf("cleared set should not contain %d", v)
		}
	}
}

func TestSparseSet_ClearThenReinsert(t *testing.T) {
	s := NewSparseSet(16)
	for level := 0; level < 3; level++ {
		for v := uint32(0); v < 16; v++ {
			if !s.Insert(v) {
				t.Fatalf("level %d: Insert(%d) = false after Clear", level, v)
			}
		}
		s.Clear()
	}
}

func TestSparseSet_ContainsOutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(4) || s.Contains(1 << 31) {
		t.Error("values outside the universe must not be contained")
	}
}

func BenchmarkSparseSet_Insert(b *testing.B) {
	s := NewSparseSet(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Insert(uint32(i % 1024))
		if i%1024 == 1023 {
			s.Clear()
		}
	}
}

func BenchmarkSparseSet_Contains(b *testing.B) {
	s := NewSparseSet(1024)
	for i := uint32(0); i < 512; i++ {
		s.Insert(i * 2)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Contains(uint32(i % 1024))
	}
}
