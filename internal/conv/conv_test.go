package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(42); got != 42 {
		t.Errorf("IntToUint32(42) = %d, want 42", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("IntToUint32(-1) did not panic")
		}
	}()
	IntToUint32(-1)
}

func TestIntToInt32(t *testing.T) {
	if got := IntToInt32(-7); got != -7 {
		t.Errorf("IntToInt32(-7) = %d, want -7", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("IntToInt32(MaxInt32+1) did not panic")
		}
	}()
	IntToInt32(math.MaxInt32 + 1)
}

func TestUint64ToInt(t *testing.T) {
	tests := []struct {
		in   uint64
		want int
	}{
		{0, 0},
		{1000, 1000},
		{math.MaxUint64, math.MaxInt},
	}
	for _, tt := range tests {
		if got := Uint64ToInt(tt.in); got != tt.want {
			t.Errorf("Uint64ToInt(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
