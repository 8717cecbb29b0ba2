package analysis

import "testing"

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Fatalf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	in := []float64{1, 2, 3}
	got := MovingAverage(in, 1)
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("window 1 must return values unchanged, got %v", got)
		}
	}
	got[0] = 99
	if in[0] == 99 {
		t.Fatalf("expected a copy, not a shared slice")
	}
}

func TestMovingAverageWindowLargerThanInput(t *testing.T) {
	got := MovingAverage([]float64{3, 5}, 10)
	if !almostEqual(got[0], 3) || !almostEqual(got[1], 4) {
		t.Fatalf("expected growing prefix means, got %v", got)
	}
}
