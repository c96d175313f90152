package grid

import "testing"

func TestPlanBatchCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{5, 1},
		{8, 1},
		{9, 1},
		{10, 2},
		{17, 2},
		{18, 2},
		{19, 3},
		{157, 18}, // 17 full composites + 1 of 8
	}

	for _, tt := range tests {
		if got := len(Plan(tt.n)); got != tt.want {
			t.Errorf("len(Plan(%d)) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPlanCoversAllPhotos(t *testing.T) {
	for _, n := range []int{1, 8, 9, 10, 26, 27, 157} {
		spans := Plan(n)

		total := 0
		next := 0
		for i, s := range spans {
			if s.Start != next {
				t.Errorf("Plan(%d): span %d starts at %d, want %d", n, i, s.Start, next)
			}
			if s.Len() < 1 || s.Len() > SlotCount {
				t.Errorf("Plan(%d): span %d has size %d", n, i, s.Len())
			}
			total += s.Len()
			next = s.End
		}
		if total != n {
			t.Errorf("Plan(%d): spans cover %d photos", n, total)
		}
	}
}

func TestPlanFullBatchesExceptLast(t *testing.T) {
	spans := Plan(157)
	for i, s := range spans[:len(spans)-1] {
		if s.Len() != SlotCount {
			t.Errorf("span %d has size %d, want %d", i, s.Len(), SlotCount)
		}
	}
	if last := spans[len(spans)-1]; last.Len() != 8 {
		t.Errorf("last span has size %d, want 8", last.Len())
	}
}

func TestPlanSmallInputIsSingleBatch(t *testing.T) {
	// N ≤ 8 never splits; the composite pads the missing slots instead.
	for n := 1; n <= 8; n++ {
		spans := Plan(n)
		if len(spans) != 1 {
			t.Fatalf("Plan(%d) produced %d spans", n, len(spans))
		}
		if spans[0] != (Span{Start: 0, End: n}) {
			t.Errorf("Plan(%d)[0] = %+v", n, spans[0])
		}
	}
}

func TestPlanEmpty(t *testing.T) {
	if got := Plan(0); got != nil {
		t.Errorf("Plan(0) = %v, want nil", got)
	}
	if got := Plan(-3); got != nil {
		t.Errorf("Plan(-3) = %v, want nil", got)
	}
}
