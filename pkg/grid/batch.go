package grid

// Span is a half-open range [Start, End) into the ordered photo list,
// identifying the photos of one composite.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of photos in the span.
func (s Span) Len() int { return s.End - s.Start }

// Plan partitions n photos into composite batches, preserving input
// order:
//
//   - n ≤ 8: a single batch; the composite pads the remaining slots.
//   - n ≥ 9: consecutive batches of 9; a final remainder of 1–8 photos
//     forms its own padded batch.
//
// The batch count is ceil(n/9) for n ≥ 9 and 1 otherwise. Every photo
// lands in exactly one span, so no input is dropped or duplicated.
func Plan(n int) []Span {
	if n <= 0 {
		return nil
	}
	if n <= SlotCount-1 {
		return []Span{{Start: 0, End: n}}
	}
	spans := make([]Span, 0, (n+SlotCount-1)/SlotCount)
	for start := 0; start < n; start += SlotCount {
		end := start + SlotCount
		if end > n {
			end = n
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}
