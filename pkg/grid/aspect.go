package grid

// Class labels a photo's aspect ratio regime.
type Class int

// Aspect classes in tie-break priority order: when a batch has no
// majority class, the earlier constant wins.
const (
	Square Class = iota
	Landscape
	Portrait
)

// Classification thresholds on width/height.
const (
	landscapeMin = 1.1
	squareMin    = 0.9
)

// String returns the lowercase class name.
func (c Class) String() string {
	switch c {
	case Square:
		return "square"
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	}
	return "unknown"
}

// Classify labels an aspect ratio (width/height):
//
//	ratio ≥ 1.1        → Landscape
//	0.9 ≤ ratio < 1.1  → Square
//	ratio < 0.9        → Portrait
//
// Callers are expected to pass ratios of validated photos only.
func Classify(ratio float64) Class {
	switch {
	case ratio >= landscapeMin:
		return Landscape
	case ratio >= squareMin:
		return Square
	default:
		return Portrait
	}
}
