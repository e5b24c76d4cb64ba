package responsive

import "math"

const (
	// ReferenceWidth is the viewport width at which ScaleFont returns the
	// base size unchanged.
	ReferenceWidth = 375

	// ReferenceHeight is the viewport height at which ScaleVertical returns
	// the base size unchanged.
	ReferenceHeight = 812
)

// Cap limits how far a scaled value may grow. Use Factor or Band to build
// one. The zero Cap leaves the ratio unbounded.
type Cap struct {
	max    float64
	lo, hi float64
	band   bool
}

// Factor caps the scale ratio at f, so the result never exceeds base*f.
func Factor(f float64) Cap {
	return Cap{max: f}
}

// Band clamps the scaled value to [lo*base, hi*base].
func Band(lo, hi float64) Cap {
	return Cap{lo: lo, hi: hi, band: true}
}

// Ceiling returns the largest value the cap allows for base.
func (c Cap) Ceiling(base float64) float64 {
	switch {
	case c.band:
		return base * c.hi
	case c.max > 0:
		return base * c.max
	default:
		return math.Inf(1)
	}
}

func (c Cap) apply(base, ratio float64) float64 {
	if c.band {
		v := base * ratio
		return math.Min(math.Max(v, base*c.lo), base*c.hi)
	}
	if c.max > 0 {
		ratio = math.Min(ratio, c.max)
	}
	return base * ratio
}

// ScaleFont scales base by width/ReferenceWidth, capped by c.
func ScaleFont(base, width float64, c Cap) int {
	return ScaleFontRef(base, width, ReferenceWidth, c)
}

// ScaleFontRef is ScaleFont with an explicit reference width.
func ScaleFontRef(base, width, ref float64, c Cap) int {
	return scale(base, width, ref, c)
}

// ScaleVertical scales base by height/ReferenceHeight, capped by c.
func ScaleVertical(base, height float64, c Cap) int {
	return scale(base, height, ReferenceHeight, c)
}

func scale(base, dim, ref float64, c Cap) int {
	if base <= 0 {
		return 0
	}
	ratio := 0.0
	if dim > 0 && ref > 0 {
		ratio = dim / ref
	}
	v := int(math.Round(c.apply(base, ratio)))
	if v < 1 {
		return 1
	}
	return v
}
