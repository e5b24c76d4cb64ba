// Package responsive maps viewport dimensions to concrete layout values.
//
// A viewport is measured in device-independent units rather than terminal
// cells so that the breakpoint table reads the same as a phone layout:
// an 80 column terminal is 400 units wide with the default conversion and
// lands in the largeMobile bucket.
//
// # Breakpoints
//
// The default table is ascending and its final bucket is unbounded:
//
//	smallMobile  ≤ 320
//	mediumMobile ≤ 375
//	largeMobile  ≤ 425
//	tablet       ≤ 768
//	laptop       ≤ 1024
//	laptopLarge  ≤ 1440
//	fourK        beyond
//
// Every width maps to exactly one label: the first whose bound is not
// exceeded, else the last.
//
// # Value maps
//
// Map carries a default that is supplied at construction, so resolution
// never fails:
//
//	padding := responsive.NewMap(2).
//	    With(responsive.SmallMobile, 1).
//	    With(responsive.Laptop, 4)
//	p := padding.Resolve(vp.Width)
//
// # Scaling
//
// ScaleFont and ScaleVertical scale a base size proportionally to the
// viewport and cap the result with either a ratio ceiling (Factor) or a
// clamped band around the base (Band). Results are whole units, never below
// 1 for a positive base, and non-decreasing in the viewport dimension.
//
// # Viewport changes
//
// Monitor holds the current viewport. Screens call Subscribe when they are
// mounted and Close the returned Subscription when they are torn down.
package responsive
