package tui

import (
	"fmt"

	"github.com/muurk/campuspass/internal/responsive"
)

// screenScale is how one screen grows with the viewport. Each screen keeps
// its own cap; they are tuned individually.
type screenScale struct {
	cap     responsive.Cap
	padding float64             // base horizontal padding, cells
	gap     float64             // base blank lines between sections
	slot    float64             // base code slot width, cells (0 = no code input)
	content responsive.Map[int] // widest content column per breakpoint, cells
}

var phoneContent = responsive.NewMap(60).
	With(responsive.SmallMobile, 36).
	With(responsive.MediumMobile, 44).
	With(responsive.LargeMobile, 52).
	With(responsive.Tablet, 64).
	With(responsive.Laptop, 72)

var readingContent = responsive.NewMap(96).
	With(responsive.SmallMobile, 40).
	With(responsive.MediumMobile, 50).
	With(responsive.LargeMobile, 60).
	With(responsive.Tablet, 72).
	With(responsive.Laptop, 80).
	With(responsive.LaptopLarge, 88)

var screenScales = map[Screen]screenScale{
	ScreenLanding:   {cap: responsive.Factor(1.5), padding: 2, gap: 2, content: phoneContent},
	ScreenSettings:  {cap: responsive.Factor(1.8), padding: 2, gap: 1, content: phoneContent},
	ScreenTutorials: {cap: responsive.Factor(2.0), padding: 1, gap: 1, content: readingContent},
	ScreenEmail:     {cap: responsive.Factor(1.5), padding: 2, gap: 1, slot: 3, content: phoneContent},
	ScreenRecovery:  {cap: responsive.Factor(1.8), padding: 2, gap: 1, content: phoneContent},
	ScreenSignup:    {cap: responsive.Band(0.8, 1.2), padding: 2, gap: 1, slot: 3, content: phoneContent},
	ScreenConfirm:   {cap: responsive.Band(0.8, 1.2), padding: 2, gap: 1, content: phoneContent},
}

// Metrics are the concrete sizes a screen renders with for one viewport.
type Metrics struct {
	Viewport     responsive.Viewport
	Breakpoint   responsive.Label
	Padding      int
	Gap          int
	ContentWidth int
	SlotWidth    int
	Compact      bool
}

// String implements fmt.Stringer
func (m Metrics) String() string {
	return fmt.Sprintf("breakpoint=%s padding=%d gap=%d content=%d slot=%d compact=%t",
		m.Breakpoint, m.Padding, m.Gap, m.ContentWidth, m.SlotWidth, m.Compact)
}

// LayoutScreens lists the screens that have layout metrics, in menu order.
var LayoutScreens = []Screen{
	ScreenLanding, ScreenSignup, ScreenConfirm, ScreenTutorials,
	ScreenSettings, ScreenEmail, ScreenRecovery,
}

// Layout resolves a screen's metrics for vp.
func Layout(screen Screen, vp responsive.Viewport) Metrics {
	sc, ok := screenScales[screen]
	if !ok {
		sc = screenScales[ScreenLanding]
	}

	label := vp.Label()
	m := Metrics{
		Viewport:   vp,
		Breakpoint: label,
		Padding:    responsive.ScaleFont(sc.padding, vp.Width, sc.cap),
		Gap:        responsive.ScaleVertical(sc.gap, vp.Height, sc.cap),
		Compact:    label == responsive.SmallMobile,
	}
	if sc.slot > 0 {
		m.SlotWidth = responsive.ScaleFont(sc.slot, vp.Width, sc.cap)
	}

	cols := vp.Columns
	if cols <= 0 {
		cols = int(vp.Width / responsive.DefaultUnitsPerColumn)
	}
	// 4 cells of container border and padding, then the screen's own padding
	available := cols - 4 - 2*m.Padding
	m.ContentWidth = sc.content.Resolve(vp.Width)
	if available < m.ContentWidth {
		m.ContentWidth = available
	}
	if m.ContentWidth < MinContentWidth {
		m.ContentWidth = MinContentWidth
	}
	return m
}
