package responsive

import (
	"fmt"
	"math"
)

// Label names a viewport width bucket. Labels are ordered from the
// narrowest bucket to the widest.
type Label int

const (
	SmallMobile Label = iota
	MediumMobile
	LargeMobile
	Tablet
	Laptop
	LaptopLarge
	FourK
)

// Labels lists every label in breakpoint order.
var Labels = []Label{SmallMobile, MediumMobile, LargeMobile, Tablet, Laptop, LaptopLarge, FourK}

// String returns the label name used in layout tables and CLI output
func (l Label) String() string {
	switch l {
	case SmallMobile:
		return "smallMobile"
	case MediumMobile:
		return "mediumMobile"
	case LargeMobile:
		return "largeMobile"
	case Tablet:
		return "tablet"
	case Laptop:
		return "laptop"
	case LaptopLarge:
		return "laptopLarge"
	case FourK:
		return "fourK"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// ParseLabel returns the label with the given name.
func ParseLabel(name string) (Label, error) {
	for _, l := range Labels {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown breakpoint label %q", name)
}

// Breakpoint is one bucket of a Table. Bound is the inclusive upper width
// of the bucket; the last bucket of a table is unbounded and its Bound is
// ignored.
type Breakpoint struct {
	Bound float64
	Label Label
}

// Table is an ascending sequence of breakpoints.
type Table struct {
	points []Breakpoint
}

// DefaultTable is the breakpoint table used by every screen.
var DefaultTable = MustTable(
	Breakpoint{Bound: 320, Label: SmallMobile},
	Breakpoint{Bound: 375, Label: MediumMobile},
	Breakpoint{Bound: 425, Label: LargeMobile},
	Breakpoint{Bound: 768, Label: Tablet},
	Breakpoint{Bound: 1024, Label: Laptop},
	Breakpoint{Bound: 1440, Label: LaptopLarge},
	Breakpoint{Bound: math.Inf(1), Label: FourK},
)

// NewTable builds a table from breakpoints given in ascending order.
// Bounds must be strictly increasing; the last breakpoint is treated as
// unbounded.
func NewTable(points ...Breakpoint) (Table, error) {
	if len(points) == 0 {
		return Table{}, fmt.Errorf("breakpoint table needs at least one bucket")
	}
	for i := 1; i < len(points)-1; i++ {
		if points[i].Bound <= points[i-1].Bound {
			return Table{}, fmt.Errorf("breakpoint %s bound %v must exceed %s bound %v",
				points[i].Label, points[i].Bound, points[i-1].Label, points[i-1].Bound)
		}
	}
	cp := make([]Breakpoint, len(points))
	copy(cp, points)
	cp[len(cp)-1].Bound = math.Inf(1)
	return Table{points: cp}, nil
}

// MustTable is like NewTable but panics on an invalid table.
func MustTable(points ...Breakpoint) Table {
	t, err := NewTable(points...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the first label whose bound is at least width, else the
// last label.
func (t Table) Resolve(width float64) Label {
	for _, p := range t.points {
		if width <= p.Bound {
			return p.Label
		}
	}
	return t.points[len(t.points)-1].Label
}

// Breakpoints returns a copy of the table's buckets.
func (t Table) Breakpoints() []Breakpoint {
	cp := make([]Breakpoint, len(t.points))
	copy(cp, t.points)
	return cp
}

// Resolve returns the DefaultTable label for width.
func Resolve(width float64) Label {
	return DefaultTable.Resolve(width)
}
