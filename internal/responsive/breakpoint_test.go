package responsive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		want  Label
	}{
		{"zero width", 0, SmallMobile},
		{"negative width", -10, SmallMobile},
		{"small mobile bound", 320, SmallMobile},
		{"just above small mobile", 320.5, MediumMobile},
		{"medium mobile bound", 375, MediumMobile},
		{"between medium and large", 400, LargeMobile},
		{"large mobile bound", 425, LargeMobile},
		{"tablet", 600, Tablet},
		{"tablet bound", 768, Tablet},
		{"laptop", 1000, Laptop},
		{"laptop large bound", 1440, LaptopLarge},
		{"beyond every bound", 2000, FourK},
		{"infinite width", math.Inf(1), FourK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.width))
		})
	}
}

func TestLabelString(t *testing.T) {
	require.Equal(t, "smallMobile", SmallMobile.String())
	require.Equal(t, "fourK", FourK.String())
	require.Equal(t, "Label(42)", Label(42).String())

	for _, l := range Labels {
		parsed, err := ParseLabel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, parsed)
	}

	_, err := ParseLabel("watch")
	require.Error(t, err)
}

func TestNewTable_RejectsUnsortedBounds(t *testing.T) {
	_, err := NewTable(
		Breakpoint{Bound: 500, Label: Tablet},
		Breakpoint{Bound: 400, Label: Laptop},
		Breakpoint{Bound: 0, Label: FourK},
	)
	require.Error(t, err)

	_, err = NewTable()
	require.Error(t, err)

	require.Panics(t, func() {
		MustTable(
			Breakpoint{Bound: 10, Label: SmallMobile},
			Breakpoint{Bound: 10, Label: MediumMobile},
			Breakpoint{Bound: 0, Label: FourK},
		)
	})
}

func TestNewTable_LastBucketUnbounded(t *testing.T) {
	table, err := NewTable(
		Breakpoint{Bound: 100, Label: SmallMobile},
		Breakpoint{Bound: 5, Label: Tablet},
	)
	require.NoError(t, err)
	require.Equal(t, SmallMobile, table.Resolve(50))
	require.Equal(t, Tablet, table.Resolve(1e9))
	require.True(t, math.IsInf(table.Breakpoints()[1].Bound, 1))
}

func TestProperty_ResolveIsMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w1 := rapid.Float64Range(0, 5000).Draw(rt, "w1")
		w2 := rapid.Float64Range(0, 5000).Draw(rt, "w2")
		if w1 > w2 {
			w1, w2 = w2, w1
		}
		require.LessOrEqual(rt, Resolve(w1), Resolve(w2),
			"label(%v) should not come after label(%v)", w1, w2)
	})
}

func TestProperty_ResolveIsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Float64Range(0, 1e7).Draw(rt, "width")
		label := Resolve(w)

		matches := 0
		lower := math.Inf(-1)
		for _, bp := range DefaultTable.Breakpoints() {
			if w > lower && w <= bp.Bound {
				matches++
				require.Equal(rt, bp.Label, label)
			}
			lower = bp.Bound
		}
		require.Equal(rt, 1, matches, "width %v should fall in exactly one bucket", w)
	})
}
