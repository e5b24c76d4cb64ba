package segment

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func fill(t *testing.T, c *Controller, code string) {
	t.Helper()
	for i, r := range code {
		tr := c.Change(i, string(r))
		require.True(t, tr.Accepted)
	}
}

func TestNew_PanicsOnInvalidLength(t *testing.T) {
	require.Panics(t, func() { New(0) })
	require.Panics(t, func() { New(-3) })
	require.NotPanics(t, func() { New(1) })
}

func TestChange_SequentialTyping(t *testing.T) {
	c := New(8)
	for i, d := range "20231145" {
		require.False(t, c.Complete(), "complete before keystroke %d", i+1)
		tr := c.Change(i, string(d))
		require.True(t, tr.Accepted)
		if i < 7 {
			require.Equal(t, i+1, tr.Focus)
		} else {
			require.Equal(t, 7, tr.Focus, "last slot keeps focus")
		}
	}
	require.True(t, c.Complete())
	require.Equal(t, "20231145", c.Value())
}

func TestChange_PasteFillsFromIndex(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		raw       string
		wantSlots []string
		wantFocus int
	}{
		{
			name:      "full code into first slot",
			index:     0,
			raw:       "12345678",
			wantSlots: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
			wantFocus: 7,
		},
		{
			name:      "overlong paste truncates",
			index:     0,
			raw:       "1234567890",
			wantSlots: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
			wantFocus: 7,
		},
		{
			name:      "partial paste focuses next empty",
			index:     0,
			raw:       "123",
			wantSlots: []string{"1", "2", "3", "", "", "", "", ""},
			wantFocus: 3,
		},
		{
			name:      "paste mid code never wraps",
			index:     5,
			raw:       "9876",
			wantSlots: []string{"", "", "", "", "", "9", "8", "7"},
			wantFocus: 7,
		},
		{
			name:      "paste strips separators",
			index:     0,
			raw:       "12-34 56",
			wantSlots: []string{"1", "2", "3", "4", "5", "6", "", ""},
			wantFocus: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(8)
			tr := c.Change(tt.index, tt.raw)
			require.True(t, tr.Accepted)
			require.Equal(t, tt.wantSlots, c.Slots())
			require.Equal(t, tt.wantFocus, tr.Focus)
			require.Equal(t, tt.wantFocus, c.Focus())
		})
	}
}

func TestChange_PasteFocusSkipsFilledSlots(t *testing.T) {
	c := New(6)
	c.Change(4, "7")
	tr := c.Change(1, "123")
	require.Equal(t, []string{"", "1", "2", "3", "7", ""}, c.Slots())
	require.Equal(t, 5, tr.Focus)
}

func TestChange_RejectsNonDigits(t *testing.T) {
	c := New(8)
	fill(t, c, "123")
	c.SetFocus(1)

	for _, raw := range []string{"a", "-", " ", "٣"} {
		tr := c.Change(1, raw)
		require.False(t, tr.Accepted, "raw %q", raw)
		require.Equal(t, 1, tr.Focus)
		require.Equal(t, "2", c.Slot(1))
	}

	// The first slot's field holds up to N characters, so a stray letter
	// arrives appended to the existing digit.
	c.SetFocus(0)
	tr := c.Change(0, "1a")
	require.False(t, tr.Accepted)
	require.Equal(t, 0, tr.Focus)
	require.Equal(t, []string{"1", "2", "3", "", "", "", "", ""}, c.Slots())
}

func TestChange_EmptyClearsWithoutMovingFocus(t *testing.T) {
	c := New(8)
	fill(t, c, "12345678")
	c.SetFocus(3)

	tr := c.Change(3, "")
	require.True(t, tr.Accepted)
	require.Equal(t, 3, tr.Focus)
	require.Equal(t, "", c.Slot(3))
	require.False(t, c.Complete())
	require.Equal(t, "1235678", c.Value())
}

func TestKeyPress_BackspaceAcrossSlots(t *testing.T) {
	c := New(8)
	fill(t, c, "12345678")
	c.SetFocus(3)

	// Backspace on a filled slot is left to the field.
	tr := c.KeyPress(3, Backspace)
	require.False(t, tr.Accepted)
	require.Equal(t, 3, tr.Focus)

	c.Change(3, "")
	tr = c.KeyPress(3, Backspace)
	require.True(t, tr.Accepted)
	require.Equal(t, 2, tr.Focus)
}

func TestKeyPress_IgnoredCases(t *testing.T) {
	c := New(4)

	tr := c.KeyPress(0, Backspace)
	require.False(t, tr.Accepted, "first slot has nowhere to go")
	require.Equal(t, 0, tr.Focus)

	c.SetFocus(2)
	tr = c.KeyPress(2, KeyOther)
	require.False(t, tr.Accepted)
	require.Equal(t, 2, tr.Focus)
}

func TestOutOfRangeIndexIsRejected(t *testing.T) {
	c := New(4)
	require.False(t, c.Change(-1, "1").Accepted)
	require.False(t, c.Change(4, "1").Accepted)
	require.False(t, c.KeyPress(9, Backspace).Accepted)
	require.False(t, c.SetFocus(4).Accepted)
	require.Equal(t, "", c.Slot(7))
	require.Equal(t, "", c.Value())
}

func TestMaxInput(t *testing.T) {
	c := New(8)
	require.Equal(t, 8, c.MaxInput(0))
	for i := 1; i < 8; i++ {
		require.Equal(t, 1, c.MaxInput(i))
	}
}

func TestReset(t *testing.T) {
	c := New(6)
	fill(t, c, "654321")
	c.Reset()
	require.Equal(t, 0, c.Focus())
	require.Equal(t, "", c.Value())
	require.Len(t, c.Slots(), 6)
}

func TestSlotsReturnsCopy(t *testing.T) {
	c := New(3)
	fill(t, c, "123")
	s := c.Slots()
	s[0] = "9"
	require.Equal(t, "1", c.Slot(0))
}

func TestProperty_SequentialTypingAssemblesCode(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		code := rapid.StringMatching(`[0-9]{` + strconv.Itoa(n) + `}`).Draw(rt, "code")

		c := New(n)
		for i := 0; i < n; i++ {
			require.False(rt, c.Complete())
			c.Change(i, code[i:i+1])
		}
		require.True(rt, c.Complete())
		require.Equal(rt, code, c.Value())
	})
}

func TestProperty_PasteMatchesTyping(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(rt, "n")
		code := rapid.StringMatching(`[0-9]{` + strconv.Itoa(n) + `}`).Draw(rt, "code")
		extra := rapid.StringMatching(`[0-9]{0,4}`).Draw(rt, "extra")

		pasted := New(n)
		tr := pasted.Change(0, code+extra)

		typed := New(n)
		for i := 0; i < n; i++ {
			typed.Change(i, code[i:i+1])
		}

		require.Equal(rt, typed.Slots(), pasted.Slots())
		require.Equal(rt, typed.Focus(), tr.Focus)
		require.Equal(rt, n-1, tr.Focus)
	})
}

func TestProperty_NonDigitLeavesStateUnchanged(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(rt, "n")
		c := New(n)
		prefill := rapid.StringMatching(`[0-9]{0,` + strconv.Itoa(n) + `}`).Draw(rt, "prefill")
		if prefill != "" {
			c.Change(0, prefill)
		}
		index := rapid.IntRange(0, n-1).Draw(rt, "index")
		c.SetFocus(index)
		junk := rapid.StringMatching(`[a-zA-Z!@#_ ]{1,3}`).Draw(rt, "junk")

		before := c.Slots()
		tr := c.Change(index, c.Slot(index)+junk)

		require.False(rt, tr.Accepted)
		require.Equal(rt, index, tr.Focus)
		require.Equal(rt, before, c.Slots())
	})
}

func TestProperty_SettledSlotsHoldOneDigit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(rt, "n")
		c := New(n)
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			index := rapid.IntRange(0, n-1).Draw(rt, "index")
			if rapid.Bool().Draw(rt, "backspace") {
				c.KeyPress(index, Backspace)
				continue
			}
			c.Change(index, rapid.StringMatching(`[0-9a-z]{0,12}`).Draw(rt, "raw"))
		}
		for _, s := range c.Slots() {
			require.LessOrEqual(rt, len(s), 1)
			if s != "" {
				require.True(rt, strings.ContainsAny(s, "0123456789"))
			}
		}
		require.GreaterOrEqual(rt, c.Focus(), 0)
		require.Less(rt, c.Focus(), n)
	})
}
