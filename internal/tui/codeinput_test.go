package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeInto(c CodeInput, s string) CodeInput {
	for _, r := range s {
		c, _ = c.Update(runes(string(r)))
	}
	return c
}

func press(c CodeInput, k tea.KeyType) CodeInput {
	c, _ = c.Update(tea.KeyMsg{Type: k})
	return c
}

func TestCodeInput_TypingAdvancesFocus(t *testing.T) {
	c := NewCodeInput(4)
	require.Equal(t, 0, c.Focused())

	c = typeInto(c, "12")
	require.Equal(t, []string{"1", "2", "", ""}, c.Slots())
	require.Equal(t, 2, c.Focused())

	c = typeInto(c, "34")
	require.True(t, c.Complete())
	require.Equal(t, "1234", c.Value())
	require.Equal(t, 3, c.Focused(), "focus stays on the last slot")
}

func TestCodeInput_RejectsNonDigits(t *testing.T) {
	c := NewCodeInput(4)
	c = typeInto(c, "1a")

	require.Equal(t, []string{"1", "", "", ""}, c.Slots())
	require.Equal(t, 1, c.Focused())
	require.Equal(t, "", c.fields[1].Value(), "field is re-synced after a rejected edit")
}

func TestCodeInput_PasteSpreadsFromFirstSlot(t *testing.T) {
	c := NewCodeInput(8)
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("20231145"), Paste: true})

	require.True(t, c.Complete())
	require.Equal(t, "20231145", c.Value())
	require.Equal(t, 7, c.Focused())
	for i, f := range c.fields {
		if f.Value() != c.Slots()[i] {
			t.Errorf("field %d = %q, slot = %q", i, f.Value(), c.Slots()[i])
		}
	}
}

func TestCodeInput_Backspace(t *testing.T) {
	c := typeInto(NewCodeInput(4), "12")
	require.Equal(t, 2, c.Focused())

	// empty slot: step back without editing
	c = press(c, tea.KeyBackspace)
	require.Equal(t, 1, c.Focused())
	require.Equal(t, "12", c.Value())

	// filled slot: clear it and stay
	c = press(c, tea.KeyBackspace)
	require.Equal(t, 1, c.Focused())
	require.Equal(t, []string{"1", "", "", ""}, c.Slots())

	c = press(c, tea.KeyBackspace)
	require.Equal(t, 0, c.Focused())
}

func TestCodeInput_ArrowKeys(t *testing.T) {
	c := NewCodeInput(3)

	c = press(c, tea.KeyLeft)
	require.Equal(t, 0, c.Focused(), "left on the first slot is ignored")

	c = press(c, tea.KeyRight)
	c = press(c, tea.KeyRight)
	c = press(c, tea.KeyRight)
	require.Equal(t, 2, c.Focused(), "right on the last slot is ignored")

	for i, f := range c.fields {
		if f.Focused() != (i == 2) {
			t.Errorf("field %d focused = %v", i, f.Focused())
		}
	}
}

func TestCodeInput_Reset(t *testing.T) {
	c := typeInto(NewCodeInput(6), "123456")
	c = c.Reset()

	require.Equal(t, "", c.Value())
	require.Equal(t, 0, c.Focused())
	require.False(t, c.Complete())
}

func TestCodeInput_IgnoresNonKeyMessages(t *testing.T) {
	c := NewCodeInput(2)
	c, cmd := c.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	require.Nil(t, cmd)
	require.Equal(t, 0, c.Focused())
}

func TestCodeInput_View(t *testing.T) {
	c := typeInto(NewCodeInput(4), "7")

	boxed := c.View(3, 40)
	require.Contains(t, boxed, "7")
	require.Contains(t, boxed, "╭", "wide rows use bordered boxes")

	compact := c.View(3, 10)
	require.NotContains(t, compact, "╭")
	require.Contains(t, compact, "[_]", "focused empty slot is bracketed")
	require.Equal(t, 1, strings.Count(compact, "["))
}
