package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/campuspass/internal/segment"
)

// CodeInput renders a segment.Controller as a row of one-digit boxes.
// Each slot is backed by a textinput so typing, pasting and deleting
// behave like an ordinary field; the controller decides what the slots
// hold and which one has focus afterwards.
type CodeInput struct {
	ctrl   *segment.Controller
	fields []textinput.Model
}

// NewCodeInput creates an input with n slots, focused on the first.
func NewCodeInput(n int) CodeInput {
	ctrl := segment.New(n)
	fields := make([]textinput.Model, n)
	for i := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = ""
		ti.CharLimit = ctrl.MaxInput(i)
		ti.Width = 1
		fields[i] = ti
	}
	c := CodeInput{ctrl: ctrl, fields: fields}
	c.apply(ctrl.Focus())
	return c
}

// Len returns the number of slots.
func (c CodeInput) Len() int { return c.ctrl.Len() }

// Focused returns the index of the focused slot.
func (c CodeInput) Focused() int { return c.ctrl.Focus() }

// Complete reports whether every slot holds a digit.
func (c CodeInput) Complete() bool { return c.ctrl.Complete() }

// Value returns the slots joined in order.
func (c CodeInput) Value() string { return c.ctrl.Value() }

// Slots returns a copy of the slot values.
func (c CodeInput) Slots() []string { return c.ctrl.Slots() }

// Reset clears every slot and focuses the first.
func (c CodeInput) Reset() CodeInput {
	c.ctrl.Reset()
	c.fields = append([]textinput.Model(nil), c.fields...)
	c.apply(c.ctrl.Focus())
	return c
}

// Update routes key messages to the focused slot.
func (c CodeInput) Update(msg tea.Msg) (CodeInput, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	idx := c.ctrl.Focus()
	c.fields = append([]textinput.Model(nil), c.fields...)

	switch keyMsg.Type {
	case tea.KeyLeft:
		return c, c.applyTransition(c.ctrl.SetFocus(idx - 1))
	case tea.KeyRight:
		return c, c.applyTransition(c.ctrl.SetFocus(idx + 1))
	case tea.KeyBackspace:
		// An empty slot steps back instead of editing itself.
		if t := c.ctrl.KeyPress(idx, segment.Backspace); t.Accepted {
			return c, c.applyTransition(t)
		}
	}

	before := c.fields[idx].Value()
	field, cmd := c.fields[idx].Update(keyMsg)
	c.fields[idx] = field

	after := field.Value()
	if after == before {
		return c, cmd
	}
	t := c.ctrl.Change(idx, after)
	return c, tea.Batch(cmd, c.applyTransition(t))
}

// applyTransition re-syncs every field from the controller and moves focus
// to where the transition says.
func (c *CodeInput) applyTransition(t segment.Transition) tea.Cmd {
	return c.apply(t.Focus)
}

func (c *CodeInput) apply(focus int) tea.Cmd {
	slots := c.ctrl.Slots()
	var cmds []tea.Cmd
	for i := range c.fields {
		if c.fields[i].Value() != slots[i] {
			c.fields[i].SetValue(slots[i])
		}
		c.fields[i].CursorEnd()
		if i == focus {
			cmds = append(cmds, c.fields[i].Focus())
		} else {
			c.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

// View renders the slots. slotWidth is the inner width of each box;
// when the row would overflow maxWidth the boxes drop their borders.
func (c CodeInput) View(slotWidth, maxWidth int) string {
	if slotWidth < 1 {
		slotWidth = 1
	}
	focus := c.ctrl.Focus()
	n := c.ctrl.Len()

	// bordered box = slotWidth + 2 border cells, plus one cell between boxes
	if n*(slotWidth+3)-1 > maxWidth {
		return c.compactView(focus)
	}

	boxes := make([]string, 0, 2*n)
	for i, v := range c.ctrl.Slots() {
		if v == "" {
			v = "·"
		}
		style := SlotStyle
		if i == focus {
			style = FocusedSlotStyle
		}
		if i > 0 {
			boxes = append(boxes, " ")
		}
		boxes = append(boxes, style.Width(slotWidth).Render(v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (c CodeInput) compactView(focus int) string {
	var b strings.Builder
	for i, v := range c.ctrl.Slots() {
		if v == "" {
			v = "_"
		}
		if i == focus {
			b.WriteString(FocusedSlotStyle.UnsetBorderStyle().Render("[" + v + "]"))
		} else {
			b.WriteString(" " + v + " ")
		}
	}
	return b.String()
}
