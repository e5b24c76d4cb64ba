package segment

import (
	"fmt"
	"strings"
)

// Key identifies a non-text key delivered to a slot.
type Key int

const (
	// KeyOther is any key without special handling.
	KeyOther Key = iota
	// Backspace deletes backwards.
	Backspace
)

// Transition is the outcome of one edit.
type Transition struct {
	// Accepted is false when the edit was rejected and no state changed.
	Accepted bool
	// Focus is the slot that should receive keyboard input next.
	Focus int
}

// Controller holds the slot values of one segmented code. It is not safe
// for concurrent use; drive it from the UI event loop.
type Controller struct {
	slots []string
	focus int
}

// New creates a controller with n empty slots. It panics if n < 1.
func New(n int) *Controller {
	if n < 1 {
		panic(fmt.Sprintf("segment: invalid slot count %d", n))
	}
	return &Controller{slots: make([]string, n)}
}

// Len returns the number of slots.
func (c *Controller) Len() int {
	return len(c.slots)
}

// Focus returns the slot that currently holds focus.
func (c *Controller) Focus() int {
	return c.focus
}

// SetFocus moves focus to index. Out-of-range indices are ignored.
func (c *Controller) SetFocus(index int) Transition {
	if !c.inRange(index) {
		return c.reject()
	}
	c.focus = index
	return Transition{Accepted: true, Focus: index}
}

// MaxInput returns how many characters the field for slot index should
// accept before the controller normalizes it.
func (c *Controller) MaxInput(index int) int {
	if index == 0 {
		return len(c.slots)
	}
	return 1
}

// Change applies the full text of the field at index.
func (c *Controller) Change(index int, raw string) Transition {
	if !c.inRange(index) {
		return c.reject()
	}

	digits := onlyDigits(raw)
	if digits == "" && raw != "" {
		return c.reject()
	}
	// "3a" in a slot already holding "3" is a non-digit keystroke, not an edit.
	if digits != raw && digits == c.slots[index] {
		return c.reject()
	}

	if len(digits) > 1 {
		c.spread(index, digits)
		return c.accept()
	}

	c.slots[index] = digits
	if digits != "" && index < len(c.slots)-1 {
		c.focus = index + 1
	}
	return c.accept()
}

// KeyPress handles keys the field does not turn into text changes. It must
// be called before the field applies the key itself.
func (c *Controller) KeyPress(index int, key Key) Transition {
	if !c.inRange(index) || key != Backspace {
		return c.reject()
	}
	if c.slots[index] != "" || index == 0 {
		return c.reject()
	}
	c.focus = index - 1
	return c.accept()
}

// Complete reports whether every slot holds a digit.
func (c *Controller) Complete() bool {
	for _, s := range c.slots {
		if s == "" {
			return false
		}
	}
	return true
}

// Value returns the slot values concatenated in order, gaps omitted.
func (c *Controller) Value() string {
	return strings.Join(c.slots, "")
}

// Slots returns a copy of the slot values.
func (c *Controller) Slots() []string {
	out := make([]string, len(c.slots))
	copy(out, c.slots)
	return out
}

// Slot returns the value of one slot, or "" when index is out of range.
func (c *Controller) Slot(index int) string {
	if !c.inRange(index) {
		return ""
	}
	return c.slots[index]
}

// Reset clears every slot and focuses the first.
func (c *Controller) Reset() {
	for i := range c.slots {
		c.slots[i] = ""
	}
	c.focus = 0
}

func (c *Controller) spread(index int, digits string) {
	for i := 0; i < len(digits) && index+i < len(c.slots); i++ {
		c.slots[index+i] = digits[i : i+1]
	}

	c.focus = len(c.slots) - 1
	for i := index; i < len(c.slots); i++ {
		if c.slots[i] == "" {
			c.focus = i
			break
		}
	}
}

func (c *Controller) inRange(index int) bool {
	return index >= 0 && index < len(c.slots)
}

func (c *Controller) accept() Transition {
	return Transition{Accepted: true, Focus: c.focus}
}

func (c *Controller) reject() Transition {
	return Transition{Accepted: false, Focus: c.focus}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
