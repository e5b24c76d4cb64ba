// Package segment implements the state behind a segmented digit input: N
// independently rendered fields that together hold one fixed-length
// numeric code.
//
// The Controller owns the slot values and never touches UI handles. Every
// operation returns a Transition carrying the slot that should hold focus
// next; the rendering layer applies it.
//
// # Editing Rules
//
//   - Only ASCII digits are stored. Input that carries no digits is rejected.
//   - A multi-digit change spreads the digits over consecutive slots starting
//     at the edited one. Digits past the last slot are discarded.
//   - A single digit advances focus to the next slot.
//   - Backspace on an empty slot moves focus one slot left.
//
// Slot 0 accepts up to N characters so that a whole code can be typed or
// pasted into the first box; every other slot accepts one.
//
// # Usage Example
//
//	codes := segment.New(8)
//	t := codes.Change(0, "12345678")
//	// t.Focus == 7, codes.Complete() == true
//	if codes.Complete() {
//	    submit(codes.Value())
//	}
package segment
