// Package tui implements the campuspass terminal interface.
//
// The interface is a Bubble Tea program built from one AppModel that owns
// the active screen, the footer tabs and the shared dependencies (backend
// client, profile registry and viewport monitor). Every screen renders
// inside RenderApplicationContainer: header on top, the screen's content,
// and the footer with context-sensitive help pinned to the bottom.
//
// # Screens
//
//   - Landing: hero, profile status and the main menu
//   - Signup: 8-digit student ID entry and verification
//   - Confirm: "is this you?" for a record that needs confirmation
//   - Email: address entry, then a 6-digit one-time code
//   - Recovery: request a password reset link
//   - Settings: profile details, notifications, sign out
//   - Tutorials: embedded markdown guides rendered with glamour
//
// # Responsive Layout
//
// Terminal cells are converted into viewport units and published on a
// responsive.Monitor whenever the window is resized. Each screen holds its
// own subscription while it is active and derives padding, gaps and code
// slot widths from Layout, which applies a per-screen cap. Screens release
// the subscription when the app navigates away.
//
// # Code Input
//
// CodeInput pairs a segment.Controller with one textinput per slot. The
// controller owns the digits and the focus; the text fields only supply
// keystrokes and pastes.
//
// # Backend Calls
//
// Screens talk to the backend through the Collaborator interface. Each
// call runs as a tea.Cmd tagged with a request ID; a result that arrives
// after its screen was closed or the request was superseded is dropped.
//
// # Navigation
//
// Number keys 1-3 and mouse clicks on the footer tabs switch between Home,
// Tutorials and Settings. Number keys are left to the screen while it is
// taking text input. Esc returns home and ctrl+c quits from anywhere.
package tui
