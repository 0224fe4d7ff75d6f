// Package viz renders the particle field in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: tea.Model and frame host driving the renderer from tea ticks
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - [BrailleSurface]: field.Surface over a Canvas, Scale logical units per dot
//   - [Theme]: light and dark status line styles
//
// # Key Bindings
//
//	T     - Toggle light/dark mode
//	?     - Show help line
//	Q     - Quit
//
// Mouse motion over the canvas moves the pointer; leaving the canvas or
// losing terminal focus parks it offscreen.
package viz
