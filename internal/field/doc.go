// Package field implements the particle network simulation behind the
// ambient background.
//
// A [Field] owns a flat set of particles that drift, bounce off the edges of
// the drawing area and are pushed away from the pointer. Each frame the field
// is drawn onto a [Surface]: every particle as a filled dot, and every pair of
// particles closer than the link distance as a faint line whose alpha fades
// with distance.
//
//   - [Params]: tuning constants (density, repulsion, link distance)
//   - [Field]: particle set with [Field.Resize], [Field.Step] and [Field.Draw]
//   - [Pointer]: last known cursor position with an offscreen sentinel
//   - [Palette]: light and dark dot/link colors
//
// # Cost
//
// The link pass is O(n²) in the particle count. With the default density a
// 1920x1080 viewport holds 115 particles, so the pass stays cheap; very large
// or dense viewports are dominated by it.
//
// # Thread Safety
//
// Field instances are NOT thread-safe. Hosts drive Step and Draw from a single
// event loop.
package field
