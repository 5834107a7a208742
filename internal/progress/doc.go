// Package progress tracks the animation progress of a single glyph.
//
// A State is idle at one of its two endpoints (0 or 1). StartUpdating sets it
// moving towards the opposite endpoint and Update advances it once per tick
// until it settles there.
package progress
