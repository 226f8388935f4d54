// Package particles turns a text string into a cloud of points that
// assemble into the glyph shapes while hovered and scatter back to
// randomized positions otherwise.
//
// The pipeline has three stages:
//
//   - Sample renders the text once onto an offscreen alpha raster and emits
//     one Particle per opaque grid cell (spacing = stride). Each particle
//     gets a scatter origin at a random angle and a bounded distance from
//     its target.
//   - Field.Step advances every particle one frame with a damped spring
//     toward the active goal (target while hovered, origin otherwise).
//   - Render clears an RGBA surface and draws each particle as a square.
//
// Animator ties the stages to a Loop, an explicit ticking resource with a
// Start/Stop handle, so a mounted animation is always cancelled on Unmount
// or before its particle set is regenerated.
//
// Blocks is the falling-block variant: the same samples drop in from above
// the surface and bounce until they settle on their targets.
package particles
