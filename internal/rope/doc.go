// Package rope samples a decaying sine wave along the line between two
// moving anchor points, driven by a critically-damped spring.
//
// A [Sampler] polls a [GrappleSource] once per frame. While the source is
// active it advances its spring and rewrites an ordered point buffer of
// SampleCount+1 world-space positions; while inactive the buffer is empty
// and the spring is held at rest.
//
// Both the sampler and its spring are owned by one rope instance and must
// be ticked from a single frame loop; nothing here is safe for concurrent
// use.
package rope
