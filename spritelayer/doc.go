// Package spritelayer resolves a render depth (z) for every layered object in
// a scene graph.
//
// Each frame the Engine walks the hierarchy and hands every object the layer
// of its nearest ancestor that has one (an object's own layer always wins).
// It then turns each (layer, y) pair into a depth of
//
//	layer.BaseDepth() + offset, 0 <= offset < 1
//
// where the offset comes from a y-sort inside the layer: objects higher up
// (larger up-axis value) get smaller offsets and are drawn first. The depth is
// written into the host's world transform through a direct write that does
// not raise change notifications.
//
// The engine runs strictly after world transform propagation and strictly
// before render extraction. It keeps only two pieces of state across frames:
// a capacity hint for the effective-layer map and the set of objects whose
// depth it wrote last frame, so that stale depth can be reset to zero when an
// object stops being layered.
//
// Layer types must leave at least 1.0 between the base depths of distinct
// layers. This is not checked at runtime.
package spritelayer
