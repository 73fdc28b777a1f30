package component

// DepthManaged marks an entity whose GlobalTransform.Z was written by the
// sprite layer system on the last frame.
type DepthManaged struct {
	Depth float32
}

var DepthManagedComponent = NewComponent[DepthManaged]()
