package component

// RenderLayer places an entity and everything below it in a depth band.
// Depth is the base depth of the band; bands are expected to be at least
// 1.0 apart.
type RenderLayer struct {
	Index int
	Name  string
	Depth float32
}

// BaseDepth returns the start of the layer's depth band.
func (l RenderLayer) BaseDepth() float32 {
	return l.Depth
}

var RenderLayerComponent = NewComponent[RenderLayer]()

// LayerStash holds a layer that was taken off an entity so it can be put
// back later.
type LayerStash struct {
	Layer RenderLayer
}

var LayerStashComponent = NewComponent[LayerStash]()
