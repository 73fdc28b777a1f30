package component

// Transform is the local placement of an entity relative to its parent.
// Y grows downward, as on screen.
type Transform struct {
	X        float64
	Y        float64
	Z        float32
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// GlobalTransform is the composed world placement. Its Z is the draw depth
// and is owned by the sprite layer system once the entity takes part.
type GlobalTransform struct {
	X        float64
	Y        float64
	Z        float32
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var GlobalTransformComponent = NewComponent[GlobalTransform]()
