package component

type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
)

// RGBA is a render color kept free of image/color so specs decode directly.
type RGBA struct {
	R, G, B, A uint8
}

// Shape is the flat-color visual of an entity, centered on its transform.
type Shape struct {
	Kind   ShapeKind
	Width  float64
	Height float64
	Radius float64
	Color  RGBA
	Layer  int
	Hidden bool
}

var ShapeComponent = NewComponent[Shape]()
