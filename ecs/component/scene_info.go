package component

// SceneInfo describes the active scene. One per world, rebuilt on every load.
type SceneInfo struct {
	Name       string
	Width      float64
	Height     float64
	Background RGBA
}

var SceneInfoComponent = NewComponent[SceneInfo]()
