package component

// Name is the scene-object name authored in the scene file.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
