package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

// Tag is a free-form label used by trigger filters.
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()
