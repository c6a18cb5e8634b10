package component

type Camera struct {
	Zoom       float64
	Smoothness float64
	// Target is the followed entity handle, zero when unbound.
	Target uint64
	// ShakeMagnitude decays to zero over ShakeRemaining seconds.
	ShakeMagnitude float64
	ShakeRemaining float64
	OffsetX        float64
	OffsetY        float64
}

var CameraComponent = NewComponent[Camera]()
