package component

// Persistent entities survive scene swaps. ID deduplicates singletons: when
// a new scene brings its own copy, the surviving one wins.
type Persistent struct {
	ID                string
	KeepOnSceneChange bool
	KeepOnReload      bool
}

var PersistentComponent = NewComponent[Persistent]()
