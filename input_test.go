package main

import (
	"testing"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

func TestApplyInput(t *testing.T) {
	tests := []struct {
		name    string
		keys    keys
		enabled bool
		want    component.Input
	}{
		{name: "up left", keys: keys{left: true, up: true}, enabled: true, want: component.Input{MoveX: -1, MoveY: -1}},
		{name: "opposites cancel", keys: keys{left: true, right: true}, enabled: true, want: component.Input{}},
		{name: "attack and interact", keys: keys{attack: true, interact: true}, enabled: true, want: component.Input{Attack: true, Interact: true}},
		{name: "disabled clears", keys: keys{down: true, attack: true}, enabled: false, want: component.Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: 1, Attack: true}); err != nil {
				t.Fatalf("add input: %v", err)
			}
			applyInput(w, tt.keys, tt.enabled)
			got, _ := ecs.Get(w, e, component.InputComponent.Kind())
			if *got != tt.want {
				t.Fatalf("input = %+v, want %+v", *got, tt.want)
			}
		})
	}
}
