package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

const (
	CameraPrefab       = "camera.yaml"
	CameraPersistentID = "camera"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadSpec[prefabs.CameraSpec](CameraPrefab)
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.NameComponent.Kind(), &component.Name{Value: cameraSpec.Name}); err != nil {
		return 0, fmt.Errorf("camera: add name: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	zoom := cameraSpec.Zoom
	if zoom == 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       zoom,
		Smoothness: smooth,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	if err := ecs.Add(w, camera, component.PersistentComponent.Kind(), &component.Persistent{
		ID:                CameraPersistentID,
		KeepOnSceneChange: true,
		KeepOnReload:      true,
	}); err != nil {
		return 0, fmt.Errorf("camera: add persistent: %w", err)
	}

	return camera, nil
}
