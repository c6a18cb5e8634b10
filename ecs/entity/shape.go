package entity

import (
	"strings"

	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

func shapeFromSpec(spec prefabs.ShapeSpec) component.Shape {
	kind := component.ShapeRect
	if strings.EqualFold(spec.Kind, string(component.ShapeCircle)) {
		kind = component.ShapeCircle
	}
	return component.Shape{
		Kind:   kind,
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Color:  rgba(spec.Color),
		Layer:  spec.Layer,
	}
}

func rgba(c prefabs.YAMLColor) component.RGBA {
	r, g, b, a := c.RGBA8()
	return component.RGBA{R: r, G: g, B: b, A: a}
}

// colorProp parses an authored "#rrggbb" prop, keeping fallback when absent
// or malformed.
func colorProp(value string, fallback component.RGBA) component.RGBA {
	if value == "" {
		return fallback
	}
	c, err := prefabs.ParseHexColor(value)
	if err != nil {
		return fallback
	}
	return component.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
