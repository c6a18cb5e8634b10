package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ShapeSpec struct {
	Kind   string    `yaml:"kind"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
	Layer  int       `yaml:"layer"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
}

type AttackSpec struct {
	Damage    int     `yaml:"damage"`
	Range     float64 `yaml:"range"`
	Size      float64 `yaml:"size"`
	Seconds   float64 `yaml:"seconds"`
	Cooldown  float64 `yaml:"cooldown"`
	Knockback float64 `yaml:"knockback"`
}

type PlayerSpec struct {
	Name          string       `yaml:"name"`
	Tag           string       `yaml:"tag"`
	MoveSpeed     float64      `yaml:"move_speed"`
	Health        int          `yaml:"health"`
	InvulnSeconds float64      `yaml:"invuln_seconds"`
	Attack        AttackSpec   `yaml:"attack"`
	Collider      ColliderSpec `yaml:"collider"`
	Shape         ShapeSpec    `yaml:"shape"`
}

type CameraSpec struct {
	Name       string  `yaml:"name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type EnemySpec struct {
	Name            string       `yaml:"name"`
	Script          string       `yaml:"script"`
	MoveSpeed       float64      `yaml:"move_speed"`
	FollowRange     float64      `yaml:"follow_range"`
	AttackRange     float64      `yaml:"attack_range"`
	PreferredRange  float64      `yaml:"preferred_range"`
	AttackCooldown  float64      `yaml:"attack_cooldown"`
	AttackDamage    int          `yaml:"attack_damage"`
	AttackSize      float64      `yaml:"attack_size"`
	Knockback       float64      `yaml:"knockback"`
	ProjectileSpeed float64      `yaml:"projectile_speed"`
	ProjectileTTL   float64      `yaml:"projectile_ttl"`
	Health          int          `yaml:"health"`
	InvulnSeconds   float64      `yaml:"invuln_seconds"`
	DropCoins       int          `yaml:"drop_coins"`
	Collider        ColliderSpec `yaml:"collider"`
	Shape           ShapeSpec    `yaml:"shape"`
}

type BossPhaseSpec struct {
	Name           string  `yaml:"name"`
	HPTrigger      int     `yaml:"hp_trigger"`
	MoveSpeed      float64 `yaml:"move_speed"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	Pattern        string  `yaml:"pattern"`
	Shake          float64 `yaml:"shake"`
}

type BossSpec struct {
	EnemySpec   `yaml:",inline"`
	DisplayName string          `yaml:"display_name"`
	Phases      []BossPhaseSpec `yaml:"phases"`
}

type PortalSpec struct {
	TagFilter        string    `yaml:"tag_filter"`
	RetriggerSeconds float64   `yaml:"retrigger_seconds"`
	Mode             string    `yaml:"mode"`
	Width            float64   `yaml:"width"`
	Height           float64   `yaml:"height"`
	Shape            ShapeSpec `yaml:"shape"`
}

type ChestSpec struct {
	Range       float64   `yaml:"range"`
	Shape       ShapeSpec `yaml:"shape"`
	OpenedColor YAMLColor `yaml:"opened_color"`
}

type ProjectileSpec struct {
	Radius    float64   `yaml:"radius"`
	Knockback float64   `yaml:"knockback"`
	Shape     ShapeSpec `yaml:"shape"`
}

type PickupSpec struct {
	Radius float64   `yaml:"radius"`
	TTL    float64   `yaml:"ttl"`
	Shape  ShapeSpec `yaml:"shape"`
}

type WallSpec struct {
	Shape ShapeSpec `yaml:"shape"`
}

type HitboxSpec struct {
	Shape ShapeSpec `yaml:"shape"`
}

// GameSpec is the runtime tuning file (game.yaml).
type GameSpec struct {
	Transition struct {
		FadeSeconds      float64 `yaml:"fade_seconds"`
		DelaySeconds     float64 `yaml:"delay_seconds"`
		ProgressiveBatch int     `yaml:"progressive_batch"`
	} `yaml:"transition"`
	Portal struct {
		GlobalCooldownSeconds float64 `yaml:"global_cooldown_seconds"`
	} `yaml:"portal"`
	Spawner struct {
		PlacementThreshold float64 `yaml:"placement_threshold"`
		CooldownSeconds    float64 `yaml:"cooldown_seconds"`
	} `yaml:"spawner"`
	Camera struct {
		RetryInterval  float64 `yaml:"retry_interval"`
		MaxAttempts    int     `yaml:"max_attempts"`
		RepairInterval float64 `yaml:"repair_interval"`
	} `yaml:"camera"`
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color as 8-bit channels, opaque white when unset.
func (c YAMLColor) RGBA8() (r, g, b, a uint8) {
	if c.Color == nil {
		return 0xff, 0xff, 0xff, 0xff
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return n.R, n.G, n.B, n.A
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
