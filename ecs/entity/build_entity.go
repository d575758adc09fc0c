package entity

import (
	"fmt"
	"io"
	"maps"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/prefabs"
)

// BuildContext carries what component builders need beyond the world.
type BuildContext struct {
	Presets *prefabs.LockOnPresets
	// Preset overrides the preset named by lock_on components when set.
	Preset string
	Logger *log.Logger

	prefabPath string
}

func (ctx *BuildContext) logger() *log.Logger {
	if ctx == nil || ctx.Logger == nil {
		return log.New(io.Discard)
	}
	return ctx.Logger
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"enemy_tag":        addEnemyTag,
	"camera_tag":       addCameraTag,
	"transform":        addTransform,
	"input":            addInput,
	"control_rotation": addControlRotation,
	"mover":            addMover,
	"camera":           addCamera,
	"health":           addHealth,
	"patrol":           addPatrol,
	"occluder":         addOccluder,
	"lock_on":          addLockOn,
	"lock_on_request":  addLockOnRequest,
}

// control_rotation and patrol read the transform, so they come after it.
var componentBuildOrder = []string{
	"player_tag",
	"enemy_tag",
	"camera_tag",
	"transform",
	"input",
	"control_rotation",
	"mover",
	"camera",
	"health",
	"patrol",
	"occluder",
	"lock_on",
	"lock_on_request",
}

// BuildEntity creates an entity from a prefab file.
func BuildEntity(w *ecs.World, prefabPath string, ctx *BuildContext) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, nil, ctx)
}

// BuildEntityWith creates an entity from a prefab file, replacing whole
// components with the ones in overrides and adding any the prefab lacks.
func BuildEntityWith(w *ecs.World, prefabPath string, overrides map[string]any, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	components := make(map[string]any, len(spec.Components)+len(overrides))
	maps.Copy(components, spec.Components)
	maps.Copy(components, overrides)
	if len(components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	if ctx == nil {
		ctx = &BuildContext{}
	}
	ctx.prefabPath = prefabPath

	e := ecs.CreateEntity(w)
	for _, name := range componentBuildOrder {
		raw, ok := components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityTransform moves e, adding a transform if it has none.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Yaw = yaw
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addControlRotation(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	cr := &component.ControlRotation{}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		cr.Yaw = t.Yaw
	}
	return ecs.Add(w, e, component.ControlRotationComponent.Kind(), cr)
}

func addLockOnRequest(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.LockOnRequestComponent.Kind(), &component.LockOnRequest{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: vec3(spec.Position),
		Yaw:      spec.Yaw,
	})
}

func addMover(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MoverComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mover spec: %w", err)
	}
	return ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{
		Speed:        spec.Speed,
		TurnRate:     spec.TurnRate,
		LookRate:     spec.LookRate,
		AttackDamage: spec.AttackDamage,
		AttackRange:  spec.AttackRange,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}

	fov := spec.FOV
	if fov <= 0 {
		fov = 70
	}
	near := spec.Near
	if near <= 0 {
		near = 1
	}
	far := spec.Far
	if far <= near {
		far = 10000
	}

	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName:   spec.Target,
		ArmLength:    spec.ArmLength,
		SocketOffset: vec3(spec.SocketOffset),
		Smoothness:   spec.Smoothness,
		FOV:          fov,
		Near:         near,
		Far:          far,
	})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max <= 0 {
		return fmt.Errorf("health max must be positive, got %v", spec.Max)
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.Max, Max: spec.Max})
}

func addPatrol(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PatrolComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode patrol spec: %w", err)
	}
	center := vec3(spec.Center)
	if spec.Center == nil {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			center = t.Position
		}
	}
	return ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{
		Center:       center,
		Radius:       spec.Radius,
		AngularSpeed: spec.Speed,
		Angle:        spec.Angle,
	})
}

func addOccluder(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.OccluderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode occluder spec: %w", err)
	}

	occ := &component.Occluder{
		Shape:  component.OccluderShape(spec.Shape),
		Min:    vec2(spec.Min),
		Max:    vec2(spec.Max),
		Center: vec2(spec.Center),
		Radius: spec.Radius,
		MinZ:   spec.MinZ,
		MaxZ:   spec.MaxZ,
	}
	for _, p := range spec.Points {
		occ.Points = append(occ.Points, vec2(p))
	}

	switch occ.Shape {
	case component.OccluderBox:
	case component.OccluderCircle:
		if occ.Radius <= 0 {
			return fmt.Errorf("circle occluder needs a positive radius")
		}
	case component.OccluderPolygon:
		if len(occ.Points) < 3 {
			return fmt.Errorf("polygon occluder needs at least 3 points, got %d", len(occ.Points))
		}
	default:
		return fmt.Errorf("unknown occluder shape %q (want box, circle or polygon)", spec.Shape)
	}

	return ecs.Add(w, e, component.OccluderComponent.Kind(), occ)
}

func vec3(v []float64) mgl64.Vec3 {
	var out mgl64.Vec3
	copy(out[:], v)
	return out
}

func vec2(v []float64) mgl64.Vec2 {
	var out mgl64.Vec2
	copy(out[:], v)
	return out
}
