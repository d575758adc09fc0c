package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
)

func NewPlayer(w *ecs.World, ctx *BuildContext) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml", ctx)
}

func NewPlayerAt(w *ecs.World, pos mgl64.Vec3, yaw float64, ctx *BuildContext) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "player.yaml", ctx)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, pos, yaw); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	if cr, ok := ecs.Get(w, entity, component.ControlRotationComponent.Kind()); ok {
		cr.Yaw = yaw
	}
	return entity, nil
}
